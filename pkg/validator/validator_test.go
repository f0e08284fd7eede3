package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Order string `mapstructure:"choice_order" validate:"oneof=shuffle sorted"`
}

type outer struct {
	Port  string `mapstructure:"port" validate:"required"`
	Quiz  inner  `mapstructure:"quiz"`
	Plain int    `validate:"min=1"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      interface{}
		wantErr []string
	}{
		{
			name: "valid",
			in:   outer{Port: "8080", Quiz: inner{Order: "sorted"}, Plain: 1},
		},
		{
			name: "reports config keys",
			in:   outer{Quiz: inner{Order: "random"}, Plain: 1},
			wantErr: []string{
				"Field: port, Tag: required",
				"Field: quiz.choice_order, Tag: oneof, Param: shuffle sorted",
			},
		},
		{
			name:    "falls back to field name",
			in:      outer{Port: "8080", Quiz: inner{Order: "shuffle"}},
			wantErr: []string{"Field: Plain, Tag: min, Param: 1"},
		},
		{
			name:    "not a struct",
			in:      42,
			wantErr: []string{"validation failed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(tt.in)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
