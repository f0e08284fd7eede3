package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DanRulev/flashquiz/internal/models"
	mock_repository "github.com/DanRulev/flashquiz/internal/repository/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionMock(t *testing.T, ctrl *gomock.Controller, setupMock func(*mock_repository.MockQueryI)) *SessionR {
	db := mock_repository.NewMockQueryI(ctrl)
	if setupMock != nil {
		setupMock(db)
	}

	return &SessionR{db: db}
}

func testState() models.QuizState {
	return models.QuizState{
		Status: models.StatusInProgress,
		Flashcards: []models.Flashcard{
			{Question: "dog", Answer: "inu"},
			{Question: "cat", Answer: "neko"},
		},
		CurrentIndex:     1,
		NumCorrect:       1,
		IncorrectAnswers: []models.IncorrectAnswer{},
		Choices:          []string{"neko", "inu", "tori", "sakana"},
	}
}

func TestSessionR_SaveSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		f       func(*mock_repository.MockQueryI)
		wantErr bool
	}{
		{
			name: "success",
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().ExecContext(gomock.Any(), gomock.Any(), "s1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, args ...any) (sql.Result, error) {
						var state models.QuizState
						require.NoError(t, json.Unmarshal(args[1].([]byte), &state))
						assert.Equal(t, testState(), state)
						return nil, nil
					})
			},
			wantErr: false,
		},
		{
			name: "failed exec",
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().ExecContext(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("exec error"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sessionR := newSessionMock(t, ctrl, tt.f)

			err := sessionR.SaveSession(context.Background(), "s1", testState())
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSessionR_Session(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(testState())
	require.NoError(t, err)

	tests := []struct {
		name      string
		f         func(*mock_repository.MockQueryI)
		want      models.QuizState
		wantErr   bool
		wantErrIs error
	}{
		{
			name: "success",
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().GetContext(gomock.Any(), gomock.Any(), gomock.Any(), "s1").
					DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
						*dest.(*[]byte) = encoded
						return nil
					})
			},
			want: testState(),
		},
		{
			name: "not found",
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().GetContext(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(sql.ErrNoRows)
			},
			wantErr:   true,
			wantErrIs: models.ErrSessionNotFound,
		},
		{
			name: "db error",
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().GetContext(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "corrupt state",
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().GetContext(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
						*dest.(*[]byte) = []byte("{")
						return nil
					})
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sessionR := newSessionMock(t, ctrl, tt.f)

			got, err := sessionR.Session(context.Background(), "s1")
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionR_SessionWithTTL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mock_repository.NewMockQueryI(ctrl)
	db.EXPECT().GetContext(gomock.Any(), gomock.Any(), gomock.Any(), "s1", 3600.0).
		DoAndReturn(func(_ context.Context, _ interface{}, query string, _ ...interface{}) error {
			assert.Contains(t, query, "updated_at > NOW() - make_interval(secs => $2)")
			return sql.ErrNoRows
		})

	sessionR := NewSessionRepository(db, time.Hour)

	_, err := sessionR.Session(context.Background(), "s1")
	require.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestSessionR_Purge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ttl     time.Duration
		f       func(*mock_repository.MockQueryI)
		wantErr bool
	}{
		{
			name: "success",
			ttl:  30 * time.Minute,
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().ExecContext(gomock.Any(), gomock.Any(), 1800.0).Return(nil, nil)
			},
		},
		{
			name: "no ttl keeps everything",
			ttl:  0,
		},
		{
			name: "failed exec",
			ttl:  time.Hour,
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().ExecContext(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("exec error"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			db := mock_repository.NewMockQueryI(ctrl)
			if tt.f != nil {
				tt.f(db)
			}

			err := NewSessionRepository(db, tt.ttl).Purge(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSessionR_DeleteSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		f       func(*mock_repository.MockQueryI)
		wantErr bool
	}{
		{
			name: "success",
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().ExecContext(gomock.Any(), gomock.Any(), "s1").Return(nil, nil)
			},
		},
		{
			name: "failed exec",
			f: func(mqi *mock_repository.MockQueryI) {
				mqi.EXPECT().ExecContext(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("exec error"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sessionR := newSessionMock(t, ctrl, tt.f)

			err := sessionR.DeleteSession(context.Background(), "s1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSessionR_Migrate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessionR := newSessionMock(t, ctrl, func(mqi *mock_repository.MockQueryI) {
		mqi.EXPECT().ExecContext(gomock.Any(), createSessionsTable).Return(nil, nil)
	})

	require.NoError(t, sessionR.Migrate(context.Background()))
}
