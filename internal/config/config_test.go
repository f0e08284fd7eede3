package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("file", "", "")
	fs.String("dir", "", "")
	fs.String("order", "", "")
	fs.String("results", "", "")
	fs.String("store", "", "")
	fs.String("config", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

// These tests touch the process environment and cannot run in parallel.

func TestInit_Defaults(t *testing.T) {
	t.Setenv("CONFIG_NAME", "missing")

	cfg, err := Init(nil)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ".", cfg.Quiz.Dir)
	assert.Equal(t, "shuffle", cfg.Quiz.ChoiceOrder)
	assert.Equal(t, "quiz_results.txt", cfg.Quiz.ResultsFile)
	assert.Equal(t, "8080", cfg.Web.Port)
	assert.Equal(t, 5*1024*1024, cfg.Web.UploadMaxSize)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Store.TTL)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
}

func TestInit_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_NAME", "missing")
	t.Setenv("APP_ENV", "development")
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("QUIZ_CHOICE_ORDER", "sorted")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := Init(nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, "sorted", cfg.Quiz.ChoiceOrder)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Conn.Host)
}

func TestInit_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CONFIG_NAME", "missing")
	t.Setenv("QUIZ_CHOICE_ORDER", "sorted")

	cfg, err := Init(testFlags(t, "--order", "shuffle", "--file", "cards.xlsx", "--results", "out.txt"))
	require.NoError(t, err)

	assert.Equal(t, "shuffle", cfg.Quiz.ChoiceOrder)
	assert.Equal(t, "cards.xlsx", cfg.Quiz.File)
	assert.Equal(t, "out.txt", cfg.Quiz.ResultsFile)
}

func TestInit_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
quiz:
  dir: /srv/cards
  choice_order: sorted
store:
  driver: postgres
  ttl: 1h
`), 0o644))

	cfg, err := Init(testFlags(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, "/srv/cards", cfg.Quiz.Dir)
	assert.Equal(t, "sorted", cfg.Quiz.ChoiceOrder)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.Store.TTL)
}

func TestInit_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "unknown choice order",
			args: []string{"--order", "random"},
		},
		{
			name: "unknown store",
			args: []string{"--store", "mongo"},
		},
		{
			name: "unknown env",
			env:  map[string]string{"APP_ENV": "qa"},
		},
		{
			name: "broken config file",
			args: []string{"--config", "testdata/does-not-exist.yaml"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_NAME", "missing")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Init(testFlags(t, tt.args...))
			require.Error(t, err)
		})
	}
}
