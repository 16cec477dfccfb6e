package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sugar/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(
		config.WithFile(filepath.Join(t.TempDir(), "missing.yaml")),
		config.WithEnvPrefix("SUGAR_TEST_DEFAULTS_"),
	)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodySize)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Database.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.Database.RetryInterval)
	assert.Equal(t, 15*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 720*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.Equal(t, slog.LevelWarn, cfg.Sentry.MinLevel)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "refresh:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 3*time.Second, cfg.Redis.ReadTimeout)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  write_timeout: 30s
database:
  driver: postgres
  dsn: postgres://localhost/app
jwt:
  secret: from-file
`), 0o600))

	t.Setenv("SUGAR_CFGTEST_JWT__SECRET", "from-env")
	t.Setenv("SUGAR_CFGTEST_REDIS__URL", "redis://localhost:6379/0")

	cfg, err := config.Load(config.WithFile(path), config.WithEnvPrefix("SUGAR_CFGTEST_"))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/app", cfg.Database.DSN)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestLoadInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := config.Load(config.WithFile(path), config.WithEnvPrefix("SUGAR_TEST_INVALID_"))
	require.ErrorIs(t, err, config.ErrLoadFile)
}
