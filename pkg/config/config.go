// Package config loads application settings from an optional YAML file and
// environment variables.
//
// Environment variables use the SUGAR_ prefix and a double underscore as the
// key separator, so SUGAR_DATABASE__DSN sets database.dsn. Environment values
// override the file.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dmitrymomot/sugar/pkg/db"
	"github.com/dmitrymomot/sugar/pkg/logger"
	"github.com/dmitrymomot/sugar/pkg/redis"
)

var (
	ErrLoadFile  = errors.New("config: failed to load file")
	ErrLoadEnv   = errors.New("config: failed to load environment")
	ErrUnmarshal = errors.New("config: failed to decode")
)

type Config struct {
	Server   ServerConfig        `koanf:"server"`
	Log      LogConfig           `koanf:"log"`
	Database db.Config           `koanf:"database"`
	Redis    redis.Config        `koanf:"redis"`
	JWT      JWTConfig           `koanf:"jwt"`
	Sentry   logger.SentryConfig `koanf:"sentry"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodySize     int64         `koanf:"max_body_size"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type JWTConfig struct {
	Secret          string        `koanf:"secret"`
	Issuer          string        `koanf:"issuer"`
	Expiration      time.Duration `koanf:"expiration"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`
}

// Option configures Load.
type Option func(*options)

type options struct {
	file      string
	envPrefix string
}

// WithFile sets the YAML file path. A missing file is not an error.
// Default: "config.yaml"
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithEnvPrefix sets the environment variable prefix.
// Default: "SUGAR_"
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// Load reads the file, then the environment, then fills unset keys with defaults.
func Load(opts ...Option) (*Config, error) {
	o := &options{file: "config.yaml", envPrefix: "SUGAR_"}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	if o.file != "" {
		if err := k.Load(file.Provider(o.file), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrLoadFile, err)
		}
	}

	prefix := o.envPrefix
	if err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "__", ".")
	}), nil); err != nil {
		return nil, errors.Join(ErrLoadEnv, err)
	}

	for key, value := range defaults() {
		if !k.Exists(key) {
			if err := k.Set(key, value); err != nil {
				return nil, errors.Join(ErrUnmarshal, err)
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return &cfg, nil
}

func defaults() map[string]any {
	d := db.DefaultConfig()
	rc := redis.DefaultConfig()
	return map[string]any{
		"server.addr":                 ":8080",
		"server.read_timeout":         "10s",
		"server.write_timeout":        "10s",
		"server.shutdown_timeout":     "15s",
		"server.max_body_size":        1 << 20,
		"log.level":                   "info",
		"database.driver":             d.Driver,
		"database.dsn":                d.DSN,
		"database.migrations_table":   d.MigrationsTable,
		"database.healthcheck_period": d.HealthCheckPeriod.String(),
		"database.max_conn_idle_time": d.MaxConnIdleTime.String(),
		"database.max_conn_lifetime":  d.MaxConnLifetime.String(),
		"database.retry_attempts":     d.RetryAttempts,
		"database.retry_interval":     d.RetryInterval.String(),
		"database.max_open_conns":     d.MaxOpenConns,
		"database.min_conns":          d.MinConns,
		"redis.key_prefix":            rc.KeyPrefix,
		"redis.pool_size":             rc.PoolSize,
		"redis.min_idle_conns":        rc.MinIdleConns,
		"redis.max_idle_time":         rc.MaxIdleTime.String(),
		"redis.max_lifetime":          rc.MaxLifetime.String(),
		"redis.dial_timeout":          rc.DialTimeout.String(),
		"redis.read_timeout":          rc.ReadTimeout.String(),
		"redis.write_timeout":         rc.WriteTimeout.String(),
		"redis.retry_attempts":        rc.RetryAttempts,
		"redis.retry_interval":        rc.RetryInterval.String(),
		"jwt.issuer":                  "sugar",
		"jwt.expiration":              "15m",
		"jwt.refresh_token_ttl":       "720h",
		"sentry.min_level":            "WARN",
	}
}
