package db

import "time"

// Config holds connection parameters. Pool settings apply to postgres only,
// except MaxOpenConns which caps database/sql for both drivers.
type Config struct {
	// "sqlite" or "postgres".
	Driver string `koanf:"driver"`
	// File path or URI for sqlite, connection URL for postgres.
	DSN string `koanf:"dsn"`

	MigrationsTable string `koanf:"migrations_table"`

	HealthCheckPeriod time.Duration `koanf:"healthcheck_period"`
	MaxConnIdleTime   time.Duration `koanf:"max_conn_idle_time"`
	MaxConnLifetime   time.Duration `koanf:"max_conn_lifetime"`

	// Startup retries with linear backoff: attempt i waits i*RetryInterval.
	RetryAttempts int           `koanf:"retry_attempts"`
	RetryInterval time.Duration `koanf:"retry_interval"`

	MaxOpenConns int32 `koanf:"max_open_conns"`
	MinConns     int32 `koanf:"min_conns"`
}

// DefaultConfig returns a sqlite configuration with production pool defaults.
func DefaultConfig() Config {
	return Config{
		Driver:            "sqlite",
		DSN:               "file:sugar.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		MigrationsTable:   "schema_migrations",
		HealthCheckPeriod: time.Minute,
		MaxConnIdleTime:   10 * time.Minute,
		MaxConnLifetime:   30 * time.Minute,
		RetryAttempts:     3,
		RetryInterval:     5 * time.Second,
		MaxOpenConns:      10,
		MinConns:          5,
	}
}
