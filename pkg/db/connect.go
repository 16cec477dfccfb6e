package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/sugar/pkg/schema"
)

// DB is a database/sql handle tagged with its dialect.
// Pool is set for postgres connections.
type DB struct {
	*sql.DB
	Pool    *pgxpool.Pool
	Dialect schema.Dialect
}

// Close closes the handle and, for postgres, the underlying pool.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.Pool != nil {
		d.Pool.Close()
	}
	return err
}

// Open connects to the configured database, retrying transient failures.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dialect, err := schema.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, errors.Join(ErrUnsupportedDriver, err)
	}

	switch dialect {
	case schema.SQLite:
		return openSQLite(ctx, cfg)
	case schema.Postgres:
		return openPostgres(ctx, cfg)
	default:
		return nil, ErrUnsupportedDriver
	}
}

func openSQLite(ctx context.Context, cfg Config) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}

	// Every connection to an in-memory database sees its own empty database.
	if strings.Contains(cfg.DSN, ":memory:") || strings.Contains(cfg.DSN, "mode=memory") {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(int(cfg.MaxOpenConns))
	}

	if err := retry(ctx, cfg, func() error { return sqlDB.PingContext(ctx) }); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &DB{DB: sqlDB, Dialect: schema.SQLite}, nil
}

func openPostgres(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = cfg.MaxOpenConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	var pool *pgxpool.Pool
	err = retry(ctx, cfg, func() error {
		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	// database/sql view sharing the pool's connections.
	return &DB{DB: stdlib.OpenDBFromPool(pool), Pool: pool, Dialect: schema.Postgres}, nil
}

// retry calls fn up to cfg.RetryAttempts times, waiting i*RetryInterval
// after the i-th failure.
func retry(ctx context.Context, cfg Config, fn func() error) error {
	attempts := max(cfg.RetryAttempts, 1)

	var lastErr error
	for i := range attempts {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}
	return errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// Healthcheck returns a function that pings the database.
func Healthcheck(d *DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := d.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
