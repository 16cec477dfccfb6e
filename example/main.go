// Command example runs a small account service on top of sugar: signup,
// password login with JWT access tokens and rotating refresh tokens, profile
// updates and a public HTML profile page.
//
// Configuration comes from config.yaml and SUGAR_* environment variables,
// e.g. SUGAR_JWT__SECRET and SUGAR_DATABASE__DSN. Setting SUGAR_REDIS__URL
// keeps refresh tokens in Redis instead of memory.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/dmitrymomot/sugar"
	"github.com/dmitrymomot/sugar/middlewares"
	"github.com/dmitrymomot/sugar/pkg/config"
	"github.com/dmitrymomot/sugar/pkg/db"
	"github.com/dmitrymomot/sugar/pkg/jwt"
	"github.com/dmitrymomot/sugar/pkg/logger"
	"github.com/dmitrymomot/sugar/pkg/redis"
	"github.com/dmitrymomot/sugar/pkg/token"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, conn, cfg.Database.MigrationsTable, logger.Component(log, "migrate"), userMigrations(conn.Dialect)...); err != nil {
		_ = conn.Close()
		return err
	}

	signer, err := jwt.NewFromString(cfg.JWT.Secret,
		jwt.WithIssuer(cfg.JWT.Issuer),
		jwt.WithExpirationPeriod(cfg.JWT.Expiration),
	)
	if err != nil {
		_ = conn.Close()
		return errors.Join(errors.New("set SUGAR_JWT__SECRET to at least 32 characters"), err)
	}

	tokens, rh, err := newTokenStore(ctx, cfg.Redis)
	if err != nil {
		_ = conn.Close()
		return err
	}

	a := newApp(log, conn, signer, tokens, cfg.JWT.RefreshTokenTTL, cfg.Server.MaxBodySize)
	if cfg.Server.WriteTimeout > 0 {
		a.timeout = cfg.Server.WriteTimeout
	}

	opts := []sugar.ServerOption{
		sugar.WithAddress(cfg.Server.Addr),
		sugar.WithReadTimeout(cfg.Server.ReadTimeout),
		sugar.WithWriteTimeout(cfg.Server.WriteTimeout),
		sugar.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		sugar.WithServerLogger(log),
		sugar.WithShutdownHook(func(context.Context) error { return tokens.Close() }),
	}
	if rh != nil {
		a.checks["redis"] = rh.check
		opts = append(opts, sugar.WithShutdownHook(rh.shutdown))
	}
	opts = append(opts, sugar.WithShutdownHook(db.Shutdown(conn)))

	return sugar.NewServer(a.routes(), opts...).Run(ctx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.Sentry.DSN != "" {
		return logger.NewWithSentry(cfg.Sentry, middlewares.RequestIDExtractor())
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	return logger.NewWithWriter(os.Stdout, level, middlewares.RequestIDExtractor())
}

type redisHooks struct {
	check    func(context.Context) error
	shutdown func(context.Context) error
}

// newTokenStore returns a Redis store when a URL is configured, otherwise an
// in-memory one. For Redis it also returns the readiness check and the
// shutdown hook of the client.
func newTokenStore(ctx context.Context, cfg redis.Config) (token.Store, *redisHooks, error) {
	if cfg.URL == "" {
		return token.NewMemoryStore(), nil, nil
	}
	client, err := redis.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	hooks := &redisHooks{check: redis.Healthcheck(client), shutdown: redis.Shutdown(client)}
	return token.NewRedisStore(client, token.WithPrefix(cfg.KeyPrefix)), hooks, nil
}
