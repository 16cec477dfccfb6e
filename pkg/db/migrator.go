package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/sugar/pkg/logger"
	"github.com/dmitrymomot/sugar/pkg/schema"
)

// Migrate applies pending migrations and logs each applied version.
// Versions are recorded in table; an empty table uses goose's default.
func Migrate(ctx context.Context, d *DB, table string, log *slog.Logger, migrations ...*goose.Migration) error {
	if log == nil {
		log = logger.NewNope()
	}

	results, err := schema.MigrateWithTable(ctx, d.DB, d.Dialect, table, migrations...)
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("direction", r.Direction),
			slog.Duration("duration", r.Duration),
		)
	}
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	return nil
}
