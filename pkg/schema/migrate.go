package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// Migration returns a goose migration that creates the given tables on the
// way up and drops them in reverse order on the way down. Creators must be
// built for the dialect passed to Migrate.
func Migration(version int64, creators ...*Creator) *goose.Migration {
	up := &goose.GoFunc{
		RunTx: func(ctx context.Context, tx *sql.Tx) error {
			for _, c := range creators {
				for _, stmt := range c.Statements() {
					if _, err := tx.ExecContext(ctx, stmt); err != nil {
						return fmt.Errorf("create %s: %w", c.table, err)
					}
				}
			}
			return nil
		},
	}
	down := &goose.GoFunc{
		RunTx: func(ctx context.Context, tx *sql.Tx) error {
			for _, c := range slices.Backward(creators) {
				if _, err := tx.ExecContext(ctx, c.DropSQL()); err != nil {
					return fmt.Errorf("drop %s: %w", c.table, err)
				}
			}
			return nil
		},
	}
	return goose.NewGoMigration(version, up, down)
}

// Migrate applies all pending migrations using goose's default version table.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, migrations ...*goose.Migration) ([]*goose.MigrationResult, error) {
	return MigrateWithTable(ctx, db, dialect, "", migrations...)
}

// MigrateWithTable applies all pending migrations, recording versions in table.
// An empty table uses goose's default.
func MigrateWithTable(ctx context.Context, db *sql.DB, dialect Dialect, table string, migrations ...*goose.Migration) ([]*goose.MigrationResult, error) {
	p, err := NewProvider(db, dialect, table, migrations...)
	if err != nil {
		return nil, err
	}

	results, err := p.Up(ctx)
	if err != nil {
		return results, errors.Join(ErrApplyMigrations, err)
	}
	return results, nil
}

// NewProvider returns a goose provider limited to the given Go migrations.
// Closing the provider closes db.
func NewProvider(db *sql.DB, dialect Dialect, table string, migrations ...*goose.Migration) (*goose.Provider, error) {
	if len(migrations) == 0 {
		return nil, errors.Join(ErrInvalidMigration, goose.ErrNoMigrations)
	}

	gd, err := gooseDialect(dialect)
	if err != nil {
		return nil, err
	}

	opts := []goose.ProviderOption{
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(migrations...),
	}
	if table != "" {
		store, err := database.NewStore(gd, table)
		if err != nil {
			return nil, errors.Join(ErrCreateProvider, err)
		}
		opts = append(opts, goose.WithStore(store))
		gd = ""
	}

	p, err := goose.NewProvider(gd, db, nil, opts...)
	if err != nil {
		return nil, errors.Join(ErrCreateProvider, err)
	}
	return p, nil
}

func gooseDialect(d Dialect) (database.Dialect, error) {
	switch d {
	case MySQL:
		return database.DialectMySQL, nil
	case SQLite:
		return database.DialectSQLite3, nil
	case Postgres:
		return database.DialectPostgres, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownDialect, d)
	}
}
