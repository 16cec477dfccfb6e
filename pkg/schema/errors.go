package schema

import "errors"

var (
	ErrNoColumns        = errors.New("schema: table has no columns")
	ErrUnknownDialect   = errors.New("schema: unknown dialect")
	ErrCreateProvider   = errors.New("schema: failed to create migration provider")
	ErrApplyMigrations  = errors.New("schema: failed to apply migrations")
	ErrInvalidMigration = errors.New("schema: invalid migration")
)
