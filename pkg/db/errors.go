package db

import "errors"

var (
	ErrUnsupportedDriver        = errors.New("db: unsupported driver")
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)
