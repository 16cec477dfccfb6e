package db

import "context"

// Shutdown returns a function that closes the database, for use as a
// server shutdown hook.
func Shutdown(d *DB) func(ctx context.Context) error {
	return func(context.Context) error {
		return d.Close()
	}
}
