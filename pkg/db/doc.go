// Package db opens SQL databases with retry and runs schema migrations.
//
// Two drivers are supported: "sqlite" (modernc.org/sqlite, no cgo) and
// "postgres" (a pgx connection pool exposed through database/sql).
//
//	conn, err := db.Open(ctx, db.Config{Driver: "sqlite", DSN: "file:app.db"})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	err = db.Migrate(ctx, conn, log,
//	    schema.Migration(1, schema.New("users", schema.WithDialect(conn.Dialect)).ID("id")),
//	)
//
// Transactions go through WithTx, which rolls back on error or panic.
package db
