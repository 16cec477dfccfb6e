// Package schema builds CREATE TABLE statements from typed column helpers and
// runs them as goose migrations.
//
//	users := schema.New("users").
//	    ID("id").
//	    Varchar("email", schema.Unique()).
//	    Varchar("password_hash").
//	    Integer("login_count", schema.Unsigned(), schema.Default(0)).
//	    Decimal("balance", schema.Precision(10, 2), schema.Optional()).
//	    Timestamps()
//
//	err := schema.Migrate(ctx, sqlDB, schema.MySQL,
//	    schema.Migration(1, users),
//	)
//
// Column types follow MySQL naming. Other dialects map them to the closest
// native type when rendering.
package schema
