package schema

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL flavour a Creator renders.
type Dialect int

const (
	MySQL Dialect = iota
	SQLite
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ParseDialect maps a driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

// Foreign returns the statement adding a foreign key from childTable.childFK
// to parentTable.parentPK.
func (d Dialect) Foreign(parentTable, parentPK, childTable, childFK string) string {
	return "ALTER TABLE " + childTable +
		" ADD CONSTRAINT " + childTable + "_" + parentTable + "_" + parentPK + "_foreign" +
		" FOREIGN KEY(" + childFK + ") REFERENCES " + parentTable + "(" + parentPK + ")"
}

// Index returns the statement adding an index on table(column).
// MySQL allows an anonymous index; other dialects derive a name when empty.
func (d Dialect) Index(table, column, name string) string {
	if d == MySQL {
		if name != "" {
			name += " "
		}
		return "ALTER TABLE " + table + " ADD INDEX " + name + "(" + column + ")"
	}
	if name == "" {
		name = table + "_" + strings.NewReplacer(",", "_", " ", "").Replace(column) + "_index"
	}
	return "CREATE INDEX " + name + " ON " + table + " (" + column + ")"
}

// Foreign returns the MySQL foreign key statement.
func Foreign(parentTable, parentPK, childTable, childFK string) string {
	return MySQL.Foreign(parentTable, parentPK, childTable, childFK)
}

// Index returns the MySQL index statement. name may be empty.
func Index(table, column, name string) string {
	return MySQL.Index(table, column, name)
}

func (d Dialect) typeName(c *Column) string {
	switch d {
	case SQLite:
		return sqliteType(c)
	case Postgres:
		return postgresType(c)
	default:
		return mysqlType(c)
	}
}

func mysqlType(c *Column) string {
	var t string
	switch c.kind {
	case kindCustom:
		return c.custom
	case kindDatetime:
		return "DATETIME"
	case kindDate:
		return "DATE"
	case kindInteger:
		if c.unsigned {
			return "INTEGER(10) UNSIGNED"
		}
		return "INTEGER(11)"
	case kindTinyInt:
		t = "TINYINT"
	case kindSmallInt:
		t = "SMALLINT"
	case kindMediumInt:
		t = "MEDIUMINT"
	case kindBigInt:
		t = "BIGINT"
	case kindDecimal:
		t = fmt.Sprintf("DECIMAL(%d,%d)", c.precision, c.digits)
	case kindFloat:
		t = fmt.Sprintf("FLOAT(%d,%d)", c.precision, c.digits)
	case kindDouble:
		t = fmt.Sprintf("DOUBLE(%d,%d)", c.precision, c.digits)
	case kindChar:
		return fmt.Sprintf("CHAR(%d)", c.length)
	case kindVarchar:
		return fmt.Sprintf("VARCHAR(%d)", c.length)
	case kindText:
		return "TEXT"
	case kindMediumText:
		return "MEDIUMTEXT"
	case kindLongText:
		return "LONGTEXT"
	}
	if c.unsigned {
		t += " UNSIGNED"
	}
	return t
}

// SQLite only has type affinities; UNSIGNED and display widths are dropped.
func sqliteType(c *Column) string {
	switch c.kind {
	case kindInteger, kindTinyInt, kindSmallInt, kindMediumInt, kindBigInt:
		return "INTEGER"
	case kindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", c.precision, c.digits)
	case kindFloat, kindDouble:
		return "REAL"
	case kindText, kindMediumText, kindLongText:
		return "TEXT"
	default:
		return mysqlType(c)
	}
}

func postgresType(c *Column) string {
	switch c.kind {
	case kindDatetime:
		return "TIMESTAMP"
	case kindInteger, kindMediumInt:
		return "INTEGER"
	case kindTinyInt, kindSmallInt:
		return "SMALLINT"
	case kindBigInt:
		return "BIGINT"
	case kindDecimal:
		return fmt.Sprintf("NUMERIC(%d,%d)", c.precision, c.digits)
	case kindFloat:
		return "REAL"
	case kindDouble:
		return "DOUBLE PRECISION"
	case kindText, kindMediumText, kindLongText:
		return "TEXT"
	default:
		return mysqlType(c)
	}
}

func (d Dialect) autoIncrement(c *Column) string {
	switch d {
	case SQLite:
		return c.Name + " INTEGER PRIMARY KEY AUTOINCREMENT"
	case Postgres:
		return c.Name + " BIGSERIAL PRIMARY KEY"
	default:
		return c.Name + " INTEGER(10) UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY"
	}
}

func (d Dialect) literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case Raw:
		return string(x)
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case bool:
		if d == Postgres {
			if x {
				return "TRUE"
			}
			return "FALSE"
		}
		if x {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(x)
	}
}
