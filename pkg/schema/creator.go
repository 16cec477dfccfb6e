package schema

import "strings"

// Default sizes used when a column option does not override them.
const (
	DefaultPrecision     = 4
	DefaultDigits        = 2
	DefaultCharLength    = 4
	DefaultVarcharLength = 255
)

type kind uint8

const (
	kindCustom kind = iota
	kindDatetime
	kindDate
	kindInteger
	kindTinyInt
	kindSmallInt
	kindMediumInt
	kindBigInt
	kindDecimal
	kindFloat
	kindDouble
	kindChar
	kindVarchar
	kindText
	kindMediumText
	kindLongText
)

// Raw is a default value rendered verbatim, e.g. Raw("CURRENT_TIMESTAMP").
type Raw string

// Column describes one table column.
type Column struct {
	Default       any
	Name          string
	custom        string
	precision     uint
	digits        uint
	length        uint
	kind          kind
	Optional      bool
	Unique        bool
	PrimaryKey    bool
	HasDefault    bool
	unsigned      bool
	autoIncrement bool
}

// ColumnOption configures a column.
type ColumnOption func(*Column)

// Optional makes the column nullable.
func Optional() ColumnOption {
	return func(c *Column) { c.Optional = true }
}

// Unique adds a UNIQUE constraint.
func Unique() ColumnOption {
	return func(c *Column) { c.Unique = true }
}

// Default sets the column default. Strings are quoted, Raw values are not.
func Default(v any) ColumnOption {
	return func(c *Column) {
		c.Default = v
		c.HasDefault = true
	}
}

// PrimaryKey marks the column as the primary key.
func PrimaryKey() ColumnOption {
	return func(c *Column) { c.PrimaryKey = true }
}

// Unsigned makes a numeric column unsigned. Ignored by non-numeric columns.
func Unsigned() ColumnOption {
	return func(c *Column) { c.unsigned = true }
}

// Precision sets total digits and digits after the point for DECIMAL, FLOAT and DOUBLE.
func Precision(precision, digits uint) ColumnOption {
	return func(c *Column) {
		c.precision = precision
		c.digits = digits
	}
}

// Length sets the length of CHAR and VARCHAR columns.
func Length(n uint) ColumnOption {
	return func(c *Column) { c.length = n }
}

type reference struct {
	column, parentTable, parentPK string
}

type index struct {
	column, name string
}

// Option configures a Creator.
type Option func(*Creator)

// WithDialect sets the dialect. The default is MySQL.
func WithDialect(d Dialect) Option {
	return func(c *Creator) { c.dialect = d }
}

// Creator accumulates the definition of one table.
type Creator struct {
	table      string
	columns    []*Column
	references []reference
	indexes    []index
	dialect    Dialect
}

// New starts a table definition.
func New(table string, opts ...Option) *Creator {
	c := &Creator{table: table}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the table name.
func (c *Creator) Table() string { return c.table }

// Dialect returns the dialect the Creator renders.
func (c *Creator) Dialect() Dialect { return c.dialect }

// Columns returns the columns added so far.
func (c *Creator) Columns() []*Column { return c.columns }

func (c *Creator) add(col *Column, opts []ColumnOption) *Creator {
	for _, opt := range opts {
		opt(col)
	}
	c.columns = append(c.columns, col)
	return c
}

// ID adds an auto-incrementing integer primary key.
func (c *Creator) ID(name string) *Creator {
	return c.add(&Column{Name: name, kind: kindInteger, unsigned: true, PrimaryKey: true, autoIncrement: true}, nil)
}

// Custom adds a column with a verbatim type.
func (c *Creator) Custom(name, typ string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindCustom, custom: typ}, opts)
}

func (c *Creator) Datetime(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindDatetime}, opts)
}

func (c *Creator) Date(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindDate}, opts)
}

// Timestamps adds nullable created_at and updated_at columns.
func (c *Creator) Timestamps() *Creator {
	return c.Datetime("created_at", Optional()).Datetime("updated_at", Optional())
}

// SoftDelete adds a nullable deleted_at column.
func (c *Creator) SoftDelete() *Creator {
	return c.Datetime("deleted_at", Optional())
}

// Integer adds INTEGER(11), or INTEGER(10) UNSIGNED with Unsigned.
func (c *Creator) Integer(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindInteger}, opts)
}

func (c *Creator) TinyInteger(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindTinyInt}, opts)
}

func (c *Creator) SmallInteger(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindSmallInt}, opts)
}

func (c *Creator) MediumInteger(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindMediumInt}, opts)
}

func (c *Creator) BigInteger(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindBigInt}, opts)
}

// Decimal adds DECIMAL(4,2) unless Precision says otherwise.
func (c *Creator) Decimal(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindDecimal, precision: DefaultPrecision, digits: DefaultDigits}, opts)
}

func (c *Creator) Float(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindFloat, precision: DefaultPrecision, digits: DefaultDigits}, opts)
}

func (c *Creator) Double(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindDouble, precision: DefaultPrecision, digits: DefaultDigits}, opts)
}

// Char adds CHAR(4) unless Length says otherwise.
func (c *Creator) Char(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindChar, length: DefaultCharLength}, opts)
}

// Varchar adds VARCHAR(255) unless Length says otherwise.
func (c *Creator) Varchar(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindVarchar, length: DefaultVarcharLength}, opts)
}

func (c *Creator) Text(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindText}, opts)
}

func (c *Creator) MediumText(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindMediumText}, opts)
}

func (c *Creator) LongText(name string, opts ...ColumnOption) *Creator {
	return c.add(&Column{Name: name, kind: kindLongText}, opts)
}

// References adds a foreign key from column to parentTable(parentPK).
// SQLite renders it inline, other dialects as a separate ALTER TABLE.
func (c *Creator) References(column, parentTable, parentPK string) *Creator {
	c.references = append(c.references, reference{column: column, parentTable: parentTable, parentPK: parentPK})
	return c
}

// Index adds an index on column, created after the table.
func (c *Creator) Index(column, name string) *Creator {
	c.indexes = append(c.indexes, index{column: column, name: name})
	return c
}

// SQL renders the CREATE TABLE statement.
func (c *Creator) SQL() string {
	defs := make([]string, 0, len(c.columns)+len(c.references))
	for _, col := range c.columns {
		defs = append(defs, c.columnSQL(col))
	}
	if c.dialect == SQLite {
		for _, ref := range c.references {
			defs = append(defs, "FOREIGN KEY("+ref.column+") REFERENCES "+ref.parentTable+"("+ref.parentPK+")")
		}
	}
	return "CREATE TABLE " + c.table + " (" + strings.Join(defs, ", ") + ")"
}

// Statements returns CREATE TABLE followed by foreign key and index statements.
func (c *Creator) Statements() []string {
	stmts := []string{c.SQL()}
	if c.dialect != SQLite {
		for _, ref := range c.references {
			stmts = append(stmts, c.dialect.Foreign(ref.parentTable, ref.parentPK, c.table, ref.column))
		}
	}
	for _, idx := range c.indexes {
		stmts = append(stmts, c.dialect.Index(c.table, idx.column, idx.name))
	}
	return stmts
}

// DropSQL renders the DROP TABLE statement.
func (c *Creator) DropSQL() string {
	return "DROP TABLE IF EXISTS " + c.table
}

func (c *Creator) columnSQL(col *Column) string {
	if col.autoIncrement {
		return c.dialect.autoIncrement(col)
	}

	var b strings.Builder
	b.WriteString(col.Name)
	b.WriteByte(' ')
	b.WriteString(c.dialect.typeName(col))
	if !col.Optional {
		b.WriteString(" NOT NULL")
	}
	if col.HasDefault {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.dialect.literal(col.Default))
	}
	if col.Unique {
		b.WriteString(" UNIQUE")
	}
	if col.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	return b.String()
}
