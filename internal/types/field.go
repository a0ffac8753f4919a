package types

// Iden is anything that can name a table, column, alias or function.
// The renderer only ever asks for the raw, unquoted name; quoting and
// escaping are the dialect's job.
type Iden interface {
	Unquoted() string
}

// Name is the plain string identifier.
type Name string

// Unquoted returns the name as-is.
func (n Name) Unquoted() string {
	return string(n)
}

// ColumnRef references a column, optionally qualified by table and schema.
// Qualification order is fixed: schema, table, column. A nil Column
// renders as the asterisk.
type ColumnRef struct {
	Schema Iden
	Table  Iden
	Column Iden
	Err    error // set when the reference could not be constructed
}

// IsAsterisk reports whether the reference selects every column.
func (c ColumnRef) IsAsterisk() bool {
	return c.Column == nil
}

// WithTable returns a copy qualified by the given table or alias.
func (c ColumnRef) WithTable(table Iden) ColumnRef {
	c.Table = table
	return c
}
