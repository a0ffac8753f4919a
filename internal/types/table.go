package types

// TableRef references a table, optionally schema-qualified and aliased,
// or a derived table (sub-query) which must carry an alias.
type TableRef struct {
	Schema   Iden
	Table    Iden
	Alias    Iden
	SubQuery *SelectStmt
	Err      error // set when the reference could not be constructed
}

// Ref returns the identifier columns of this table are qualified with:
// the alias when one is set, the table name otherwise.
func (t TableRef) Ref() Iden {
	if t.Alias != nil {
		return t.Alias
	}
	return t.Table
}

// Col returns a column reference qualified by Ref.
func (t TableRef) Col(column Iden) ColumnRef {
	return ColumnRef{Table: t.Ref(), Column: column}
}

// As returns a copy of the reference with the given alias.
func (t TableRef) As(alias Iden) TableRef {
	t.Alias = alias
	return t
}
