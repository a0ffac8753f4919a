package sqlkit

import (
	"errors"

	"github.com/zoobzio/sqlkit/internal/types"
)

// Table references a table, optionally schema-qualified and aliased, or
// a derived table.
type Table struct {
	ref types.TableRef
}

// T references a table by name. Name may be a string or an Iden.
func T(name any) Table {
	id, err := toIden(name)
	return Table{ref: types.TableRef{Table: id, Err: err}}
}

// SchemaT references a schema-qualified table.
func SchemaT(schema, name any) Table {
	s, err := toIden(schema)
	id, nerr := toIden(name)
	if err == nil {
		err = nerr
	}
	return Table{ref: types.TableRef{Schema: s, Table: id, Err: err}}
}

// Derived uses a SELECT as a table. Derived tables must carry an alias.
func Derived(q *SelectBuilder, alias any) Table {
	stmt, err := q.selectStmt()
	if err != nil {
		return Table{ref: types.TableRef{Err: err}}
	}
	a, err := toIden(alias)
	if err != nil {
		return Table{ref: types.TableRef{Err: err}}
	}
	return Table{ref: types.TableRef{SubQuery: stmt, Alias: a}}
}

// As returns a copy of the table with the given alias.
func (t Table) As(alias any) Table {
	a, err := toIden(alias)
	if err != nil {
		t.ref.Err = errors.Join(t.ref.Err, err)
		return t
	}
	t.ref = t.ref.As(a)
	return t
}

// Col references a column qualified by the alias when set, otherwise by
// the table name.
func (t Table) Col(name any) E {
	id, err := toIden(name)
	ref := t.ref.Col(id)
	ref.Err = errors.Join(t.ref.Err, err)
	return E{expr: types.ColumnExpr{Ref: ref}}
}

// Star selects every column of the table.
func (t Table) Star() E {
	return E{expr: types.ColumnExpr{Ref: types.ColumnRef{Table: t.ref.Ref(), Err: t.ref.Err}}}
}

// Ref returns the underlying table reference.
func (t Table) Ref() types.TableRef {
	return t.ref
}
