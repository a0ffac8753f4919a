package sqlkit

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zoobzio/sqlkit/internal/types"
)

// InsertBuilder provides a fluent API for constructing INSERT statements.
type InsertBuilder struct {
	stmt *types.InsertStmt
	err  error
}

// Insert creates a new INSERT builder for table t.
func Insert(t Table) *InsertBuilder {
	return &InsertBuilder{stmt: &types.InsertStmt{Table: t.ref}}
}

// Build returns the statement's syntax tree.
func (b *InsertBuilder) Build() (types.Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.stmt, nil
}

// Render renders the statement for d.
func (b *InsertBuilder) Render(d Dialect, opts ...Option) (*QueryResult, error) {
	return Render(b, d, opts...)
}

func (b *InsertBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Columns appends to the column list.
func (b *InsertBuilder) Columns(columns ...any) *InsertBuilder {
	ids, err := toIdens(columns)
	if err != nil {
		b.fail(fmt.Errorf("Columns: %w", err))
		return b
	}
	b.stmt.Columns = append(b.stmt.Columns, ids...)
	return b
}

// Values appends a VALUES row. Row arity is checked against the column
// list when the statement is rendered.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.stmt.Rows = append(b.stmt.Rows, toExprs(values))
	return b
}

// Select uses a query as the row source: INSERT INTO t (cols) SELECT ...
func (b *InsertBuilder) Select(q *SelectBuilder) *InsertBuilder {
	stmt, err := q.selectStmt()
	if err != nil {
		b.fail(fmt.Errorf("Select: %w", err))
		return b
	}
	b.stmt.Select = stmt
	return b
}

// DefaultValues inserts a single row of column defaults.
func (b *InsertBuilder) DefaultValues() *InsertBuilder {
	b.stmt.DefaultValues = true
	return b
}

// OnConflict sets the upsert clause, replacing any previous one.
func (b *InsertBuilder) OnConflict(c *Conflict) *InsertBuilder {
	if c == nil {
		b.fail(errors.New("OnConflict: conflict clause is nil"))
		return b
	}
	if c.err != nil {
		b.fail(fmt.Errorf("OnConflict: %w", c.err))
		return b
	}
	clause := c.clause
	clause.Targets = slices.Clone(c.clause.Targets)
	clause.Updates = slices.Clone(c.clause.Updates)
	b.stmt.OnConflict = &clause
	return b
}

// Returning sets the columns handed back for each inserted row.
func (b *InsertBuilder) Returning(columns ...any) *InsertBuilder {
	r, err := returning(columns)
	if err != nil {
		b.fail(err)
		return b
	}
	b.stmt.Returning = r
	return b
}

// ReturningAll hands back every column of each inserted row.
func (b *InsertBuilder) ReturningAll() *InsertBuilder {
	b.stmt.Returning = &types.Returning{All: true}
	return b
}

func returning(columns []any) (*types.Returning, error) {
	ids, err := toIdens(columns)
	if err != nil {
		return nil, fmt.Errorf("Returning: %w", err)
	}
	return &types.Returning{Columns: ids}, nil
}

// Conflict builds the upsert clause of an INSERT.
type Conflict struct {
	err    error
	clause types.OnConflict
}

// OnConflict starts an upsert clause on the given conflict target
// columns. MySQL has no conflict targets and ignores them.
func OnConflict(targets ...any) *Conflict {
	ids, err := toIdens(targets)
	return &Conflict{clause: types.OnConflict{Targets: ids}, err: err}
}

// DoNothing skips conflicting rows.
func (c *Conflict) DoNothing() *Conflict {
	c.clause.DoNothing = true
	return c
}

// UpdateColumns overwrites the listed columns with the values proposed
// for insertion.
func (c *Conflict) UpdateColumns(columns ...any) *Conflict {
	for _, col := range columns {
		id, err := toIden(col)
		if err != nil {
			c.err = errors.Join(c.err, err)
			continue
		}
		c.clause.Updates = append(c.clause.Updates, types.Assignment{
			Column: id,
			Value:  types.ExcludedExpr{Column: id},
		})
	}
	return c
}

// Set assigns column = value when a conflict occurs. Use Excluded to
// refer to the proposed row.
func (c *Conflict) Set(column, value any) *Conflict {
	id, err := toIden(column)
	if err != nil {
		c.err = errors.Join(c.err, err)
		return c
	}
	c.clause.Updates = append(c.clause.Updates, types.Assignment{Column: id, Value: toExpr(value)})
	return c
}
