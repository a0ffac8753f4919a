package sqlkit

import (
	"errors"
	"fmt"

	"github.com/zoobzio/sqlkit/internal/types"
)

// WithBuilder prefixes a statement with common table expressions.
type WithBuilder struct {
	stmt *types.WithStmt
	err  error
}

// With starts a WITH clause.
func With() *WithBuilder {
	return &WithBuilder{stmt: &types.WithStmt{}}
}

// Recursive marks the WITH clause as recursive.
func (b *WithBuilder) Recursive() *WithBuilder {
	b.stmt.Recursive = true
	return b
}

// CTE adds a named query, optionally with a column list.
func (b *WithBuilder) CTE(name any, q *SelectBuilder, columns ...any) *WithBuilder {
	id, err := toIden(name)
	if err != nil {
		b.fail(fmt.Errorf("CTE name: %w", err))
		return b
	}
	cols, err := toIdens(columns)
	if err != nil {
		b.fail(fmt.Errorf("CTE %s columns: %w", id.Unquoted(), err))
		return b
	}
	stmt, err := q.selectStmt()
	if err != nil {
		b.fail(fmt.Errorf("CTE %s: %w", id.Unquoted(), err))
		return b
	}
	b.stmt.CTEs = append(b.stmt.CTEs, types.CTE{Name: id, Query: stmt, Columns: cols})
	return b
}

// Query sets the statement the CTEs are visible to. It accepts any
// statement builder except another WITH.
func (b *WithBuilder) Query(s Statement) *WithBuilder {
	if s == nil {
		b.fail(errors.New("Query: statement is nil"))
		return b
	}
	stmt, err := s.Build()
	if err != nil {
		b.fail(fmt.Errorf("Query: %w", err))
		return b
	}
	if sel, ok := stmt.(*types.SelectStmt); ok {
		stmt = sel.Clone()
	}
	b.stmt.Body = stmt
	return b
}

// Build returns the statement's syntax tree.
func (b *WithBuilder) Build() (types.Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.stmt, nil
}

// Render renders the statement for d.
func (b *WithBuilder) Render(d Dialect, opts ...Option) (*QueryResult, error) {
	return Render(b, d, opts...)
}

func (b *WithBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
