package sqlkit

import (
	"github.com/zoobzio/sqlkit/internal/types"
)

// DeleteBuilder provides a fluent API for constructing DELETE statements.
type DeleteBuilder struct {
	stmt *types.DeleteStmt
	err  error
}

// Delete creates a new DELETE builder for table t.
func Delete(t Table) *DeleteBuilder {
	return &DeleteBuilder{stmt: &types.DeleteStmt{Table: t.ref}}
}

// Build returns the statement's syntax tree.
func (b *DeleteBuilder) Build() (types.Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.stmt, nil
}

// Render renders the statement for d.
func (b *DeleteBuilder) Render(d Dialect, opts ...Option) (*QueryResult, error) {
	return Render(b, d, opts...)
}

// Where adds predicates, combined by AND with existing ones.
func (b *DeleteBuilder) Where(preds ...any) *DeleteBuilder {
	b.stmt.Where = andWhere(b.stmt.Where, preds)
	return b
}

// OrWhere combines the existing predicates with pred by OR.
func (b *DeleteBuilder) OrWhere(pred any) *DeleteBuilder {
	b.stmt.Where = orWhere(b.stmt.Where, pred)
	return b
}

// OrderBy appends ORDER BY keys, for dialects supporting ordered deletes.
func (b *DeleteBuilder) OrderBy(keys ...any) *DeleteBuilder {
	b.stmt.OrderBy = append(b.stmt.OrderBy, orderKeys(keys)...)
	return b
}

// Limit sets LIMIT, for dialects supporting limited deletes.
func (b *DeleteBuilder) Limit(n int64) *DeleteBuilder {
	b.stmt.Limit = &n
	return b
}

// Returning sets the columns handed back for each deleted row.
func (b *DeleteBuilder) Returning(columns ...any) *DeleteBuilder {
	r, err := returning(columns)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.stmt.Returning = r
	return b
}

// ReturningAll hands back every column of each deleted row.
func (b *DeleteBuilder) ReturningAll() *DeleteBuilder {
	b.stmt.Returning = &types.Returning{All: true}
	return b
}
