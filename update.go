package sqlkit

import (
	"fmt"

	"github.com/zoobzio/sqlkit/internal/types"
)

// UpdateBuilder provides a fluent API for constructing UPDATE statements.
type UpdateBuilder struct {
	stmt *types.UpdateStmt
	err  error
}

// Update creates a new UPDATE builder for table t.
func Update(t Table) *UpdateBuilder {
	return &UpdateBuilder{stmt: &types.UpdateStmt{Table: t.ref}}
}

// Build returns the statement's syntax tree.
func (b *UpdateBuilder) Build() (types.Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.stmt, nil
}

// Render renders the statement for d.
func (b *UpdateBuilder) Render(d Dialect, opts ...Option) (*QueryResult, error) {
	return Render(b, d, opts...)
}

// Set appends column = value to the SET list. Assignments render in the
// order they were added.
func (b *UpdateBuilder) Set(column, value any) *UpdateBuilder {
	id, err := toIden(column)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("Set: %w", err)
		}
		return b
	}
	b.stmt.Sets = append(b.stmt.Sets, types.Assignment{Column: id, Value: toExpr(value)})
	return b
}

// Where adds predicates, combined by AND with existing ones.
func (b *UpdateBuilder) Where(preds ...any) *UpdateBuilder {
	b.stmt.Where = andWhere(b.stmt.Where, preds)
	return b
}

// OrWhere combines the existing predicates with pred by OR.
func (b *UpdateBuilder) OrWhere(pred any) *UpdateBuilder {
	b.stmt.Where = orWhere(b.stmt.Where, pred)
	return b
}

// OrderBy appends ORDER BY keys, for dialects supporting ordered updates.
func (b *UpdateBuilder) OrderBy(keys ...any) *UpdateBuilder {
	b.stmt.OrderBy = append(b.stmt.OrderBy, orderKeys(keys)...)
	return b
}

// Limit sets LIMIT, for dialects supporting limited updates.
func (b *UpdateBuilder) Limit(n int64) *UpdateBuilder {
	b.stmt.Limit = &n
	return b
}

// Returning sets the columns handed back for each updated row.
func (b *UpdateBuilder) Returning(columns ...any) *UpdateBuilder {
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

// ReturningAll hands back every column of each updated row.
func (b *UpdateBuilder) ReturningAll() *UpdateBuilder {
	b.stmt.Returning = &types.Returning{All: true}
	return b
}
