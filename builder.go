package sqlkit

import (
	"errors"
	"fmt"

	"github.com/zoobzio/sqlkit/internal/types"
)

// SelectBuilder provides a fluent API for constructing SELECT statements.
// Each call appends to or replaces one clause; nothing is validated until
// the statement is rendered.
type SelectBuilder struct {
	stmt *types.SelectStmt
	err  error
}

// Select creates a new SELECT builder with the given select list.
func Select(columns ...any) *SelectBuilder {
	b := &SelectBuilder{stmt: &types.SelectStmt{}}
	return b.Columns(columns...)
}

// Build returns the statement's syntax tree.
func (b *SelectBuilder) Build() (types.Statement, error) {
	return b.selectStmt()
}

// selectStmt returns a copy of the statement so callers embedding it are
// unaffected by later calls on b.
func (b *SelectBuilder) selectStmt() (*types.SelectStmt, error) {
	if b == nil {
		return nil, errors.New("select builder is nil")
	}
	if b.err != nil {
		return nil, b.err
	}
	return b.stmt.Clone(), nil
}

// Expr embeds the query as a scalar sub-query.
func (b *SelectBuilder) Expr() types.Expr {
	return Subquery(b).Expr()
}

// Render renders the statement for d.
func (b *SelectBuilder) Render(d Dialect, opts ...Option) (*QueryResult, error) {
	return Render(b, d, opts...)
}

func (b *SelectBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Columns appends to the select list. Strings and Idens name columns.
func (b *SelectBuilder) Columns(columns ...any) *SelectBuilder {
	for _, c := range columns {
		b.stmt.Columns = append(b.stmt.Columns, types.SelectItem{Expr: colExpr(c)})
	}
	return b
}

// ExprAs appends expr AS alias to the select list.
func (b *SelectBuilder) ExprAs(expr any, alias any) *SelectBuilder {
	a, err := toIden(alias)
	if err != nil {
		b.fail(fmt.Errorf("ExprAs alias: %w", err))
		return b
	}
	b.stmt.Columns = append(b.stmt.Columns, types.SelectItem{Expr: toExpr(expr), Alias: a})
	return b
}

// Distinct sets the DISTINCT flag.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.stmt.Distinct = true
	return b
}

// DistinctOn sets DISTINCT ON (exprs...).
func (b *SelectBuilder) DistinctOn(exprs ...any) *SelectBuilder {
	b.stmt.DistinctOn = colExprs(exprs)
	return b
}

// From appends tables to the FROM clause.
func (b *SelectBuilder) From(tables ...Table) *SelectBuilder {
	for _, t := range tables {
		b.stmt.From = append(b.stmt.From, t.ref)
	}
	return b
}

func (b *SelectBuilder) join(kind types.JoinType, t Table, on []any) *SelectBuilder {
	j := types.Join{Type: kind, Table: t.ref, On: All(on...).cond}
	b.stmt.Joins = append(b.stmt.Joins, j)
	return b
}

// InnerJoin adds an INNER JOIN. Multiple ON predicates are joined by AND.
func (b *SelectBuilder) InnerJoin(t Table, on ...any) *SelectBuilder {
	return b.join(types.InnerJoin, t, on)
}

// LeftJoin adds a LEFT JOIN.
func (b *SelectBuilder) LeftJoin(t Table, on ...any) *SelectBuilder {
	return b.join(types.LeftJoin, t, on)
}

// RightJoin adds a RIGHT JOIN.
func (b *SelectBuilder) RightJoin(t Table, on ...any) *SelectBuilder {
	return b.join(types.RightJoin, t, on)
}

// FullJoin adds a FULL OUTER JOIN.
func (b *SelectBuilder) FullJoin(t Table, on ...any) *SelectBuilder {
	return b.join(types.FullJoin, t, on)
}

// CrossJoin adds a CROSS JOIN.
func (b *SelectBuilder) CrossJoin(t Table) *SelectBuilder {
	return b.join(types.CrossJoin, t, nil)
}

// Where adds predicates, combined by AND with existing ones.
func (b *SelectBuilder) Where(preds ...any) *SelectBuilder {
	b.stmt.Where = andWhere(b.stmt.Where, preds)
	return b
}

// AndWhere is an alias of Where.
func (b *SelectBuilder) AndWhere(preds ...any) *SelectBuilder {
	return b.Where(preds...)
}

// OrWhere combines the existing predicates with pred by OR:
// (existing) OR pred.
func (b *SelectBuilder) OrWhere(pred any) *SelectBuilder {
	b.stmt.Where = orWhere(b.stmt.Where, pred)
	return b
}

// GroupBy appends GROUP BY expressions or column names.
func (b *SelectBuilder) GroupBy(exprs ...any) *SelectBuilder {
	b.stmt.GroupBy = append(b.stmt.GroupBy, colExprs(exprs)...)
	return b
}

// Having adds HAVING predicates, combined by AND with existing ones.
func (b *SelectBuilder) Having(preds ...any) *SelectBuilder {
	b.stmt.Having = andWhere(b.stmt.Having, preds)
	return b
}

// OrderBy appends ORDER BY keys. Keys are Order values, expressions or
// column names; anything but an Order sorts ascending.
func (b *SelectBuilder) OrderBy(keys ...any) *SelectBuilder {
	b.stmt.OrderBy = append(b.stmt.OrderBy, orderKeys(keys)...)
	return b
}

// Limit sets LIMIT, replacing any previous value.
func (b *SelectBuilder) Limit(n int64) *SelectBuilder {
	b.stmt.Limit = &n
	return b
}

// Offset sets OFFSET, replacing any previous value.
func (b *SelectBuilder) Offset(n int64) *SelectBuilder {
	b.stmt.Offset = &n
	return b
}

func (b *SelectBuilder) setLock(kind types.LockType) *SelectBuilder {
	b.stmt.Lock = &types.Lock{Type: kind}
	return b
}

// ForUpdate sets the FOR UPDATE locking clause.
func (b *SelectBuilder) ForUpdate() *SelectBuilder { return b.setLock(types.LockUpdate) }

// ForShare sets the FOR SHARE locking clause.
func (b *SelectBuilder) ForShare() *SelectBuilder { return b.setLock(types.LockShare) }

// ForNoKeyUpdate sets the FOR NO KEY UPDATE locking clause.
func (b *SelectBuilder) ForNoKeyUpdate() *SelectBuilder { return b.setLock(types.LockNoKeyUpdate) }

// ForKeyShare sets the FOR KEY SHARE locking clause.
func (b *SelectBuilder) ForKeyShare() *SelectBuilder { return b.setLock(types.LockKeyShare) }

// Of restricts the locking clause to the given tables or aliases.
func (b *SelectBuilder) Of(tables ...any) *SelectBuilder {
	if b.stmt.Lock == nil {
		b.fail(errors.New("Of requires a locking clause"))
		return b
	}
	ids, err := toIdens(tables)
	if err != nil {
		b.fail(fmt.Errorf("Of: %w", err))
		return b
	}
	lock := *b.stmt.Lock
	lock.Of = ids
	b.stmt.Lock = &lock
	return b
}

func (b *SelectBuilder) setWait(w types.LockWait) *SelectBuilder {
	if b.stmt.Lock == nil {
		b.fail(errors.New("NOWAIT and SKIP LOCKED require a locking clause"))
		return b
	}
	lock := *b.stmt.Lock
	lock.Wait = w
	b.stmt.Lock = &lock
	return b
}

// NoWait fails instead of waiting for locked rows.
func (b *SelectBuilder) NoWait() *SelectBuilder { return b.setWait(types.LockNoWait) }

// SkipLocked skips rows that are locked.
func (b *SelectBuilder) SkipLocked() *SelectBuilder { return b.setWait(types.LockSkipLocked) }

func (b *SelectBuilder) setOp(kind types.SetOpType, q *SelectBuilder) *SelectBuilder {
	stmt, err := q.selectStmt()
	if err != nil {
		b.fail(fmt.Errorf("%s: %w", kind, err))
		return b
	}
	b.stmt.SetOps = append(b.stmt.SetOps, types.SetOp{Type: kind, Query: stmt})
	return b
}

// Union appends UNION q. ORDER BY, LIMIT and OFFSET set on b apply to the
// whole result.
func (b *SelectBuilder) Union(q *SelectBuilder) *SelectBuilder { return b.setOp(types.Union, q) }

// UnionAll appends UNION ALL q.
func (b *SelectBuilder) UnionAll(q *SelectBuilder) *SelectBuilder {
	return b.setOp(types.UnionAll, q)
}

// Intersect appends INTERSECT q.
func (b *SelectBuilder) Intersect(q *SelectBuilder) *SelectBuilder {
	return b.setOp(types.Intersect, q)
}

// Except appends EXCEPT q.
func (b *SelectBuilder) Except(q *SelectBuilder) *SelectBuilder { return b.setOp(types.Except, q) }

// andWhere appends predicates to an AND group. An existing OR group is
// kept intact as a single item.
func andWhere(c types.Condition, preds []any) types.Condition {
	if c.Logic != types.LogicAll || c.Negate {
		c = types.Condition{Logic: types.LogicAll, Items: []types.Expr{c}}
	}
	for _, p := range preds {
		c = c.Add(toExpr(p))
	}
	return c
}

// orWhere regroups the existing predicates as (existing) OR pred.
func orWhere(c types.Condition, pred any) types.Condition {
	if c.IsEmpty() && !c.Negate {
		return types.Condition{Logic: types.LogicAll}.Add(toExpr(pred))
	}
	group := types.Condition{Logic: types.LogicAny}
	if c.Logic == types.LogicAny && !c.Negate {
		group = c
	} else {
		group = group.Add(c)
	}
	return group.Add(toExpr(pred))
}

func orderKeys(keys []any) []types.OrderExpr {
	out := make([]types.OrderExpr, 0, len(keys))
	for _, k := range keys {
		if o, ok := k.(Order); ok {
			out = append(out, o.expr)
			continue
		}
		out = append(out, types.OrderExpr{Expr: colExpr(k)})
	}
	return out
}
