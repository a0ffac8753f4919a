package sqlkit

import (
	"errors"

	"github.com/zoobzio/sqlkit/internal/types"
)

var (
	errZeroExpr        = errors.New("zero value expression; construct expressions with Col, Val or a helper")
	errOverNonFunction = errors.New("OVER can only be applied to a function call")
)

// Null is the NULL keyword.
func Null() E { return E{expr: types.KeywordExpr{Keyword: types.KwNull}} }

// Default is the DEFAULT keyword, usable in VALUES rows and SET lists.
func Default() E { return E{expr: types.KeywordExpr{Keyword: types.KwDefault}} }

// CurrentTimestamp is the CURRENT_TIMESTAMP keyword.
func CurrentTimestamp() E { return E{expr: types.KeywordExpr{Keyword: types.KwCurrentTimestamp}} }

// CurrentDate is the CURRENT_DATE keyword.
func CurrentDate() E { return E{expr: types.KeywordExpr{Keyword: types.KwCurrentDate}} }

// Tuple creates (a, b, ...).
func Tuple(items ...any) E {
	return E{expr: types.TupleExpr{Items: toExprs(items)}}
}

// Exists creates EXISTS (SELECT ...).
func Exists(q *SelectBuilder) E { return subquery(q, types.SubQueryExists) }

// NotExists creates NOT EXISTS (SELECT ...).
func NotExists(q *SelectBuilder) E { return subquery(q, types.SubQueryNotExists) }

// AnyOf creates ANY (SELECT ...) for quantified comparisons.
func AnyOf(q *SelectBuilder) E { return subquery(q, types.SubQueryAny) }

// AllOf creates ALL (SELECT ...) for quantified comparisons.
func AllOf(q *SelectBuilder) E { return subquery(q, types.SubQueryAll) }

// Subquery embeds a SELECT as a scalar sub-query.
func Subquery(q *SelectBuilder) E { return subquery(q, types.SubQueryPlain) }

func subquery(q *SelectBuilder, op types.SubQueryOp) E {
	stmt, err := q.selectStmt()
	if err != nil {
		return E{expr: types.InvalidExpr{Err: err}}
	}
	return E{expr: types.SubQueryExpr{Query: stmt, Op: op}}
}

// Excluded references a column of the row proposed for insertion, inside
// an upsert update list. It renders EXCLUDED.col or VALUES(col).
func Excluded(column any) E {
	id, err := toIden(column)
	if err != nil {
		return E{expr: types.InvalidExpr{Err: err}}
	}
	return E{expr: types.ExcludedExpr{Column: id}}
}

func call(f types.Function, args ...any) E {
	return E{expr: types.FuncExpr{Func: f, Args: toExprs(args)}}
}

// Max creates MAX(e).
func Max(e any) E { return call(types.FnMax, e) }

// Min creates MIN(e).
func Min(e any) E { return call(types.FnMin, e) }

// Sum creates SUM(e).
func Sum(e any) E { return call(types.FnSum, e) }

// Avg creates AVG(e).
func Avg(e any) E { return call(types.FnAvg, e) }

// Count creates COUNT(e).
func Count(e any) E { return call(types.FnCount, e) }

// CountStar creates COUNT(*).
func CountStar() E { return E{expr: types.FuncExpr{Func: types.FnCount, Star: true}} }

// CountDistinct creates COUNT(DISTINCT e).
func CountDistinct(e any) E {
	return E{expr: types.FuncExpr{Func: types.FnCount, Args: []types.Expr{toExpr(e)}, Distinct: true}}
}

// IfNull creates IFNULL(e, fallback), spelled COALESCE or ISNULL where
// the dialect requires.
func IfNull(e, fallback any) E { return call(types.FnIfNull, e, fallback) }

// Coalesce creates COALESCE(a, b, ...).
func Coalesce(args ...any) E { return call(types.FnCoalesce, args...) }

// CharLength creates CHAR_LENGTH(e).
func CharLength(e any) E { return call(types.FnCharLength, e) }

// Lower creates LOWER(e).
func Lower(e any) E { return call(types.FnLower, e) }

// Upper creates UPPER(e).
func Upper(e any) E { return call(types.FnUpper, e) }

// Abs creates ABS(e).
func Abs(e any) E { return call(types.FnAbs, e) }

// Round creates ROUND(e) or ROUND(e, digits).
func Round(e any, digits ...any) E { return call(types.FnRound, append([]any{e}, digits...)...) }

// Now creates the current timestamp function call.
func Now() E { return call(types.FnNow) }

// RowNumber creates ROW_NUMBER(); it must be given a window with Over.
func RowNumber() E { return call(types.FnRowNumber) }

// Rank creates RANK(); it must be given a window with Over.
func Rank() E { return call(types.FnRank) }

// DenseRank creates DENSE_RANK(); it must be given a window with Over.
func DenseRank() E { return call(types.FnDenseRank) }

// Func calls a function by name. The name is validated at render time
// and written unquoted.
func Func(name any, args ...any) E {
	id, err := toIden(name)
	if err != nil {
		return E{expr: types.InvalidExpr{Err: err}}
	}
	return E{expr: types.FuncExpr{Func: types.FnCustom, Custom: id, Args: toExprs(args)}}
}

// CaseBuilder builds a searched CASE expression.
type CaseBuilder struct {
	expr types.CaseExpr
}

// Case starts a CASE expression.
func Case() *CaseBuilder {
	return &CaseBuilder{}
}

// When adds a WHEN cond THEN result branch.
func (c *CaseBuilder) When(cond, result any) *CaseBuilder {
	whens := make([]types.CaseWhen, len(c.expr.Whens), len(c.expr.Whens)+1)
	copy(whens, c.expr.Whens)
	c.expr.Whens = append(whens, types.CaseWhen{When: toExpr(cond), Then: toExpr(result)})
	return c
}

// Else sets the ELSE result.
func (c *CaseBuilder) Else(result any) *CaseBuilder {
	c.expr.Else = toExpr(result)
	return c
}

// Expr returns the CASE expression node.
func (c *CaseBuilder) Expr() types.Expr {
	return c.expr
}

// E returns the CASE expression for use with the fluent operators.
func (c *CaseBuilder) E() E {
	return E{expr: c.expr}
}

// WindowBuilder builds the body of an OVER clause.
type WindowBuilder struct {
	partition []types.Expr
	order     []types.OrderExpr
}

// Window starts a window specification.
func Window() *WindowBuilder {
	return &WindowBuilder{}
}

// PartitionBy appends PARTITION BY expressions or column names.
func (w *WindowBuilder) PartitionBy(exprs ...any) *WindowBuilder {
	w.partition = append(w.partition, colExprs(exprs)...)
	return w
}

// OrderBy appends ORDER BY keys.
func (w *WindowBuilder) OrderBy(keys ...Order) *WindowBuilder {
	for _, k := range keys {
		w.order = append(w.order, k.expr)
	}
	return w
}

func (w *WindowBuilder) spec() types.WindowSpec {
	if w == nil {
		return types.WindowSpec{}
	}
	return types.WindowSpec{
		PartitionBy: append([]types.Expr(nil), w.partition...),
		OrderBy:     append([]types.OrderExpr(nil), w.order...),
	}
}
