package sqlkit

import (
	"github.com/zoobzio/sqlkit/internal/types"
)

// E wraps an expression node and provides the fluent operators. The
// zero value is invalid; construct E values through Col, Val, the
// function helpers and the operators below. Every operator returns a new
// E and leaves the receiver untouched.
type E struct {
	expr types.Expr
}

// Expr returns the underlying expression node.
func (e E) Expr() types.Expr {
	if e.expr == nil {
		return types.InvalidExpr{Err: errZeroExpr}
	}
	return e.expr
}

// Col references a column by name.
func Col(name any) E {
	id, err := toIden(name)
	return E{expr: types.ColumnExpr{Ref: types.ColumnRef{Column: id, Err: err}}}
}

// TableCol references a column qualified by a table name or alias.
func TableCol(table, name any) E {
	t, err := toIden(table)
	c, cerr := toIden(name)
	if err == nil {
		err = cerr
	}
	return E{expr: types.ColumnExpr{Ref: types.ColumnRef{Table: t, Column: c, Err: err}}}
}

// SchemaCol references a column qualified by schema and table.
func SchemaCol(schema, table, name any) E {
	s, err := toIden(schema)
	t, terr := toIden(table)
	c, cerr := toIden(name)
	for _, e := range []error{terr, cerr} {
		if err == nil {
			err = e
		}
	}
	return E{expr: types.ColumnExpr{Ref: types.ColumnRef{Schema: s, Table: t, Column: c, Err: err}}}
}

// Star selects every column.
func Star() E {
	return E{expr: types.ColumnExpr{}}
}

// TableStar selects every column of a table or alias.
func TableStar(table any) E {
	t, err := toIden(table)
	return E{expr: types.ColumnExpr{Ref: types.ColumnRef{Table: t, Err: err}}}
}

// Eq creates e = v.
func (e E) Eq(v any) E { return binary(e, types.OpEq, v) }

// Ne creates e <> v.
func (e E) Ne(v any) E { return binary(e, types.OpNe, v) }

// Lt creates e < v.
func (e E) Lt(v any) E { return binary(e, types.OpLt, v) }

// Le creates e <= v.
func (e E) Le(v any) E { return binary(e, types.OpLe, v) }

// Gt creates e > v.
func (e E) Gt(v any) E { return binary(e, types.OpGt, v) }

// Ge creates e >= v.
func (e E) Ge(v any) E { return binary(e, types.OpGe, v) }

// Like creates e LIKE pattern.
func (e E) Like(pattern any) E { return binary(e, types.OpLike, pattern) }

// NotLike creates e NOT LIKE pattern.
func (e E) NotLike(pattern any) E { return binary(e, types.OpNotLike, pattern) }

// ILike creates the case-insensitive e ILIKE pattern.
func (e E) ILike(pattern any) E { return binary(e, types.OpILike, pattern) }

// NotILike creates e NOT ILIKE pattern.
func (e E) NotILike(pattern any) E { return binary(e, types.OpNotILike, pattern) }

// In creates e IN (v, ...). With no values it matches nothing.
func (e E) In(values ...any) E {
	return binary(e, types.OpIn, types.TupleExpr{Items: toExprs(values)})
}

// NotIn creates e NOT IN (v, ...). With no values it matches everything.
func (e E) NotIn(values ...any) E {
	return binary(e, types.OpNotIn, types.TupleExpr{Items: toExprs(values)})
}

// InSubquery creates e IN (SELECT ...).
func (e E) InSubquery(q *SelectBuilder) E { return binary(e, types.OpIn, q) }

// NotInSubquery creates e NOT IN (SELECT ...).
func (e E) NotInSubquery(q *SelectBuilder) E { return binary(e, types.OpNotIn, q) }

// IsNull creates e IS NULL.
func (e E) IsNull() E { return binary(e, types.OpIs, Null()) }

// IsNotNull creates e IS NOT NULL.
func (e E) IsNotNull() E { return binary(e, types.OpIsNot, Null()) }

// Is creates e IS v, for v NULL, TRUE or FALSE. A Go nil or bool is
// written inline; IS takes no parameters.
func (e E) Is(v any) E { return binary(e, types.OpIs, isOperand(v)) }

// IsNot creates e IS NOT v.
func (e E) IsNot(v any) E { return binary(e, types.OpIsNot, isOperand(v)) }

func isOperand(v any) any {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return Lit(x)
	}
	return v
}

// Between creates e BETWEEN low AND high.
func (e E) Between(low, high any) E {
	return E{expr: types.BetweenExpr{Expr: e.Expr(), Low: toExpr(low), High: toExpr(high)}}
}

// NotBetween creates e NOT BETWEEN low AND high.
func (e E) NotBetween(low, high any) E {
	return E{expr: types.BetweenExpr{Expr: e.Expr(), Low: toExpr(low), High: toExpr(high), Negate: true}}
}

// Add creates e + v.
func (e E) Add(v any) E { return binary(e, types.OpAdd, v) }

// Sub creates e - v.
func (e E) Sub(v any) E { return binary(e, types.OpSub, v) }

// Mul creates e * v.
func (e E) Mul(v any) E { return binary(e, types.OpMul, v) }

// Div creates e / v.
func (e E) Div(v any) E { return binary(e, types.OpDiv, v) }

// Mod creates e % v.
func (e E) Mod(v any) E { return binary(e, types.OpMod, v) }

// Neg creates -e.
func (e E) Neg() E {
	return E{expr: types.UnaryExpr{Op: types.OpNeg, Operand: e.Expr()}}
}

// Not creates NOT e.
func (e E) Not() E {
	return Not(e)
}

// And creates e AND v.
func (e E) And(v any) E { return And(e, v) }

// Or creates e OR v.
func (e E) Or(v any) E { return Or(e, v) }

// Get accesses a JSON field or array element: e -> key.
func (e E) Get(key any) E { return binary(e, types.OpJSONGet, key) }

// GetText accesses a JSON field as text: e ->> key.
func (e E) GetText(key any) E { return binary(e, types.OpJSONGetText, key) }

// Cast creates CAST(e AS typ). typ must be a plain SQL type name such as
// "integer", "varchar(255)" or "text[]".
func (e E) Cast(typ string) E {
	return E{expr: types.CastExpr{Expr: e.Expr(), Type: typ}}
}

// Over applies a window to a function call. On anything other than a
// function call it records an error reported at render time.
func (e E) Over(w *WindowBuilder) E {
	f, ok := e.expr.(types.FuncExpr)
	if !ok {
		return E{expr: types.InvalidExpr{Err: errOverNonFunction}}
	}
	spec := w.spec()
	f.Over = &spec
	return E{expr: f}
}

// Asc orders by e ascending.
func (e E) Asc() Order {
	return Order{expr: types.OrderExpr{Expr: e.Expr()}}
}

// Desc orders by e descending.
func (e E) Desc() Order {
	return Order{expr: types.OrderExpr{Expr: e.Expr(), Desc: true}}
}

// Order is an ORDER BY key.
type Order struct {
	expr types.OrderExpr
}

// NullsFirst places NULLs before other values.
func (o Order) NullsFirst() Order {
	o.expr.Nulls = types.NullsFirst
	return o
}

// NullsLast places NULLs after other values.
func (o Order) NullsLast() Order {
	o.expr.Nulls = types.NullsLast
	return o
}
