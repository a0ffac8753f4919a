package sqlkit

import (
	"fmt"

	"github.com/zoobzio/sqlkit/internal/types"
)

// Exprer is implemented by everything usable as an expression operand:
// E, Cond, *CaseBuilder and *SelectBuilder (as a sub-query).
type Exprer interface {
	Expr() types.Expr
}

// toExpr converts an operand. Builders and expression wrappers contribute
// their tree; any other Go value becomes a bound Value.
func toExpr(v any) types.Expr {
	switch x := v.(type) {
	case nil:
		return types.ValueExpr{Value: types.NullValue()}
	case Exprer:
		return x.Expr()
	case types.Expr:
		return x
	case types.Value:
		return types.ValueExpr{Value: x}
	default:
		return types.ValueExpr{Value: types.FromGo(v)}
	}
}

// colExpr converts an operand in a column position: strings and Idens
// name columns, everything else converts like toExpr.
func colExpr(v any) types.Expr {
	switch x := v.(type) {
	case string:
		return Col(x).Expr()
	case types.Iden:
		return Col(x).Expr()
	default:
		return toExpr(v)
	}
}

func colExprs(vs []any) []types.Expr {
	out := make([]types.Expr, len(vs))
	for i, v := range vs {
		out[i] = colExpr(v)
	}
	return out
}

func toExprs(vs []any) []types.Expr {
	out := make([]types.Expr, len(vs))
	for i, v := range vs {
		out[i] = toExpr(v)
	}
	return out
}

// toIden accepts a string or an Iden.
func toIden(v any) (types.Iden, error) {
	switch x := v.(type) {
	case string:
		return types.Name(x), nil
	case types.Iden:
		if x == nil {
			return nil, fmt.Errorf("identifier is nil")
		}
		return x, nil
	default:
		return nil, fmt.Errorf("identifier must be a string or Iden, got %T", v)
	}
}

func toIdens(vs []any) ([]types.Iden, error) {
	out := make([]types.Iden, len(vs))
	for i, v := range vs {
		id, err := toIden(v)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

func binary(left any, op types.BinOp, right any) E {
	return E{expr: types.BinaryExpr{Left: toExpr(left), Op: op, Right: toExpr(right)}}
}
