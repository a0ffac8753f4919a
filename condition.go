package sqlkit

import (
	"github.com/zoobzio/sqlkit/internal/types"
)

// Cond is a group of predicates combined with AND (All) or OR (Any).
// Groups nest; an empty All is true and an empty Any is false.
type Cond struct {
	cond types.Condition
}

// All creates a group whose items are joined by AND.
func All(items ...any) Cond {
	c := Cond{cond: types.Condition{Logic: types.LogicAll}}
	return c.Add(items...)
}

// Any creates a group whose items are joined by OR.
func Any(items ...any) Cond {
	c := Cond{cond: types.Condition{Logic: types.LogicAny}}
	return c.Add(items...)
}

// Add returns a copy of the group with items appended.
func (c Cond) Add(items ...any) Cond {
	for _, item := range items {
		c.cond = c.cond.Add(toExpr(item))
	}
	return c
}

// Not returns the negated group.
func (c Cond) Not() Cond {
	c.cond.Negate = !c.cond.Negate
	return c
}

// IsEmpty reports whether the group has no items.
func (c Cond) IsEmpty() bool {
	return c.cond.IsEmpty()
}

// Expr returns the condition node.
func (c Cond) Expr() types.Expr {
	return c.cond
}

// E returns the condition for use with the fluent operators.
func (c Cond) E() E {
	return E{expr: c.cond}
}

// And joins predicates with AND.
func And(items ...any) E {
	return All(items...).E()
}

// Or joins predicates with OR.
func Or(items ...any) E {
	return Any(items...).E()
}

// Not negates a predicate.
func Not(item any) E {
	return E{expr: types.UnaryExpr{Op: types.OpNot, Operand: toExpr(item)}}
}
