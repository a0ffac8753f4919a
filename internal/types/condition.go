package types

// LogicOperator represents how condition items are combined.
type LogicOperator uint8

const (
	LogicAll LogicOperator = iota // items joined by AND
	LogicAny                      // items joined by OR
)

// Op returns the binary operator joining the items.
func (l LogicOperator) Op() BinOp {
	if l == LogicAny {
		return OpOr
	}
	return OpAnd
}

// Condition is a boolean combinator over expressions. Items keep their
// insertion order; an empty All renders as a true predicate, an empty Any
// as a false one.
type Condition struct {
	Items  []Expr
	Logic  LogicOperator
	Negate bool
}

// Add returns a copy of c with e appended. Nested conditions using the
// same operator are flattened when neither is negated; flattening keeps
// evaluation order because AND and OR are associative.
func (c Condition) Add(e Expr) Condition {
	items := make([]Expr, len(c.Items), len(c.Items)+1)
	copy(items, c.Items)
	if inner, ok := e.(Condition); ok && !inner.Negate && inner.Logic == c.Logic {
		items = append(items, inner.Items...)
	} else if e != nil {
		items = append(items, e)
	}
	c.Items = items
	return c
}

// IsEmpty reports whether the condition has no items.
func (c Condition) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Condition) precedence() Precedence {
	if c.Negate {
		return PrecNot
	}
	switch len(c.Items) {
	case 0:
		return PrecComparison
	case 1:
		return PrecedenceOf(c.Items[0])
	}
	return c.Logic.Op().Precedence()
}
