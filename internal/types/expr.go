package types

import "math"

// Expr is a node of the expression tree. The set of variants is closed:
// only types in this package implement it. Nodes are never mutated after
// construction; builders replace whole sub-trees instead.
type Expr interface {
	exprNode()
}

// ColumnExpr references a column.
type ColumnExpr struct {
	Ref ColumnRef
}

// ValueExpr carries a literal. Inline values are spliced into the text,
// everything else is bound through a placeholder.
type ValueExpr struct {
	Value  Value
	Inline bool
}

// BinaryExpr applies a binary operator.
type BinaryExpr struct {
	Left  Expr
	Right Expr
	Op    BinOp
}

// UnaryExpr applies a prefix operator.
type UnaryExpr struct {
	Operand Expr
	Op      UnOp
}

// BetweenExpr is expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr   Expr
	Low    Expr
	High   Expr
	Negate bool
}

// WindowSpec is the body of an OVER clause.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []OrderExpr
}

// FuncExpr calls a function. Custom is used when Func is FnCustom.
type FuncExpr struct {
	Custom   Iden
	Over     *WindowSpec
	Args     []Expr
	Func     Function
	Distinct bool
	Star     bool // COUNT(*)
}

// CaseWhen is one WHEN ... THEN ... branch.
type CaseWhen struct {
	When Expr
	Then Expr
}

// CaseExpr is a searched CASE expression.
type CaseExpr struct {
	Else  Expr
	Whens []CaseWhen
}

// SubQueryExpr embeds a SELECT inside an expression.
type SubQueryExpr struct {
	Query *SelectStmt
	Op    SubQueryOp
}

// TupleExpr is a parenthesized, comma separated list.
type TupleExpr struct {
	Items []Expr
}

// RawExpr is an unescaped SQL fragment. Each '?' in SQL is replaced by a
// placeholder bound to the matching entry of Values.
type RawExpr struct {
	SQL    string
	Values []Value
}

// KeywordExpr renders a bare keyword.
type KeywordExpr struct {
	Keyword Keyword
}

// CastExpr is CAST(expr AS type).
type CastExpr struct {
	Expr Expr
	Type string
}

// ExcludedExpr references the row proposed for insertion inside an
// upsert's update list.
type ExcludedExpr struct {
	Column Iden
}

// InvalidExpr records a construction failure. Rendering it fails with
// the stored error.
type InvalidExpr struct {
	Err error
}

func (ColumnExpr) exprNode()   {}
func (ValueExpr) exprNode()    {}
func (BinaryExpr) exprNode()   {}
func (UnaryExpr) exprNode()    {}
func (BetweenExpr) exprNode()  {}
func (FuncExpr) exprNode()     {}
func (CaseExpr) exprNode()     {}
func (SubQueryExpr) exprNode() {}
func (TupleExpr) exprNode()    {}
func (RawExpr) exprNode()      {}
func (KeywordExpr) exprNode()  {}
func (CastExpr) exprNode()     {}
func (ExcludedExpr) exprNode() {}
func (InvalidExpr) exprNode()  {}
func (Condition) exprNode()    {}

// PrecedenceOf returns the precedence e renders at.
func PrecedenceOf(e Expr) Precedence {
	switch x := e.(type) {
	case BinaryExpr:
		return x.Op.Precedence()
	case UnaryExpr:
		if x.Op == OpNot {
			return PrecNot
		}
		return PrecUnary
	case BetweenExpr:
		return PrecComparison
	case ValueExpr:
		if x.Inline && isNegative(x.Value) {
			return PrecUnary
		}
		return PrecPrimary
	case RawExpr:
		// Unknown content; always wrap when it appears inside an operator.
		return PrecLowest
	case SubQueryExpr:
		if x.Op == SubQueryExists || x.Op == SubQueryNotExists {
			return PrecComparison
		}
		return PrecPrimary
	case Condition:
		return x.precedence()
	default:
		return PrecPrimary
	}
}

func isNegative(v Value) bool {
	switch v.Kind() {
	case KindInt:
		return v.Int() < 0
	case KindFloat:
		// -0 prints with its sign.
		return math.Signbit(v.Float())
	default:
		return false
	}
}
