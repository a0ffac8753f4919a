package types

// Precedence ranks how tightly an expression binds. A node renders
// parenthesized iff its precedence is lower than the minimum its context
// requires.
type Precedence int

const (
	PrecLowest Precedence = iota
	PrecOr
	PrecAnd
	PrecNot
	PrecComparison
	PrecOther // JSON access operators
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPrimary
)

// Associativity decides the context precedence of a binary operator's operands.
type Associativity uint8

const (
	// Associative operators render both operands at their own precedence.
	Associative Associativity = iota
	// LeftAssociative operators bump the right operand by one level.
	LeftAssociative
	// NonAssociative operators bump both operands by one level.
	NonAssociative
)

// BinOp represents a binary operator.
type BinOp uint8

const (
	OpAnd BinOp = iota + 1
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLike
	OpNotLike
	OpILike
	OpNotILike
	OpIn
	OpNotIn
	OpIs
	OpIsNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpJSONGet     // ->
	OpJSONGetText // ->>
)

type binOpInfo struct {
	text  string
	prec  Precedence
	assoc Associativity
}

var binOps = map[BinOp]binOpInfo{
	OpAnd:         {"AND", PrecAnd, Associative},
	OpOr:          {"OR", PrecOr, Associative},
	OpEq:          {"=", PrecComparison, NonAssociative},
	OpNe:          {"<>", PrecComparison, NonAssociative},
	OpLt:          {"<", PrecComparison, NonAssociative},
	OpLe:          {"<=", PrecComparison, NonAssociative},
	OpGt:          {">", PrecComparison, NonAssociative},
	OpGe:          {">=", PrecComparison, NonAssociative},
	OpLike:        {"LIKE", PrecComparison, NonAssociative},
	OpNotLike:     {"NOT LIKE", PrecComparison, NonAssociative},
	OpILike:       {"ILIKE", PrecComparison, NonAssociative},
	OpNotILike:    {"NOT ILIKE", PrecComparison, NonAssociative},
	OpIn:          {"IN", PrecComparison, NonAssociative},
	OpNotIn:       {"NOT IN", PrecComparison, NonAssociative},
	OpIs:          {"IS", PrecComparison, NonAssociative},
	OpIsNot:       {"IS NOT", PrecComparison, NonAssociative},
	OpAdd:         {"+", PrecAdditive, Associative},
	OpSub:         {"-", PrecAdditive, LeftAssociative},
	OpMul:         {"*", PrecMultiplicative, Associative},
	OpDiv:         {"/", PrecMultiplicative, LeftAssociative},
	OpMod:         {"%", PrecMultiplicative, LeftAssociative},
	OpJSONGet:     {"->", PrecOther, LeftAssociative},
	OpJSONGetText: {"->>", PrecOther, LeftAssociative},
}

// String returns the SQL spelling of the operator.
func (op BinOp) String() string {
	if info, ok := binOps[op]; ok {
		return info.text
	}
	return "?op"
}

// Valid reports whether op is a known operator.
func (op BinOp) Valid() bool {
	_, ok := binOps[op]
	return ok
}

// Precedence returns the binding strength of op.
func (op BinOp) Precedence() Precedence { return binOps[op].prec }

// Associativity returns how operands of op group.
func (op BinOp) Associativity() Associativity { return binOps[op].assoc }

// Operands returns the minimum context precedence for the left and right
// operand of op.
func (op BinOp) Operands() (left, right Precedence) {
	p := op.Precedence()
	switch op.Associativity() {
	case LeftAssociative:
		return p, p + 1
	case NonAssociative:
		return p + 1, p + 1
	default:
		return p, p
	}
}

// UnOp represents a prefix operator.
type UnOp uint8

const (
	OpNot UnOp = iota + 1
	OpNeg
)

func (op UnOp) String() string {
	switch op {
	case OpNot:
		return "NOT"
	case OpNeg:
		return "-"
	default:
		return "?op"
	}
}

// Function identifies a built-in SQL function. Dialects may spell a
// function differently; see render.Dialect.FunctionName.
type Function uint8

const (
	FnCustom Function = iota
	FnMax
	FnMin
	FnSum
	FnAvg
	FnCount
	FnIfNull
	FnCharLength
	FnCoalesce
	FnLower
	FnUpper
	FnAbs
	FnRound
	FnNow
	FnRowNumber
	FnRank
	FnDenseRank
)

var functionNames = map[Function]string{
	FnMax:        "MAX",
	FnMin:        "MIN",
	FnSum:        "SUM",
	FnAvg:        "AVG",
	FnCount:      "COUNT",
	FnIfNull:     "IFNULL",
	FnCharLength: "CHAR_LENGTH",
	FnCoalesce:   "COALESCE",
	FnLower:      "LOWER",
	FnUpper:      "UPPER",
	FnAbs:        "ABS",
	FnRound:      "ROUND",
	FnNow:        "NOW",
	FnRowNumber:  "ROW_NUMBER",
	FnRank:       "RANK",
	FnDenseRank:  "DENSE_RANK",
}

// String returns the standard SQL name of the function.
func (f Function) String() string { return functionNames[f] }

// IsWindowOnly reports whether f is only valid with an OVER clause.
func (f Function) IsWindowOnly() bool {
	return f == FnRowNumber || f == FnRank || f == FnDenseRank
}

// Keyword is a bare SQL keyword usable as an expression.
type Keyword uint8

const (
	KwNull Keyword = iota + 1
	KwDefault
	KwCurrentTimestamp
	KwCurrentDate
)

func (k Keyword) String() string {
	switch k {
	case KwNull:
		return "NULL"
	case KwDefault:
		return "DEFAULT"
	case KwCurrentTimestamp:
		return "CURRENT_TIMESTAMP"
	case KwCurrentDate:
		return "CURRENT_DATE"
	default:
		return ""
	}
}

// SubQueryOp qualifies how a sub-query is used inside an expression.
type SubQueryOp uint8

const (
	SubQueryPlain SubQueryOp = iota
	SubQueryExists
	SubQueryNotExists
	SubQueryAny
	SubQueryAll
)

func (op SubQueryOp) String() string {
	switch op {
	case SubQueryExists:
		return "EXISTS"
	case SubQueryNotExists:
		return "NOT EXISTS"
	case SubQueryAny:
		return "ANY"
	case SubQueryAll:
		return "ALL"
	default:
		return ""
	}
}
