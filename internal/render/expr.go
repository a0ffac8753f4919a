package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zoobzio/sqlkit/internal/types"
)

var (
	functionNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
	castTypePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*( [A-Za-z][A-Za-z0-9_]*)*(\(\s*\d+\s*(,\s*\d+\s*)?\))?(\[\])?$`)
)

// expr renders e, parenthesized iff its precedence is below min.
func (r *renderer) expr(e types.Expr, minPrec types.Precedence) error {
	if e == nil {
		return r.buildErr("missing expression")
	}
	paren := types.PrecedenceOf(e) < minPrec
	if paren {
		r.write("(")
	}
	if err := r.exprInner(e); err != nil {
		return err
	}
	if paren {
		r.write(")")
	}
	return nil
}

func (r *renderer) exprList(list []types.Expr) error {
	for i, e := range list {
		if i > 0 {
			r.write(", ")
		}
		if err := r.expr(e, types.PrecLowest); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) exprInner(e types.Expr) error {
	switch x := e.(type) {
	case types.ColumnExpr:
		return r.column(x.Ref)
	case types.ValueExpr:
		if x.Inline {
			return r.literal(x.Value)
		}
		return r.bind(x.Value)
	case types.BinaryExpr:
		return r.binary(x)
	case types.UnaryExpr:
		return r.unary(x)
	case types.BetweenExpr:
		return r.between(x)
	case types.FuncExpr:
		return r.function(x)
	case types.CaseExpr:
		return r.caseExpr(x)
	case types.SubQueryExpr:
		return r.subQuery(x)
	case types.TupleExpr:
		if len(x.Items) == 0 {
			return r.buildErr("empty tuple")
		}
		r.write("(")
		if err := r.exprList(x.Items); err != nil {
			return err
		}
		r.write(")")
		return nil
	case types.RawExpr:
		return r.raw(x)
	case types.KeywordExpr:
		kw := x.Keyword.String()
		if x.Keyword == types.KwCurrentDate && r.desc.CurrentDate != "" {
			kw = r.desc.CurrentDate
		}
		if kw == "" {
			return r.buildErr("unknown keyword %d", x.Keyword)
		}
		r.write(kw)
		return nil
	case types.CastExpr:
		if !castTypePattern.MatchString(x.Type) {
			return r.buildErr("invalid CAST type %q", x.Type)
		}
		r.write("CAST(")
		if err := r.expr(x.Expr, types.PrecLowest); err != nil {
			return err
		}
		r.write(" AS " + x.Type + ")")
		return nil
	case types.ExcludedExpr:
		return r.excluded(x)
	case types.InvalidExpr:
		if x.Err == nil {
			return r.buildErr("invalid expression")
		}
		return WrapBuildError(r.stmt, x.Err)
	case types.Condition:
		return r.condition(x)
	default:
		return r.buildErr("unsupported expression type %T", e)
	}
}

func (r *renderer) binary(b types.BinaryExpr) error {
	if !b.Op.Valid() {
		return r.buildErr("unknown binary operator %d", b.Op)
	}

	switch b.Op {
	case types.OpILike, types.OpNotILike:
		if !r.caps.CaseInsensitiveLike {
			return r.unsupported(b.Op.String(), "compare LOWER() of both sides with LIKE")
		}
	case types.OpJSONGet, types.OpJSONGetText:
		switch r.caps.JSON {
		case JSONNone:
			return r.unsupported("JSON operators")
		case JSONFunction:
			return r.jsonFunction(b)
		}
	case types.OpIs, types.OpIsNot:
		// IS takes a keyword operand, never a placeholder.
		if v, ok := b.Right.(types.ValueExpr); ok {
			switch v.Value.Kind() {
			case types.KindNull, types.KindInvalid:
			case types.KindBool:
				if !r.caps.BooleanIs {
					return r.unsupported(b.Op.String()+" TRUE/FALSE", "compare with = 1 or = 0")
				}
			default:
				return r.buildErr("%s requires NULL, TRUE or FALSE, got a %s value", b.Op, v.Value.Kind())
			}
			if v.Value.Kind() != types.KindInvalid {
				b.Right = types.ValueExpr{Value: v.Value, Inline: true}
			}
		}
	case types.OpIn, types.OpNotIn:
		// IN () is not valid SQL; an empty set matches nothing.
		if t, ok := b.Right.(types.TupleExpr); ok && len(t.Items) == 0 {
			if b.Op == types.OpIn {
				r.write("1 = 2")
			} else {
				r.write("1 = 1")
			}
			return nil
		}
	}

	if sq, ok := b.Right.(types.SubQueryExpr); ok && (sq.Op == types.SubQueryAny || sq.Op == types.SubQueryAll) {
		if !r.caps.QuantifiedSubquery {
			return r.unsupported(sq.Op.String()+" sub-query comparison", "use EXISTS or IN")
		}
	}

	left, right := b.Op.Operands()
	// Only the same operator regroups on the right: a * (b / c) keeps
	// its parentheses.
	if b.Op.Associativity() == types.Associative {
		if rb, ok := b.Right.(types.BinaryExpr); !ok || rb.Op != b.Op {
			right++
		}
	}
	if err := r.expr(b.Left, left); err != nil {
		return err
	}
	r.write(" " + b.Op.String() + " ")
	return r.expr(b.Right, right)
}

// jsonFunction renders JSON access through JSON_EXTRACT for dialects
// without arrow operators. The key must be a constant string or integer.
func (r *renderer) jsonFunction(b types.BinaryExpr) error {
	key, ok := b.Right.(types.ValueExpr)
	if !ok {
		return r.unsupported("JSON access with a non-constant key")
	}
	var path string
	switch key.Value.Kind() {
	case types.KindString:
		k := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(key.Value.String())
		path = `$."` + k + `"`
	case types.KindInt:
		if key.Value.Int() < 0 {
			return r.buildErr("negative JSON array index %d", key.Value.Int())
		}
		path = "$[" + strconv.FormatInt(key.Value.Int(), 10) + "]"
	default:
		return r.unsupported(fmt.Sprintf("JSON access with a %s key", key.Value.Kind()))
	}

	if b.Op == types.OpJSONGetText {
		r.write("JSON_UNQUOTE(")
	}
	r.write("JSON_EXTRACT(")
	if err := r.expr(b.Left, types.PrecLowest); err != nil {
		return err
	}
	r.write(", ")
	if err := r.bind(types.StringValue(path)); err != nil {
		return err
	}
	r.write(")")
	if b.Op == types.OpJSONGetText {
		r.write(")")
	}
	return nil
}

func (r *renderer) unary(u types.UnaryExpr) error {
	switch u.Op {
	case types.OpNot:
		r.write("NOT ")
		return r.expr(u.Operand, types.PrecNot)
	case types.OpNeg:
		r.write("-")
		return r.expr(u.Operand, types.PrecPrimary)
	default:
		return r.buildErr("unknown unary operator %d", u.Op)
	}
}

func (r *renderer) between(b types.BetweenExpr) error {
	operand := types.PrecComparison + 1
	if err := r.expr(b.Expr, operand); err != nil {
		return err
	}
	if b.Negate {
		r.write(" NOT BETWEEN ")
	} else {
		r.write(" BETWEEN ")
	}
	if err := r.expr(b.Low, operand); err != nil {
		return err
	}
	r.write(" AND ")
	return r.expr(b.High, operand)
}

func (r *renderer) function(f types.FuncExpr) error {
	var name string
	if f.Func == types.FnCustom {
		n, err := identName(f.Custom)
		if err != nil {
			return err
		}
		if !functionNamePattern.MatchString(n) {
			return NewInvalidIdentifierError(n, "not a valid function name")
		}
		name = n
	} else {
		name = r.dialect.FunctionName(f.Func)
		if name == "" {
			return r.unsupported(fmt.Sprintf("function %s", f.Func))
		}
	}
	if f.Func.IsWindowOnly() && f.Over == nil {
		return r.buildErr("%s requires an OVER clause", name)
	}
	if f.Over != nil && !r.caps.WindowFunctions {
		return r.unsupported("window functions")
	}

	r.write(name)
	r.write("(")
	if f.Distinct {
		r.write("DISTINCT ")
	}
	if f.Star {
		r.write("*")
	} else if err := r.exprList(f.Args); err != nil {
		return err
	}
	r.write(")")

	if f.Over != nil {
		return r.window(f.Over)
	}
	return nil
}

func (r *renderer) window(w *types.WindowSpec) error {
	r.write(" OVER (")
	if len(w.PartitionBy) > 0 {
		r.write("PARTITION BY ")
		if err := r.exprList(w.PartitionBy); err != nil {
			return err
		}
	}
	if len(w.OrderBy) > 0 {
		if len(w.PartitionBy) > 0 {
			r.write(" ")
		}
		r.write("ORDER BY ")
		if err := r.orderKeys(w.OrderBy); err != nil {
			return err
		}
	}
	r.write(")")
	return nil
}

func (r *renderer) caseExpr(c types.CaseExpr) error {
	if len(c.Whens) == 0 {
		return r.buildErr("CASE requires at least one WHEN branch")
	}
	r.write("CASE")
	for _, w := range c.Whens {
		r.write(" WHEN ")
		if err := r.expr(w.When, types.PrecLowest); err != nil {
			return err
		}
		r.write(" THEN ")
		if err := r.expr(w.Then, types.PrecLowest); err != nil {
			return err
		}
	}
	if c.Else != nil {
		r.write(" ELSE ")
		if err := r.expr(c.Else, types.PrecLowest); err != nil {
			return err
		}
	}
	r.write(" END")
	return nil
}

func (r *renderer) subQuery(s types.SubQueryExpr) error {
	if s.Query == nil {
		return r.buildErr("sub-query is nil")
	}
	if op := s.Op.String(); op != "" {
		r.write(op + " ")
	}
	r.write("(")
	if err := r.nested(func() error { return r.selectQuery(s.Query) }); err != nil {
		return err
	}
	r.write(")")
	return nil
}

// raw splices a caller supplied fragment, binding a value per '?'.
func (r *renderer) raw(x types.RawExpr) error {
	if n := strings.Count(x.SQL, "?"); n != len(x.Values) {
		return r.buildErr("raw fragment has %d placeholders but %d values", n, len(x.Values))
	}
	rest := x.SQL
	for _, v := range x.Values {
		i := strings.IndexByte(rest, '?')
		r.write(rest[:i])
		if err := r.bind(v); err != nil {
			return err
		}
		rest = rest[i+1:]
	}
	r.write(rest)
	return nil
}

func (r *renderer) condition(c types.Condition) error {
	if c.Negate {
		r.write("NOT ")
		c.Negate = false
		return r.expr(c, types.PrecNot)
	}
	switch len(c.Items) {
	case 0:
		if c.Logic == types.LogicAny {
			r.write("1 = 2")
		} else {
			r.write("1 = 1")
		}
		return nil
	case 1:
		return r.expr(c.Items[0], types.PrecLowest)
	}

	op := c.Logic.Op()
	for i, item := range c.Items {
		if i > 0 {
			r.write(" " + op.String() + " ")
		}
		if err := r.expr(item, op.Precedence()); err != nil {
			return err
		}
	}
	return nil
}
