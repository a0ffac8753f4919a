package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zoobzio/sqlkit/internal/types"
)

// Render converts a statement to SQL text and bound parameters for d.
// It fails on the first problem found and never returns partial text.
// The statement is only read, so it may be rendered concurrently.
func Render(stmt types.Statement, d Dialect) (*types.QueryResult, error) {
	if stmt == nil {
		return nil, NewBuildError("", "statement is nil")
	}
	if d == nil {
		return nil, NewBuildError(stmt.Kind(), "dialect is nil")
	}

	desc := d.Descriptor()
	r := &renderer{
		dialect: d,
		desc:    desc,
		caps:    desc.Capabilities,
		w:       NewWriter(desc.Placeholder),
		stmt:    stmt.Kind(),
	}
	if err := r.statement(stmt); err != nil {
		return nil, err
	}
	return r.w.Result(), nil
}

// renderer tracks state for a single render call.
type renderer struct {
	dialect Dialect
	w       *Writer
	stmt    string
	desc    Descriptor
	depth   int
	caps    Capabilities
	// upsert is set while rendering an upsert update list, the only place
	// excluded-row references are valid.
	upsert bool
}

func (r *renderer) statement(stmt types.Statement) error {
	switch s := stmt.(type) {
	case *types.SelectStmt:
		return r.selectStmt(s)
	case *types.InsertStmt:
		return r.insertStmt(s)
	case *types.UpdateStmt:
		return r.updateStmt(s)
	case *types.DeleteStmt:
		return r.deleteStmt(s)
	case *types.WithStmt:
		return r.withStmt(s)
	default:
		return NewBuildError("", fmt.Sprintf("unsupported statement type %T", stmt))
	}
}

// buildErr reports a build error against the statement being rendered.
func (r *renderer) buildErr(format string, args ...any) error {
	return NewBuildError(r.stmt, fmt.Sprintf(format, args...))
}

func (r *renderer) unsupported(feature string, hint ...string) error {
	return NewUnsupportedFeatureError(r.desc.Name, feature, hint...)
}

func (r *renderer) write(s string) {
	r.w.WriteString(s)
}

// nested runs fn one sub-query level deeper.
func (r *renderer) nested(fn func() error) error {
	if r.depth >= types.MaxSubqueryDepth {
		return r.buildErr("maximum subquery depth (%d) exceeded", types.MaxSubqueryDepth)
	}
	r.depth++
	defer func() { r.depth-- }()
	return fn()
}

// ident quotes a single identifier part.
func (r *renderer) ident(id types.Iden) error {
	name, err := identName(id)
	if err != nil {
		return err
	}
	r.write(r.dialect.QuoteIdentifier(name))
	return nil
}

func identName(id types.Iden) (string, error) {
	if id == nil {
		return "", NewInvalidIdentifierError("", "identifier is missing")
	}
	name := id.Unquoted()
	if name == "" {
		return "", NewInvalidIdentifierError(name, "identifier is empty")
	}
	if strings.IndexByte(name, 0) >= 0 {
		return "", NewInvalidIdentifierError(name, "identifier contains a NUL byte")
	}
	return name, nil
}

func (r *renderer) identList(ids []types.Iden) error {
	for i, id := range ids {
		if i > 0 {
			r.write(", ")
		}
		if err := r.ident(id); err != nil {
			return err
		}
	}
	return nil
}

// column renders schema.table.column; a nil column is the asterisk.
func (r *renderer) column(c types.ColumnRef) error {
	if c.Err != nil {
		return WrapBuildError(r.stmt, c.Err)
	}
	if c.Schema != nil {
		if c.Table == nil {
			return r.buildErr("column qualified by schema requires a table")
		}
		if err := r.ident(c.Schema); err != nil {
			return err
		}
		r.write(".")
	}
	if c.Table != nil {
		if err := r.ident(c.Table); err != nil {
			return err
		}
		r.write(".")
	}
	if c.IsAsterisk() {
		r.write("*")
		return nil
	}
	return r.ident(c.Column)
}

// tableName renders [schema.]table without alias.
func (r *renderer) tableName(t types.TableRef) error {
	if t.Schema != nil {
		if err := r.ident(t.Schema); err != nil {
			return err
		}
		r.write(".")
	}
	return r.ident(t.Table)
}

// tableRef renders a FROM or JOIN item.
func (r *renderer) tableRef(t types.TableRef) error {
	if t.Err != nil {
		return WrapBuildError(r.stmt, t.Err)
	}
	if t.SubQuery != nil {
		r.write("(")
		if err := r.nested(func() error { return r.selectQuery(t.SubQuery) }); err != nil {
			return err
		}
		r.write(") AS ")
		return r.ident(t.Alias)
	}
	if err := r.tableName(t); err != nil {
		return err
	}
	if t.Alias != nil {
		r.write(" AS ")
		return r.ident(t.Alias)
	}
	return nil
}

// bind writes a placeholder for v.
func (r *renderer) bind(v types.Value) error {
	if v.Kind() == types.KindInvalid {
		if v.Err() == nil {
			return r.buildErr("uninitialized value")
		}
		return WrapBuildError(r.stmt, v.Err())
	}
	arg, err := r.dialect.BindValue(v)
	if err != nil {
		return err
	}
	r.w.Bind(v, arg)
	return nil
}

// literal writes v inline. Only null, boolean and numeric values can be
// inlined; everything else must be bound.
func (r *renderer) literal(v types.Value) error {
	switch v.Kind() {
	case types.KindNull:
		r.write("NULL")
	case types.KindBool:
		if v.Bool() {
			r.write(r.desc.TrueLiteral)
		} else {
			r.write(r.desc.FalseLiteral)
		}
	case types.KindInt:
		r.write(strconv.FormatInt(v.Int(), 10))
	case types.KindUint:
		r.write(strconv.FormatUint(v.Uint(), 10))
	case types.KindFloat:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return r.buildErr("non-finite float %v cannot be rendered inline", f)
		}
		r.write(strconv.FormatFloat(f, 'g', -1, 64))
	case types.KindInvalid:
		return r.bind(v)
	default:
		return r.buildErr("%s value cannot be rendered inline", v.Kind())
	}
	return nil
}

// limitValue binds a LIMIT, OFFSET or FETCH count.
func (r *renderer) limitValue(n int64) error {
	return r.bind(types.IntValue(n))
}

func (r *renderer) orderBy(keys []types.OrderExpr) error {
	r.write(" ORDER BY ")
	return r.orderKeys(keys)
}

// orderKeys renders an ORDER BY list without the leading keyword.
func (r *renderer) orderKeys(keys []types.OrderExpr) error {
	for i, key := range keys {
		if i > 0 {
			r.write(", ")
		}
		if err := r.expr(key.Expr, types.PrecLowest); err != nil {
			return err
		}
		if key.Desc {
			r.write(" DESC")
		} else {
			r.write(" ASC")
		}
		switch key.Nulls {
		case types.NullsFirst, types.NullsLast:
			if !r.caps.NullsOrdering {
				return r.unsupported("NULLS FIRST/LAST", "order by an IS NULL expression instead")
			}
			if key.Nulls == types.NullsFirst {
				r.write(" NULLS FIRST")
			} else {
				r.write(" NULLS LAST")
			}
		}
	}
	return nil
}

func (r *renderer) where(c types.Condition) error {
	if c.IsEmpty() && !c.Negate {
		return nil
	}
	r.write(" WHERE ")
	return r.expr(c, types.PrecLowest)
}
