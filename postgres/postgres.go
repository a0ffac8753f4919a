// Package postgres provides the PostgreSQL dialect for sqlkit.
package postgres

import (
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Descriptor is the PostgreSQL dialect profile.
var Descriptor = render.Descriptor{
	Name:             "PostgreSQL",
	QuoteOpen:        `"`,
	QuoteClose:       `"`,
	TrueLiteral:      "TRUE",
	FalseLiteral:     "FALSE",
	DefaultValues:    " DEFAULT VALUES",
	RecursiveKeyword: "RECURSIVE ",
	Placeholder:      render.PlaceholderDollar,
	Pagination:       render.PaginationLimitOffset,
	Capabilities: render.Capabilities{
		Upsert:                   render.UpsertOnConflict,
		Returning:                render.ReturningClause,
		JSON:                     render.JSONArrow,
		RowLocking:               render.RowLockingFull,
		ReturningOnInsert:        true,
		ReturningOnUpdate:        true,
		ReturningOnDelete:        true,
		DistinctOn:               true,
		CaseInsensitiveLike:      true,
		Arrays:                   true,
		WindowFunctions:          true,
		NullsOrdering:            true,
		FullOuterJoin:            true,
		RightJoin:                true,
		LockWait:                 true,
		LockOf:                   true,
		ParenthesizedSetOperands: true,
		QuantifiedSubquery:       true,
		CTEOnInsert:              true,
		CTEOnUpdateDelete:        true,
		BooleanIs:                true,
	},
}

// Renderer implements the PostgreSQL dialect.
type Renderer struct {
	desc render.Descriptor
}

// New creates a new PostgreSQL renderer.
func New() *Renderer {
	return &Renderer{desc: Descriptor}
}

// WithDescriptor creates a PostgreSQL renderer using a derived profile.
func WithDescriptor(d render.Descriptor) *Renderer {
	return &Renderer{desc: d}
}

// Render converts a statement to a QueryResult with PostgreSQL SQL.
func (r *Renderer) Render(stmt types.Statement) (*types.QueryResult, error) {
	return render.Render(stmt, r)
}

// Descriptor returns the dialect profile.
func (r *Renderer) Descriptor() render.Descriptor {
	return r.desc
}

// Capabilities returns the SQL features supported by PostgreSQL.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.desc.Capabilities
}

// QuoteIdentifier quotes name with double quotes, doubling embedded ones.
func (r *Renderer) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// FunctionName maps IFNULL to COALESCE.
func (r *Renderer) FunctionName(f types.Function) string {
	if f == types.FnIfNull {
		return "COALESCE"
	}
	return render.StandardFunctionName(f)
}

// BindValue materializes v for pgx or lib/pq. Arrays are bound through
// pq.Array, which encodes the PostgreSQL array literal.
func (r *Renderer) BindValue(v types.Value) (any, error) {
	if v.Kind() != types.KindArray {
		return render.BindDefault(r.desc.Name, v)
	}
	if !r.desc.Capabilities.Arrays {
		return nil, render.NewUnsupportedFeatureError(r.desc.Name, "array values")
	}
	return r.bindArray(v)
}

func (r *Renderer) bindArray(v types.Value) (any, error) {
	elems := v.Elems()
	hasNull := false
	for _, e := range elems {
		if e.IsNull() {
			hasNull = true
			break
		}
	}

	if !hasNull {
		switch v.ElemKind() {
		case types.KindBool:
			out := make([]bool, len(elems))
			for i, e := range elems {
				out[i] = e.Bool()
			}
			return pq.Array(out), nil
		case types.KindInt:
			out := make([]int64, len(elems))
			for i, e := range elems {
				out[i] = e.Int()
			}
			return pq.Array(out), nil
		case types.KindFloat:
			out := make([]float64, len(elems))
			for i, e := range elems {
				out[i] = e.Float()
			}
			return pq.Array(out), nil
		case types.KindString:
			out := make([]string, len(elems))
			for i, e := range elems {
				out[i] = e.String()
			}
			return pq.Array(out), nil
		}
	}

	out := make([]any, len(elems))
	for i, e := range elems {
		arg, err := render.BindDefault(r.desc.Name, e)
		if err != nil {
			return nil, err
		}
		out[i] = arg
	}
	return pq.Array(out), nil
}
