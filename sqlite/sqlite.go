// Package sqlite provides the SQLite dialect for sqlkit.
//
// The profile targets SQLite 3.39 or newer (RETURNING, ON CONFLICT,
// -> and ->> JSON operators, RIGHT and FULL OUTER JOIN).
package sqlite

import (
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Descriptor is the SQLite dialect profile.
var Descriptor = render.Descriptor{
	Name:             "SQLite",
	QuoteOpen:        `"`,
	QuoteClose:       `"`,
	TrueLiteral:      "1",
	FalseLiteral:     "0",
	NoLimit:          "-1",
	DefaultValues:    " DEFAULT VALUES",
	RecursiveKeyword: "RECURSIVE ",
	Placeholder:      render.PlaceholderQuestion,
	Pagination:       render.PaginationLimitOffset,
	Capabilities: render.Capabilities{
		Upsert:            render.UpsertOnConflict,
		Returning:         render.ReturningClause,
		JSON:              render.JSONArrow,
		RowLocking:        render.RowLockingNone,
		ReturningOnInsert: true,
		ReturningOnUpdate: true,
		ReturningOnDelete: true,
		WindowFunctions:   true,
		NullsOrdering:     true,
		FullOuterJoin:     true,
		RightJoin:         true,
		CTEOnInsert:       true,
		CTEOnUpdateDelete: true,
		BooleanIs:         true,
	},
}

// Renderer implements the SQLite dialect.
type Renderer struct {
	desc render.Descriptor
}

// New creates a new SQLite renderer.
func New() *Renderer {
	return &Renderer{desc: Descriptor}
}

// WithDescriptor creates a SQLite renderer using a derived profile.
func WithDescriptor(d render.Descriptor) *Renderer {
	return &Renderer{desc: d}
}

// Render converts a statement to a QueryResult with SQLite SQL.
func (r *Renderer) Render(stmt types.Statement) (*types.QueryResult, error) {
	return render.Render(stmt, r)
}

// Descriptor returns the dialect profile.
func (r *Renderer) Descriptor() render.Descriptor {
	return r.desc
}

// Capabilities returns the SQL features supported by SQLite.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.desc.Capabilities
}

// QuoteIdentifier quotes name with double quotes, doubling embedded ones.
func (r *Renderer) QuoteIdentifier(name string) string {
	return render.QuoteWith(r.desc.QuoteOpen, r.desc.QuoteClose, name)
}

// FunctionName maps CHAR_LENGTH to LENGTH and NOW to DATETIME.
func (r *Renderer) FunctionName(f types.Function) string {
	switch f {
	case types.FnCharLength:
		return "LENGTH"
	case types.FnNow:
		// CURRENT_TIMESTAMP takes no parentheses; DATETIME('now') is the
		// callable equivalent.
		return "DATETIME"
	}
	return render.StandardFunctionName(f)
}

// BindValue materializes v for SQLite. Booleans are stored as integers
// and instants as text carrying their zone offset.
func (r *Renderer) BindValue(v types.Value) (any, error) {
	switch v.Kind() {
	case types.KindBool:
		if v.Bool() {
			return int64(1), nil
		}
		return int64(0), nil
	case types.KindTimestampTZ:
		return v.TemporalText(), nil
	}
	return render.BindDefault(r.desc.Name, v)
}
