// Package mssql provides the SQL Server dialect for sqlkit.
//
// SQL Server paginates with OFFSET ... FETCH, which requires ORDER BY, and
// reports modified rows through OUTPUT INSERTED / DELETED. Upserts need
// MERGE and are not rendered.
package mssql

import (
	mssql "github.com/microsoft/go-mssqldb"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Descriptor is the SQL Server dialect profile.
var Descriptor = render.Descriptor{
	Name:          "SQL Server",
	QuoteOpen:     "[",
	QuoteClose:    "]",
	TrueLiteral:   "1",
	FalseLiteral:  "0",
	DefaultValues: " DEFAULT VALUES",
	CurrentDate:   "CAST(GETDATE() AS date)",
	Placeholder:   render.PlaceholderAtP,
	Pagination:    render.PaginationOffsetFetch,
	Capabilities: render.Capabilities{
		Upsert:                   render.UpsertNone,
		Returning:                render.ReturningOutput,
		JSON:                     render.JSONNone,
		RowLocking:               render.RowLockingNone,
		ReturningOnInsert:        true,
		ReturningOnUpdate:        true,
		ReturningOnDelete:        true,
		WindowFunctions:          true,
		FullOuterJoin:            true,
		RightJoin:                true,
		ParenthesizedSetOperands: true,
		QuantifiedSubquery:       true,
		CTEOnInsert:              true,
		CTEOnUpdateDelete:        true,
	},
}

// Renderer implements the SQL Server dialect.
type Renderer struct {
	desc render.Descriptor
}

// New creates a new SQL Server renderer.
func New() *Renderer {
	return &Renderer{desc: Descriptor}
}

// WithDescriptor creates a SQL Server renderer using a derived profile.
func WithDescriptor(d render.Descriptor) *Renderer {
	return &Renderer{desc: d}
}

// Render converts a statement to a QueryResult with SQL Server SQL.
func (r *Renderer) Render(stmt types.Statement) (*types.QueryResult, error) {
	return render.Render(stmt, r)
}

// Descriptor returns the dialect profile.
func (r *Renderer) Descriptor() render.Descriptor {
	return r.desc
}

// Capabilities returns the SQL features supported by SQL Server.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.desc.Capabilities
}

// QuoteIdentifier quotes name with brackets, doubling embedded ].
func (r *Renderer) QuoteIdentifier(name string) string {
	return render.QuoteWith(r.desc.QuoteOpen, r.desc.QuoteClose, name)
}

// FunctionName maps built-in functions to their T-SQL names.
func (r *Renderer) FunctionName(f types.Function) string {
	switch f {
	case types.FnIfNull:
		return "ISNULL"
	case types.FnCharLength:
		return "LEN"
	case types.FnNow:
		return "SYSDATETIMEOFFSET"
	}
	return render.StandardFunctionName(f)
}

// BindValue materializes v for go-mssqldb. UUIDs are bound as
// UniqueIdentifier so the driver applies SQL Server's byte order.
func (r *Renderer) BindValue(v types.Value) (any, error) {
	if v.Kind() == types.KindUUID {
		return mssql.UniqueIdentifier(v.UUID()), nil
	}
	return render.BindDefault(r.desc.Name, v)
}
