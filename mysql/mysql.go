// Package mysql provides the MySQL and MariaDB dialects for sqlkit.
//
// Upserts render as INSERT IGNORE (do nothing) or ON DUPLICATE KEY UPDATE.
// MySQL resolves conflicts against every unique key of the table, so
// conflict targets set on the statement are not rendered.
package mysql

import (
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Descriptor is the MySQL 8 dialect profile.
var Descriptor = render.Descriptor{
	Name:             "MySQL",
	QuoteOpen:        "`",
	QuoteClose:       "`",
	TrueLiteral:      "TRUE",
	FalseLiteral:     "FALSE",
	NoLimit:          "18446744073709551615",
	DefaultValues:    " () VALUES ()",
	RecursiveKeyword: "RECURSIVE ",
	Placeholder:      render.PlaceholderQuestion,
	Pagination:       render.PaginationLimitOffset,
	Capabilities: render.Capabilities{
		Upsert:                   render.UpsertOnDuplicateKey,
		Returning:                render.ReturningNone,
		JSON:                     render.JSONFunction,
		RowLocking:               render.RowLockingBasic,
		WindowFunctions:          true,
		RightJoin:                true,
		LockWait:                 true,
		LockOf:                   true,
		UpdateLimit:              true,
		DeleteLimit:              true,
		ParenthesizedSetOperands: true,
		QuantifiedSubquery:       true,
		CTEOnUpdateDelete:        true,
		UnsignedBigint:           true,
		BooleanIs:                true,
	},
}

// MariaDBDescriptor is the MariaDB dialect profile. MariaDB supports
// RETURNING on INSERT and DELETE but not the OF list of locking clauses,
// and spells a shared lock LOCK IN SHARE MODE.
var MariaDBDescriptor = func() render.Descriptor {
	d := Descriptor
	d.Name = "MariaDB"
	d.ShareLock = "LOCK IN SHARE MODE"
	d.Capabilities.Returning = render.ReturningClause
	d.Capabilities.ReturningOnInsert = true
	d.Capabilities.ReturningOnDelete = true
	d.Capabilities.LockOf = false
	d.Capabilities.CTEOnUpdateDelete = false
	return d
}()

// Renderer implements the MySQL family dialects.
type Renderer struct {
	desc render.Descriptor
}

// New creates a new MySQL renderer.
func New() *Renderer {
	return &Renderer{desc: Descriptor}
}

// NewMariaDB creates a new MariaDB renderer.
func NewMariaDB() *Renderer {
	return &Renderer{desc: MariaDBDescriptor}
}

// WithDescriptor creates a MySQL family renderer using a derived profile.
func WithDescriptor(d render.Descriptor) *Renderer {
	return &Renderer{desc: d}
}

// Render converts a statement to a QueryResult with MySQL SQL.
func (r *Renderer) Render(stmt types.Statement) (*types.QueryResult, error) {
	return render.Render(stmt, r)
}

// Descriptor returns the dialect profile.
func (r *Renderer) Descriptor() render.Descriptor {
	return r.desc
}

// Capabilities returns the SQL features supported by the dialect.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.desc.Capabilities
}

// QuoteIdentifier quotes name with backticks, doubling embedded ones.
func (r *Renderer) QuoteIdentifier(name string) string {
	return render.QuoteWith(r.desc.QuoteOpen, r.desc.QuoteClose, name)
}

// FunctionName spells every built-in function by its standard name.
func (r *Renderer) FunctionName(f types.Function) string {
	return render.StandardFunctionName(f)
}

// BindValue materializes v for go-sql-driver/mysql. MySQL has no zoned
// timestamp type, so instants are bound as UTC text.
func (r *Renderer) BindValue(v types.Value) (any, error) {
	switch v.Kind() {
	case types.KindUint:
		if r.desc.Capabilities.UnsignedBigint {
			return v.Uint(), nil
		}
	case types.KindTimestampTZ:
		return v.Time().UTC().Format(types.DateTimeLayout), nil
	}
	return render.BindDefault(r.desc.Name, v)
}
