// Package sqlkit provides a database-agnostic SQL query builder.
//
// Statements are assembled from fluent builder calls into an immutable
// syntax tree, then rendered per dialect into SQL text plus an ordered
// list of bound parameters. Values never reach the SQL text: every
// string, byte slice, temporal, UUID and JSON value is bound through a
// placeholder. Identifiers are always quoted.
//
// # Basic Usage
//
//	users := sqlkit.T("users")
//
//	query := sqlkit.Select(sqlkit.Col("id")).
//		From(users).
//		Where(sqlkit.Col("age").Gt(18))
//
//	result, err := query.Render(postgres.New())
//	// result.SQL:  SELECT "id" FROM "users" WHERE "age" > $1
//	// result.Args: []any{int64(18)}
//
// The same statement renders for every dialect:
//
//	result, err = query.Render(mysql.New())
//	// SELECT `id` FROM `users` WHERE `age` > ?
//
// # Errors
//
// Builders never fail. Problems such as a VALUES row of the wrong length
// or an unconvertible Go value are kept in the tree and reported by
// Render as one of BuildError, UnsupportedFeatureError or
// InvalidIdentifierError. Dialects never drop a clause they cannot
// express.
//
// # Schema-Validated Usage
//
// A Schema built from a DBML project validates table and column names:
//
//	schema, err := sqlkit.NewFromDBML(project)
//	users := schema.T("users")       // panics if unknown
//	email := schema.C("users", "email")
//
// # Concurrency
//
// A builder is for single-owner use. Once built, a statement may be
// rendered concurrently by any number of goroutines and dialects.
package sqlkit

import (
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Iden is anything that can name a table, column, alias or function.
// Implement it on code-generated enums to use them as identifiers.
type Iden = types.Iden

// Name is the plain string identifier.
type Name = types.Name

// Value is a literal carried by a statement.
type Value = types.Value

// Kind tags the variant held by a Value.
type Kind = types.Kind

// Re-export value kinds for public API.
const (
	KindNull        = types.KindNull
	KindBool        = types.KindBool
	KindInt         = types.KindInt
	KindUint        = types.KindUint
	KindFloat       = types.KindFloat
	KindString      = types.KindString
	KindBytes       = types.KindBytes
	KindDate        = types.KindDate
	KindTime        = types.KindTime
	KindDateTime    = types.KindDateTime
	KindTimestampTZ = types.KindTimestampTZ
	KindUUID        = types.KindUUID
	KindJSON        = types.KindJSON
	KindArray       = types.KindArray
)

// QueryResult contains the rendered SQL and its bound parameters.
type QueryResult = types.QueryResult

// Dialect renders statements for one SQL dialect. Implementations live in
// the postgres, mysql, sqlite and mssql packages.
type Dialect = render.Dialect

// Descriptor is the constant syntax and capability profile of a dialect.
type Descriptor = render.Descriptor

// Capabilities describes the SQL features supported by a dialect.
type Capabilities = render.Capabilities

// Statement is implemented by every statement builder.
type Statement interface {
	// Build returns the statement's syntax tree, or the first error
	// recorded while building it.
	Build() (types.Statement, error)
}

// Alias returns an identifier for a table or column alias.
func Alias(name string) Iden {
	return types.Name(name)
}
