package integration

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/postgres"
)

func postgresBackend(t *testing.T) *backend {
	t.Helper()
	pc := getPostgresContainer(t)
	return &backend{
		name:     "PostgreSQL",
		dialect:  postgres.New(),
		db:       pc.db,
		boolType: "BOOLEAN",
		schema:   createTestSchema(t),
	}
}

// queryPgx renders stmt and runs it on the native pgx connection.
func queryPgx(ctx context.Context, t *testing.T, q interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}, stmt sqlkit.Statement) pgx.Rows {
	t.Helper()
	result, err := sqlkit.Render(stmt, postgres.New())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	rows, err := q.Query(ctx, result.SQL, result.Args...)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, result.SQL)
	}
	return rows
}

func TestPostgresIntegration_Suite(t *testing.T) {
	skipShort(t)
	runScenarios(t, postgresBackend(t))
}

func TestPostgresIntegration_DistinctOn(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	b := postgresBackend(t)
	b.reset(t)

	// Most viewed post per user.
	rows := queryPgx(ctx, t, getPostgresContainer(t).conn, sqlkit.Select("user_id", "title").
		DistinctOn("user_id").
		From(b.schema.T("posts")).
		OrderBy("user_id", sqlkit.Col("views").Desc()))
	defer rows.Close()

	titles := map[int64]string{}
	for rows.Next() {
		var userID int64
		var title string
		if err := rows.Scan(&userID, &title); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		titles[userID] = title
	}
	if len(titles) != 3 || titles[1] != "First Post" || titles[2] != "Bob's Post" {
		t.Errorf("Unexpected DISTINCT ON result: %v", titles)
	}
}

func TestPostgresIntegration_ForUpdateSkipLocked(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	b := postgresBackend(t)
	b.reset(t)

	pc := getPostgresContainer(t)
	tx, err := pc.conn.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows := queryPgx(ctx, t, tx, sqlkit.Select("id").
		From(b.schema.T("orders")).
		Where(sqlkit.Col("status").Eq("completed")).
		OrderBy("id").
		Limit(1).
		ForUpdate().
		SkipLocked())
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("Expected locked order [1], got %v", ids)
	}

	// A second session skips the locked row.
	got := column[int64](t, b, sqlkit.Select("id").
		From(b.schema.T("orders")).
		Where(sqlkit.Col("status").Eq("completed")).
		OrderBy("id").
		Limit(1).
		ForUpdate().
		SkipLocked())
	assertEqual(t, []int64{2}, got)
}

func TestPostgresIntegration_NullsLast(t *testing.T) {
	skipShort(t)
	b := postgresBackend(t)
	b.reset(t)

	b.exec(t, sqlkit.Insert(b.schema.T("users")).
		Columns("id", "username", "email", "age", "active").
		Values(5, "eve", "eve@example.com", sqlkit.Null(), true))

	got := column[string](t, b, sqlkit.Select("username").
		From(b.schema.T("users")).
		OrderBy(sqlkit.Col("age").Desc().NullsLast()))
	assertEqual(t, []string{"charlie", "alice", "diana", "bob", "eve"}, got)
}

func TestPostgresIntegration_ILike(t *testing.T) {
	skipShort(t)
	b := postgresBackend(t)
	b.reset(t)

	got := column[string](t, b, sqlkit.Select("username").
		From(b.schema.T("users")).
		Where(sqlkit.Col("email").ILike("ALICE@%")))
	assertEqual(t, []string{"alice"}, got)
}

func TestPostgresIntegration_ArrayAny(t *testing.T) {
	skipShort(t)
	b := postgresBackend(t)
	b.reset(t)

	got := column[string](t, b, sqlkit.Select("username").
		From(b.schema.T("users")).
		Where(sqlkit.Col("id").Eq(sqlkit.Func("ANY", sqlkit.Array(1, 3)))).
		OrderBy("id"))
	assertEqual(t, []string{"alice", "charlie"}, got)
}

func TestPostgresIntegration_InsertReturning(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	b := postgresBackend(t)
	b.reset(t)

	rows := queryPgx(ctx, t, getPostgresContainer(t).conn, sqlkit.Insert(b.schema.T("posts")).
		Columns("id", "user_id", "title").
		Values(5, 4, "Diana's Post").
		Returning("id", "views"))
	defer rows.Close()

	if !rows.Next() {
		t.Fatal("Expected a returned row")
	}
	var id, views int64
	if err := rows.Scan(&id, &views); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if id != 5 || views != 0 {
		t.Errorf("Expected (5, 0), got (%d, %d)", id, views)
	}
}
