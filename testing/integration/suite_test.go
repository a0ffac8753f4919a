package integration

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlkit"
)

// backend is one live database and the dialect that targets it.
type backend struct {
	name     string
	dialect  sqlkit.Dialect
	db       *sql.DB
	boolType string
	schema   *sqlkit.Schema
}

// scenario is a query shape run against every backend.
type scenario struct {
	name string
	run  func(t *testing.T, b *backend)
}

// createTestSchema builds a schema matching the tables created by reset.
func createTestSchema(t *testing.T) *sqlkit.Schema {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "int"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "int"))
	posts.AddColumn(dbml.NewColumn("user_id", "int"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("views", "int"))
	posts.AddColumn(dbml.NewColumn("published", "boolean"))
	project.AddTable(posts)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "int"))
	orders.AddColumn(dbml.NewColumn("user_id", "int"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	counters := dbml.NewTable("counters")
	counters.AddColumn(dbml.NewColumn("name", "varchar"))
	counters.AddColumn(dbml.NewColumn("hits", "int"))
	project.AddTable(counters)

	schema, err := sqlkit.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return schema
}

// reset recreates and seeds the test tables. Seeding goes through sqlkit
// so multi-row INSERT is exercised on every backend.
func (b *backend) reset(t *testing.T) {
	t.Helper()

	for _, table := range []string{"counters", "orders", "posts", "users"} {
		b.execSQL(t, "DROP TABLE IF EXISTS "+table)
	}
	b.execSQL(t, `CREATE TABLE users (
		id INT PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		age INT,
		active `+b.boolType+`
	)`)
	b.execSQL(t, `CREATE TABLE posts (
		id INT PRIMARY KEY,
		user_id INT,
		title VARCHAR(255) NOT NULL,
		views INT DEFAULT 0,
		published `+b.boolType+`
	)`)
	b.execSQL(t, `CREATE TABLE orders (
		id INT PRIMARY KEY,
		user_id INT,
		total NUMERIC(10,2) NOT NULL,
		status VARCHAR(50)
	)`)
	b.execSQL(t, `CREATE TABLE counters (
		name VARCHAR(64) PRIMARY KEY,
		hits INT NOT NULL
	)`)

	b.exec(t, sqlkit.Insert(b.schema.T("users")).
		Columns("id", "username", "email", "age", "active").
		Values(1, "alice", "alice@example.com", 30, true).
		Values(2, "bob", "bob@example.com", 25, true).
		Values(3, "charlie", "charlie@example.com", 35, false).
		Values(4, "diana", "diana@example.com", 28, true))

	b.exec(t, sqlkit.Insert(b.schema.T("posts")).
		Columns("id", "user_id", "title", "views", "published").
		Values(1, 1, "First Post", 100, true).
		Values(2, 1, "Second Post", 50, true).
		Values(3, 2, "Bob's Post", 75, true).
		Values(4, 3, "Draft Post", 0, false))

	b.exec(t, sqlkit.Insert(b.schema.T("orders")).
		Columns("id", "user_id", "total", "status").
		Values(1, 1, 99.99, "completed").
		Values(2, 1, 149.99, "completed").
		Values(3, 2, 49.99, "pending").
		Values(4, 4, 199.99, "completed"))
}

func (b *backend) execSQL(t *testing.T, query string) {
	t.Helper()
	if _, err := b.db.ExecContext(context.Background(), query); err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, query)
	}
}

// render validates stmt against the schema and renders it.
func (b *backend) render(t *testing.T, stmt sqlkit.Statement) *sqlkit.QueryResult {
	t.Helper()
	if err := b.schema.Validate(stmt); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	result, err := sqlkit.Render(stmt, b.dialect)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return result
}

// exec runs stmt and returns the number of affected rows.
func (b *backend) exec(t *testing.T, stmt sqlkit.Statement) int64 {
	t.Helper()
	result := b.render(t, stmt)
	res, err := b.db.ExecContext(context.Background(), result.SQL, result.Args...)
	if err != nil {
		t.Fatalf("Exec failed: %v\nSQL: %s\nArgs: %v", err, result.SQL, result.Args)
	}
	n, err := res.RowsAffected()
	if err != nil {
		t.Fatalf("RowsAffected failed: %v", err)
	}
	return n
}

// column runs stmt and scans the first column of every row.
func column[T any](t *testing.T, b *backend, stmt sqlkit.Statement) []T {
	t.Helper()
	result := b.render(t, stmt)
	rows, err := b.db.QueryContext(context.Background(), result.SQL, result.Args...)
	if err != nil {
		t.Fatalf("Query failed: %v\nSQL: %s\nArgs: %v", err, result.SQL, result.Args)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var v T
		if err := rows.Scan(&v); err != nil {
			t.Fatalf("Scan failed: %v\nSQL: %s", err, result.SQL)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	return out
}

func assertEqual[T comparable](t *testing.T, want, got []T) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

// skipUnsupported skips the test when the backend's dialect cannot render stmt.
func skipUnsupported(t *testing.T, b *backend, stmt sqlkit.Statement) {
	t.Helper()
	_, err := sqlkit.Render(stmt, b.dialect)
	if errors.Is(err, sqlkit.ErrUnsupportedFeature) {
		t.Skipf("%s: %v", b.name, err)
	}
}

func scenarios() []scenario {
	return []scenario{
		{"select where", func(t *testing.T, b *backend) {
			users := b.schema.T("users")
			got := column[string](t, b, sqlkit.Select("username").
				From(users).
				Where(sqlkit.Col("active").Eq(true)).
				OrderBy("id"))
			assertEqual(t, []string{"alice", "bob", "diana"}, got)
		}},
		{"or where", func(t *testing.T, b *backend) {
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Col("age").Lt(26)).
				OrWhere(sqlkit.Col("age").Gt(33)).
				OrderBy("id"))
			assertEqual(t, []string{"bob", "charlie"}, got)
		}},
		{"not", func(t *testing.T, b *backend) {
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Not(sqlkit.Col("active").Eq(true))))
			assertEqual(t, []string{"charlie"}, got)
		}},
		{"like", func(t *testing.T, b *backend) {
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Col("username").Like("d%")))
			assertEqual(t, []string{"diana"}, got)
		}},
		{"in", func(t *testing.T, b *backend) {
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Col("id").In(2, 4)).
				OrderBy("id"))
			assertEqual(t, []string{"bob", "diana"}, got)
		}},
		{"empty in", func(t *testing.T, b *backend) {
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Col("id").In()))
			assertEqual(t, []string{}, got)
		}},
		{"between", func(t *testing.T, b *backend) {
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Col("age").Between(26, 32)).
				OrderBy("id"))
			assertEqual(t, []string{"alice", "diana"}, got)
		}},
		{"is null", func(t *testing.T, b *backend) {
			b.exec(t, sqlkit.Insert(b.schema.T("users")).
				Columns("id", "username", "email", "age", "active").
				Values(5, "eve", "eve@example.com", sqlkit.Null(), true))
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Col("age").IsNull()))
			assertEqual(t, []string{"eve"}, got)
		}},
		{"join", func(t *testing.T, b *backend) {
			u := b.schema.T("users").As("u")
			p := b.schema.T("posts").As("p")
			got := column[string](t, b, sqlkit.Select(u.Col("username")).
				From(u).
				InnerJoin(p, p.Col("user_id").Eq(u.Col("id"))).
				Where(p.Col("published").Eq(true)).
				OrderBy(p.Col("id")))
			assertEqual(t, []string{"alice", "alice", "bob"}, got)
		}},
		{"left join", func(t *testing.T, b *backend) {
			u := b.schema.T("users").As("u")
			o := b.schema.T("orders").As("o")
			got := column[string](t, b, sqlkit.Select(u.Col("username")).
				From(u).
				LeftJoin(o, o.Col("user_id").Eq(u.Col("id"))).
				Where(o.Col("id").IsNull()))
			assertEqual(t, []string{"charlie"}, got)
		}},
		{"group by having", func(t *testing.T, b *backend) {
			got := column[int64](t, b, sqlkit.Select("user_id").
				From(b.schema.T("posts")).
				GroupBy("user_id").
				Having(sqlkit.CountStar().Gt(1)))
			assertEqual(t, []int64{1}, got)
		}},
		{"count", func(t *testing.T, b *backend) {
			got := column[int64](t, b, sqlkit.Select().
				ExprAs(sqlkit.CountStar(), "n").
				From(b.schema.T("orders")).
				Where(sqlkit.Col("status").Eq("completed")))
			assertEqual(t, []int64{3}, got)
		}},
		{"arithmetic", func(t *testing.T, b *backend) {
			got := column[int64](t, b, sqlkit.Select().
				ExprAs(sqlkit.Col("views").Mul(2).Add(1), "score").
				From(b.schema.T("posts")).
				Where(sqlkit.Col("id").Eq(2)))
			assertEqual(t, []int64{101}, got)
		}},
		{"order limit offset", func(t *testing.T, b *backend) {
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				OrderBy(sqlkit.Col("age").Desc()).
				Limit(2).
				Offset(1))
			assertEqual(t, []string{"alice", "diana"}, got)
		}},
		{"case", func(t *testing.T, b *backend) {
			bracket := sqlkit.Case().
				When(sqlkit.Col("age").Lt(30), "young").
				Else("senior")
			got := column[string](t, b, sqlkit.Select().
				ExprAs(bracket, "bracket").
				From(b.schema.T("users")).
				OrderBy("id"))
			assertEqual(t, []string{"senior", "young", "senior", "young"}, got)
		}},
		{"window", func(t *testing.T, b *backend) {
			rank := sqlkit.RowNumber().Over(sqlkit.Window().
				PartitionBy("user_id").
				OrderBy(sqlkit.Col("views").Desc()))
			ranked := sqlkit.Select("title").ExprAs(rank, "rn").From(b.schema.T("posts"))
			got := column[string](t, b, sqlkit.Select("title").
				From(sqlkit.Derived(ranked, "ranked")).
				Where(sqlkit.Col("rn").Eq(1)).
				OrderBy("title"))
			assertEqual(t, []string{"Bob's Post", "Draft Post", "First Post"}, got)
		}},
		{"union", func(t *testing.T, b *backend) {
			users := b.schema.T("users")
			got := column[string](t, b, sqlkit.Select("username").
				From(users).
				Where(sqlkit.Col("id").Eq(1)).
				Union(sqlkit.Select("username").From(users).Where(sqlkit.Col("id").Eq(3))))
			sort.Strings(got)
			assertEqual(t, []string{"alice", "charlie"}, got)
		}},
		{"exists", func(t *testing.T, b *backend) {
			orders := sqlkit.Select().
				From(b.schema.T("orders")).
				Where(sqlkit.TableCol("orders", "user_id").Eq(sqlkit.TableCol("users", "id")))
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Exists(orders)).
				OrderBy("id"))
			assertEqual(t, []string{"alice", "bob", "diana"}, got)
		}},
		{"in subquery", func(t *testing.T, b *backend) {
			pending := sqlkit.Select("user_id").
				From(b.schema.T("orders")).
				Where(sqlkit.Col("status").Eq("pending"))
			got := column[string](t, b, sqlkit.Select("username").
				From(b.schema.T("users")).
				Where(sqlkit.Col("id").InSubquery(pending)))
			assertEqual(t, []string{"bob"}, got)
		}},
		{"cte", func(t *testing.T, b *backend) {
			busy := sqlkit.Select("user_id").
				From(b.schema.T("posts")).
				GroupBy("user_id").
				Having(sqlkit.CountStar().Gt(1))
			got := column[string](t, b, sqlkit.With().
				CTE("busy", busy).
				Query(sqlkit.Select("username").
					From(b.schema.T("users")).
					Where(sqlkit.Col("id").InSubquery(sqlkit.Select("user_id").From(sqlkit.T("busy"))))))
			assertEqual(t, []string{"alice"}, got)
		}},
		{"insert", func(t *testing.T, b *backend) {
			n := b.exec(t, sqlkit.Insert(b.schema.T("users")).
				Columns("id", "username", "email", "age", "active").
				Values(5, "eve", "eve@example.com", 41, true))
			if n != 1 {
				t.Errorf("Expected 1 inserted row, got %d", n)
			}
			got := column[int64](t, b, sqlkit.Select().ExprAs(sqlkit.CountStar(), "n").From(b.schema.T("users")))
			assertEqual(t, []int64{5}, got)
		}},
		{"update", func(t *testing.T, b *backend) {
			posts := b.schema.T("posts")
			n := b.exec(t, sqlkit.Update(posts).
				Set("views", sqlkit.Col("views").Add(10)).
				Where(sqlkit.Col("id").Eq(1)))
			if n != 1 {
				t.Errorf("Expected 1 updated row, got %d", n)
			}
			got := column[int64](t, b, sqlkit.Select("views").From(posts).Where(sqlkit.Col("id").Eq(1)))
			assertEqual(t, []int64{110}, got)
		}},
		{"delete", func(t *testing.T, b *backend) {
			orders := b.schema.T("orders")
			n := b.exec(t, sqlkit.Delete(orders).Where(sqlkit.Col("status").Eq("pending")))
			if n != 1 {
				t.Errorf("Expected 1 deleted row, got %d", n)
			}
			got := column[int64](t, b, sqlkit.Select().ExprAs(sqlkit.CountStar(), "n").From(orders))
			assertEqual(t, []int64{3}, got)
		}},
		{"upsert", func(t *testing.T, b *backend) {
			counters := b.schema.T("counters")
			hit := sqlkit.Insert(counters).
				Columns("name", "hits").
				Values("home", 1).
				OnConflict(sqlkit.OnConflict("name").
					Set("hits", sqlkit.TableCol("counters", "hits").Add(sqlkit.Excluded("hits"))))
			skipUnsupported(t, b, hit)

			b.exec(t, hit)
			b.exec(t, hit)
			b.exec(t, hit)
			got := column[int64](t, b, sqlkit.Select("hits").From(counters).Where(sqlkit.Col("name").Eq("home")))
			assertEqual(t, []int64{3}, got)
		}},
		{"returning", func(t *testing.T, b *backend) {
			stmt := sqlkit.Delete(b.schema.T("orders")).
				Where(sqlkit.Col("user_id").Eq(1)).
				Returning("id")
			skipUnsupported(t, b, stmt)

			got := column[int64](t, b, stmt)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			assertEqual(t, []int64{1, 2}, got)
		}},
	}
}

// runScenarios resets b before each scenario and runs the full suite.
func runScenarios(t *testing.T, b *backend) {
	t.Helper()
	for _, sc := range scenarios() {
		t.Run(sc.name, func(t *testing.T) {
			b.reset(t)
			sc.run(t, b)
		})
	}
}
