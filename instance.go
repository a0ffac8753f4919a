package sqlkit

import (
	"errors"
	"fmt"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Schema validates table and column names against a DBML project.
type Schema struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables map[string]*dbml.Table
	fields map[string]map[string]*dbml.Column // table -> column name -> column
}

// NewFromDBML creates a Schema from a DBML project.
func NewFromDBML(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
	}

	for _, table := range project.Tables {
		s.tables[table.Name] = table
		s.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			s.fields[table.Name][col.Name] = col
		}
	}

	return s, nil
}

// Project returns the DBML project the schema was built from.
func (s *Schema) Project() *dbml.Project {
	return s.project
}

// TryT references a table, failing if the schema does not define it.
func (s *Schema) TryT(name string) (Table, error) {
	if _, ok := s.tables[name]; !ok {
		return Table{}, render.NewInvalidIdentifierError(name, "table not found in schema")
	}
	return T(name), nil
}

// T references a table. It panics if the schema does not define it.
func (s *Schema) T(name string) Table {
	t, err := s.TryT(name)
	if err != nil {
		panic(err)
	}
	return t
}

// TryC references a column qualified by its table, failing if either is
// unknown.
func (s *Schema) TryC(table, column string) (E, error) {
	cols, ok := s.fields[table]
	if !ok {
		return E{}, render.NewInvalidIdentifierError(table, "table not found in schema")
	}
	if _, ok := cols[column]; !ok {
		return E{}, render.NewInvalidIdentifierError(column, fmt.Sprintf("column not found in table %q", table))
	}
	return TableCol(table, column), nil
}

// C references a column qualified by its table. It panics if either is
// unknown.
func (s *Schema) C(table, column string) E {
	e, err := s.TryC(table, column)
	if err != nil {
		panic(err)
	}
	return e
}

// Validate checks every table and column a statement names against the
// schema. Names introduced by the statement itself (aliases, CTEs and
// derived tables) are accepted. Errors are InvalidIdentifierError, joined
// when there is more than one.
func (s *Schema) Validate(stmt Statement) error {
	tree, err := Build(stmt)
	if err != nil {
		return err
	}
	v := &validator{
		schema:  s,
		aliases: make(map[string]string),
		virtual: make(map[string]bool),
		outputs: make(map[string]bool),
	}
	v.collect(tree)
	v.statement(tree)
	return errors.Join(v.errs...)
}

// validator walks a statement in two passes: collect records every name
// the statement defines, then the check pass resolves every reference.
type validator struct {
	schema *Schema
	// aliases maps a table alias to the schema table it stands for.
	aliases map[string]string
	// virtual holds CTE names and derived-table aliases, whose columns
	// are not known to the schema.
	virtual map[string]bool
	// outputs holds select-list aliases and CTE column names.
	outputs map[string]bool
	errs    []error
}

func (v *validator) fail(name, reason string) {
	v.errs = append(v.errs, render.NewInvalidIdentifierError(name, reason))
}

func idenName(id types.Iden) string {
	if id == nil {
		return ""
	}
	return id.Unquoted()
}

func (v *validator) collect(stmt types.Statement) {
	switch st := stmt.(type) {
	case *types.SelectStmt:
		v.collectSelect(st)
	case *types.InsertStmt:
		v.collectTable(st.Table)
		if st.Select != nil {
			v.collectSelect(st.Select)
		}
	case *types.UpdateStmt:
		v.collectTable(st.Table)
	case *types.DeleteStmt:
		v.collectTable(st.Table)
	case *types.WithStmt:
		for _, cte := range st.CTEs {
			v.virtual[idenName(cte.Name)] = true
			for _, c := range cte.Columns {
				v.outputs[idenName(c)] = true
			}
			if cte.Query != nil {
				v.collectSelect(cte.Query)
			}
		}
		if st.Body != nil {
			v.collect(st.Body)
		}
	}
}

func (v *validator) collectSelect(st *types.SelectStmt) {
	if st == nil {
		return
	}
	for _, item := range st.Columns {
		if item.Alias != nil {
			v.outputs[idenName(item.Alias)] = true
		}
	}
	for _, t := range st.From {
		v.collectTable(t)
	}
	for _, j := range st.Joins {
		v.collectTable(j.Table)
	}
	for _, op := range st.SetOps {
		v.collectSelect(op.Query)
	}
}

func (v *validator) collectTable(t types.TableRef) {
	if t.SubQuery != nil {
		if t.Alias != nil {
			v.virtual[idenName(t.Alias)] = true
		}
		v.collectSelect(t.SubQuery)
		return
	}
	if t.Alias != nil {
		v.aliases[idenName(t.Alias)] = idenName(t.Table)
	}
}

func (v *validator) statement(stmt types.Statement) {
	switch st := stmt.(type) {
	case *types.SelectStmt:
		v.selectStmt(st)
	case *types.InsertStmt:
		table := v.table(st.Table)
		for _, c := range st.Columns {
			v.targetColumn(table, c)
		}
		for _, row := range st.Rows {
			v.exprs(row)
		}
		v.selectStmt(st.Select)
		if st.OnConflict != nil {
			for _, c := range st.OnConflict.Targets {
				v.targetColumn(table, c)
			}
			v.assignments(table, st.OnConflict.Updates)
		}
		v.returning(table, st.Returning)
	case *types.UpdateStmt:
		table := v.table(st.Table)
		v.assignments(table, st.Sets)
		v.condition(st.Where)
		v.orderBy(st.OrderBy)
		v.returning(table, st.Returning)
	case *types.DeleteStmt:
		table := v.table(st.Table)
		v.condition(st.Where)
		v.orderBy(st.OrderBy)
		v.returning(table, st.Returning)
	case *types.WithStmt:
		for _, cte := range st.CTEs {
			v.selectStmt(cte.Query)
		}
		if st.Body != nil {
			v.statement(st.Body)
		}
	}
}

func (v *validator) selectStmt(st *types.SelectStmt) {
	if st == nil {
		return
	}
	for _, item := range st.Columns {
		v.expr(item.Expr)
	}
	v.exprs(st.DistinctOn)
	for _, t := range st.From {
		v.table(t)
	}
	for _, j := range st.Joins {
		v.table(j.Table)
		v.condition(j.On)
	}
	v.condition(st.Where)
	v.exprs(st.GroupBy)
	v.condition(st.Having)
	v.orderBy(st.OrderBy)
	for _, op := range st.SetOps {
		v.selectStmt(op.Query)
	}
}

// table checks a table reference and returns the schema table name it
// resolves to, or "" for derived tables and CTEs.
func (v *validator) table(t types.TableRef) string {
	if t.SubQuery != nil {
		v.selectStmt(t.SubQuery)
		return ""
	}
	n := idenName(t.Table)
	if v.virtual[n] {
		return ""
	}
	if _, ok := v.schema.tables[n]; !ok {
		v.fail(n, "table not found in schema")
		return ""
	}
	return n
}

func (v *validator) targetColumn(table string, c types.Iden) {
	if table == "" {
		return
	}
	n := idenName(c)
	if _, ok := v.schema.fields[table][n]; !ok {
		v.fail(n, fmt.Sprintf("column not found in table %q", table))
	}
}

func (v *validator) assignments(table string, sets []types.Assignment) {
	for _, a := range sets {
		v.targetColumn(table, a.Column)
		v.expr(a.Value)
	}
}

func (v *validator) returning(table string, r *types.Returning) {
	if r == nil {
		return
	}
	for _, c := range r.Columns {
		v.targetColumn(table, c)
	}
}

func (v *validator) orderBy(keys []types.OrderExpr) {
	for _, k := range keys {
		v.expr(k.Expr)
	}
}

func (v *validator) condition(c types.Condition) {
	v.exprs(c.Items)
}

func (v *validator) exprs(es []types.Expr) {
	for _, e := range es {
		v.expr(e)
	}
}

func (v *validator) expr(e types.Expr) {
	switch x := e.(type) {
	case types.ColumnExpr:
		v.column(x.Ref)
	case types.BinaryExpr:
		v.expr(x.Left)
		v.expr(x.Right)
	case types.UnaryExpr:
		v.expr(x.Operand)
	case types.BetweenExpr:
		v.expr(x.Expr)
		v.expr(x.Low)
		v.expr(x.High)
	case types.FuncExpr:
		v.exprs(x.Args)
		if x.Over != nil {
			v.exprs(x.Over.PartitionBy)
			v.orderBy(x.Over.OrderBy)
		}
	case types.CaseExpr:
		for _, w := range x.Whens {
			v.expr(w.When)
			v.expr(w.Then)
		}
		if x.Else != nil {
			v.expr(x.Else)
		}
	case types.SubQueryExpr:
		v.selectStmt(x.Query)
	case types.TupleExpr:
		v.exprs(x.Items)
	case types.CastExpr:
		v.expr(x.Expr)
	case types.Condition:
		v.condition(x)
	}
}

func (v *validator) column(ref types.ColumnRef) {
	if ref.Table == nil {
		if ref.IsAsterisk() {
			return
		}
		n := idenName(ref.Column)
		if v.outputs[n] || v.knownColumn(n) {
			return
		}
		v.fail(n, "column not found in schema")
		return
	}

	qualifier := idenName(ref.Table)
	if v.virtual[qualifier] {
		return
	}
	table := qualifier
	if t, ok := v.aliases[qualifier]; ok {
		if v.virtual[t] {
			return
		}
		table = t
	}
	cols, ok := v.schema.fields[table]
	if !ok {
		v.fail(qualifier, "table or alias not found in schema")
		return
	}
	if ref.IsAsterisk() {
		return
	}
	n := idenName(ref.Column)
	if _, ok := cols[n]; !ok {
		v.fail(n, fmt.Sprintf("column not found in table %q", table))
	}
}

// knownColumn reports whether any schema table defines the column.
func (v *validator) knownColumn(n string) bool {
	for _, cols := range v.schema.fields {
		if _, ok := cols[n]; ok {
			return true
		}
	}
	return false
}
