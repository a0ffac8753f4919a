package types

import (
	"errors"
	"fmt"
	"slices"
)

// MaxSubqueryDepth bounds sub-query nesting to prevent DoS via deep nesting.
const MaxSubqueryDepth = 32

// Statement is a renderable SQL statement.
type Statement interface {
	statementNode()
	// Kind names the statement for error messages, e.g. "SELECT".
	Kind() string
}

// JoinType represents the type of SQL join.
type JoinType uint8

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

func (j JoinType) String() string {
	switch j {
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL OUTER JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return "INNER JOIN"
	}
}

// Join represents a SQL JOIN clause.
type Join struct {
	Table TableRef
	On    Condition
	Type  JoinType
}

// NullsOrder places NULLs within an ORDER BY key.
type NullsOrder uint8

const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// OrderExpr is one ORDER BY key.
type OrderExpr struct {
	Expr  Expr
	Desc  bool
	Nulls NullsOrder
}

// SelectItem is one entry of the select list.
type SelectItem struct {
	Expr  Expr
	Alias Iden
}

// LockType is the strength of a row lock.
type LockType uint8

const (
	LockUpdate LockType = iota
	LockShare
	LockNoKeyUpdate
	LockKeyShare
)

func (l LockType) String() string {
	switch l {
	case LockShare:
		return "FOR SHARE"
	case LockNoKeyUpdate:
		return "FOR NO KEY UPDATE"
	case LockKeyShare:
		return "FOR KEY SHARE"
	default:
		return "FOR UPDATE"
	}
}

// LockWait is the behavior when a row lock cannot be acquired at once.
type LockWait uint8

const (
	LockWaitDefault LockWait = iota
	LockNoWait
	LockSkipLocked
)

// Lock is the locking clause of a SELECT.
type Lock struct {
	Of   []Iden
	Type LockType
	Wait LockWait
}

// SetOpType combines two queries.
type SetOpType uint8

const (
	Union SetOpType = iota
	UnionAll
	Intersect
	Except
)

func (s SetOpType) String() string {
	switch s {
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case Except:
		return "EXCEPT"
	default:
		return "UNION"
	}
}

// SetOp is one arm appended to a SELECT by a set operation.
type SetOp struct {
	Query *SelectStmt
	Type  SetOpType
}

// SelectStmt is a SELECT statement. ORDER BY, LIMIT and OFFSET apply to
// the whole compound when set operations are present.
type SelectStmt struct {
	Where      Condition
	Having     Condition
	Limit      *int64
	Offset     *int64
	Lock       *Lock
	DistinctOn []Expr
	Columns    []SelectItem
	From       []TableRef
	Joins      []Join
	GroupBy    []Expr
	OrderBy    []OrderExpr
	SetOps     []SetOp
	Distinct   bool
}

// Assignment is column = value in SET and upsert update lists.
type Assignment struct {
	Column Iden
	Value  Expr
}

// OnConflict is the upsert clause of an INSERT.
type OnConflict struct {
	Targets   []Iden
	Updates   []Assignment
	DoNothing bool
}

// Returning lists the columns handed back by a data-modifying statement.
type Returning struct {
	Columns []Iden
	All     bool
}

// InsertStmt is an INSERT statement. Rows and Select are mutually exclusive.
type InsertStmt struct {
	Table         TableRef
	Select        *SelectStmt
	OnConflict    *OnConflict
	Returning     *Returning
	Columns       []Iden
	Rows          [][]Expr
	DefaultValues bool
}

// UpdateStmt is an UPDATE statement. Sets keep insertion order.
type UpdateStmt struct {
	Table     TableRef
	Where     Condition
	Limit     *int64
	Returning *Returning
	Sets      []Assignment
	OrderBy   []OrderExpr
}

// DeleteStmt is a DELETE statement.
type DeleteStmt struct {
	Table     TableRef
	Where     Condition
	Limit     *int64
	Returning *Returning
	OrderBy   []OrderExpr
}

// CTE is a named sub-query of a WITH clause.
type CTE struct {
	Name    Iden
	Query   *SelectStmt
	Columns []Iden
}

// WithStmt prefixes a statement with common table expressions.
type WithStmt struct {
	Body      Statement
	CTEs      []CTE
	Recursive bool
}

func (*SelectStmt) statementNode() {}
func (*InsertStmt) statementNode() {}
func (*UpdateStmt) statementNode() {}
func (*DeleteStmt) statementNode() {}
func (*WithStmt) statementNode()   {}

func (*SelectStmt) Kind() string { return "SELECT" }
func (*InsertStmt) Kind() string { return "INSERT" }
func (*UpdateStmt) Kind() string { return "UPDATE" }
func (*DeleteStmt) Kind() string { return "DELETE" }
func (*WithStmt) Kind() string   { return "WITH" }

// Clone returns a copy of s that shares no slices with s. Builders clone
// queries they embed so later mutation of the source builder is not
// observed by the embedding statement.
func (s *SelectStmt) Clone() *SelectStmt {
	if s == nil {
		return nil
	}
	c := *s
	c.DistinctOn = slices.Clone(s.DistinctOn)
	c.Columns = slices.Clone(s.Columns)
	c.From = slices.Clone(s.From)
	c.Joins = slices.Clone(s.Joins)
	c.GroupBy = slices.Clone(s.GroupBy)
	c.OrderBy = slices.Clone(s.OrderBy)
	c.SetOps = slices.Clone(s.SetOps)
	c.Where.Items = slices.Clone(s.Where.Items)
	c.Having.Items = slices.Clone(s.Having.Items)
	if s.Lock != nil {
		lock := *s.Lock
		lock.Of = slices.Clone(s.Lock.Of)
		c.Lock = &lock
	}
	return &c
}

// Validate checks the dialect independent shape of the statement.
func (s *SelectStmt) Validate() error {
	if len(s.Columns) == 0 && len(s.From) == 0 {
		return errors.New("SELECT requires a column list or a FROM clause")
	}
	for i, from := range s.From {
		if err := validateTableRef(from, fmt.Sprintf("FROM item %d", i+1)); err != nil {
			return err
		}
	}
	for i, j := range s.Joins {
		if err := validateTableRef(j.Table, fmt.Sprintf("join %d", i+1)); err != nil {
			return err
		}
		if j.Type == CrossJoin && !j.On.IsEmpty() {
			return fmt.Errorf("join %d: CROSS JOIN cannot have an ON condition", i+1)
		}
		if j.Type != CrossJoin && j.On.IsEmpty() {
			return fmt.Errorf("join %d: %s requires an ON condition", i+1, j.Type)
		}
	}
	if len(s.Joins) > 0 && len(s.From) == 0 {
		return errors.New("JOIN requires a FROM clause")
	}
	if s.Limit != nil && *s.Limit < 0 {
		return fmt.Errorf("LIMIT must not be negative, got %d", *s.Limit)
	}
	if s.Offset != nil && *s.Offset < 0 {
		return fmt.Errorf("OFFSET must not be negative, got %d", *s.Offset)
	}
	if s.Lock != nil && len(s.SetOps) > 0 {
		return errors.New("locking clause cannot be combined with set operations")
	}
	if s.Lock != nil && (s.Distinct || len(s.DistinctOn) > 0 || len(s.GroupBy) > 0) {
		return errors.New("locking clause cannot be combined with DISTINCT or GROUP BY")
	}
	for i, op := range s.SetOps {
		if op.Query == nil {
			return fmt.Errorf("%s arm %d has no query", op.Type, i+1)
		}
		if op.Query.Lock != nil {
			return fmt.Errorf("%s arm %d cannot have a locking clause", op.Type, i+1)
		}
	}
	return nil
}

// Validate checks the dialect independent shape of the statement.
func (s *InsertStmt) Validate() error {
	if err := validateTableRef(s.Table, "INSERT target"); err != nil {
		return err
	}
	if s.Table.SubQuery != nil {
		return errors.New("INSERT target must be a table")
	}
	sources := 0
	if len(s.Rows) > 0 {
		sources++
	}
	if s.Select != nil {
		sources++
	}
	if s.DefaultValues {
		sources++
	}
	switch {
	case sources == 0:
		return errors.New("INSERT requires VALUES, a SELECT source or DEFAULT VALUES")
	case sources > 1:
		return errors.New("INSERT accepts only one of VALUES, SELECT or DEFAULT VALUES")
	}
	if s.DefaultValues && len(s.Columns) > 0 {
		return errors.New("DEFAULT VALUES cannot be combined with a column list")
	}
	if !s.DefaultValues && len(s.Columns) == 0 {
		return errors.New("INSERT requires at least one column")
	}
	for i, row := range s.Rows {
		if len(row) != len(s.Columns) {
			return fmt.Errorf("VALUES row %d has %d values, expected %d", i+1, len(row), len(s.Columns))
		}
	}
	if s.Select != nil && len(s.Select.Columns) > 0 && len(s.Select.Columns) != len(s.Columns) {
		return fmt.Errorf("INSERT SELECT returns %d columns, expected %d", len(s.Select.Columns), len(s.Columns))
	}
	if c := s.OnConflict; c != nil {
		if c.DoNothing && len(c.Updates) > 0 {
			return errors.New("ON CONFLICT cannot both do nothing and update")
		}
		if !c.DoNothing && len(c.Updates) == 0 {
			return errors.New("ON CONFLICT requires DO NOTHING or at least one update")
		}
	}
	return validateReturning(s.Returning)
}

// Validate checks the dialect independent shape of the statement.
func (s *UpdateStmt) Validate() error {
	if err := validateTableRef(s.Table, "UPDATE target"); err != nil {
		return err
	}
	if s.Table.SubQuery != nil {
		return errors.New("UPDATE target must be a table")
	}
	if len(s.Sets) == 0 {
		return errors.New("UPDATE requires at least one SET assignment")
	}
	if s.Limit != nil && *s.Limit < 0 {
		return fmt.Errorf("LIMIT must not be negative, got %d", *s.Limit)
	}
	return validateReturning(s.Returning)
}

// Validate checks the dialect independent shape of the statement.
func (s *DeleteStmt) Validate() error {
	if err := validateTableRef(s.Table, "DELETE target"); err != nil {
		return err
	}
	if s.Table.SubQuery != nil {
		return errors.New("DELETE target must be a table")
	}
	if s.Limit != nil && *s.Limit < 0 {
		return fmt.Errorf("LIMIT must not be negative, got %d", *s.Limit)
	}
	return validateReturning(s.Returning)
}

// Validate checks the dialect independent shape of the statement.
func (s *WithStmt) Validate() error {
	if len(s.CTEs) == 0 {
		return errors.New("WITH requires at least one common table expression")
	}
	if s.Body == nil {
		return errors.New("WITH requires a statement to wrap")
	}
	if _, nested := s.Body.(*WithStmt); nested {
		return errors.New("WITH cannot wrap another WITH statement")
	}
	for i, cte := range s.CTEs {
		if cte.Name == nil {
			return fmt.Errorf("common table expression %d has no name", i+1)
		}
		if cte.Query == nil {
			return fmt.Errorf("common table expression %d has no query", i+1)
		}
	}
	return nil
}

func validateTableRef(t TableRef, what string) error {
	if t.Err != nil {
		return fmt.Errorf("%s: %w", what, t.Err)
	}
	if t.SubQuery != nil {
		if t.Alias == nil {
			return fmt.Errorf("%s: derived table requires an alias", what)
		}
		return nil
	}
	if t.Table == nil {
		return fmt.Errorf("%s: table is required", what)
	}
	return nil
}

func validateReturning(r *Returning) error {
	if r != nil && !r.All && len(r.Columns) == 0 {
		return errors.New("RETURNING requires at least one column")
	}
	return nil
}
