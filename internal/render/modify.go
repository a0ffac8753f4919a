package render

import (
	"github.com/zoobzio/sqlkit/internal/types"
)

// upsertSource gives every arm of an INSERT source that reads FROM a table
// a WHERE clause. Without one SQLite parses the ON of ON CONFLICT as a
// join constraint.
func upsertSource(s *types.SelectStmt) *types.SelectStmt {
	guard := func(q *types.SelectStmt) *types.SelectStmt {
		if q == nil || len(q.From) == 0 || !q.Where.IsEmpty() || q.Where.Negate {
			return q
		}
		q = q.Clone()
		q.Where = q.Where.Add(types.ValueExpr{Value: types.BoolValue(true), Inline: true})
		return q
	}
	c := guard(s)
	if len(c.SetOps) == 0 {
		return c
	}
	if c == s {
		c = s.Clone()
	}
	for i, op := range c.SetOps {
		c.SetOps[i].Query = guard(op.Query)
	}
	return c
}

func (r *renderer) insertStmt(s *types.InsertStmt) error {
	if err := s.Validate(); err != nil {
		return WrapBuildError("INSERT", err)
	}
	if s.Table.Alias != nil {
		return r.buildErr("INSERT target cannot be aliased")
	}
	if err := r.checkReturning(s.Returning, r.caps.ReturningOnInsert); err != nil {
		return err
	}

	ignore := false
	if c := s.OnConflict; c != nil {
		switch r.caps.Upsert {
		case UpsertNone:
			return r.unsupported("upsert", "use MERGE or a separate UPDATE")
		case UpsertOnConflict:
			if !c.DoNothing && len(c.Targets) == 0 {
				return r.buildErr("ON CONFLICT DO UPDATE requires a conflict target")
			}
		case UpsertOnDuplicateKey:
			ignore = c.DoNothing
		}
	}

	if ignore {
		r.write("INSERT IGNORE INTO ")
	} else {
		r.write("INSERT INTO ")
	}
	if err := r.tableName(s.Table); err != nil {
		return err
	}

	if len(s.Columns) > 0 {
		r.write(" (")
		if err := r.identList(s.Columns); err != nil {
			return err
		}
		r.write(")")
	}

	if err := r.output(s.Returning, "INSERTED"); err != nil {
		return err
	}

	switch {
	case s.DefaultValues:
		r.write(r.desc.DefaultValues)
	case s.Select != nil:
		r.write(" ")
		source := s.Select
		if s.OnConflict != nil && r.caps.Upsert == UpsertOnConflict {
			source = upsertSource(source)
		}
		if err := r.nested(func() error { return r.selectQuery(source) }); err != nil {
			return err
		}
	default:
		r.write(" VALUES ")
		for i, row := range s.Rows {
			if i > 0 {
				r.write(", ")
			}
			r.write("(")
			if err := r.exprList(row); err != nil {
				return err
			}
			r.write(")")
		}
	}

	if c := s.OnConflict; c != nil {
		if err := r.onConflict(c); err != nil {
			return err
		}
	}
	return r.returning(s.Returning)
}

func (r *renderer) onConflict(c *types.OnConflict) error {
	if r.caps.Upsert == UpsertOnDuplicateKey {
		if c.DoNothing {
			return nil
		}
		r.write(" ON DUPLICATE KEY UPDATE ")
		return r.upsertAssignments(c.Updates)
	}

	r.write(" ON CONFLICT")
	if len(c.Targets) > 0 {
		r.write(" (")
		if err := r.identList(c.Targets); err != nil {
			return err
		}
		r.write(")")
	}
	if c.DoNothing {
		r.write(" DO NOTHING")
		return nil
	}
	r.write(" DO UPDATE SET ")
	return r.upsertAssignments(c.Updates)
}

func (r *renderer) upsertAssignments(sets []types.Assignment) error {
	r.upsert = true
	defer func() { r.upsert = false }()
	return r.assignments(sets)
}

// excluded renders a reference to the row proposed for insertion.
func (r *renderer) excluded(e types.ExcludedExpr) error {
	if !r.upsert {
		return r.buildErr("excluded row reference outside an upsert update list")
	}
	if r.caps.Upsert == UpsertOnDuplicateKey {
		r.write("VALUES(")
		if err := r.ident(e.Column); err != nil {
			return err
		}
		r.write(")")
		return nil
	}
	r.write("EXCLUDED.")
	return r.ident(e.Column)
}

func (r *renderer) assignments(sets []types.Assignment) error {
	for i, set := range sets {
		if i > 0 {
			r.write(", ")
		}
		if err := r.ident(set.Column); err != nil {
			return err
		}
		r.write(" = ")
		if err := r.expr(set.Value, types.PrecLowest); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) updateStmt(s *types.UpdateStmt) error {
	if err := s.Validate(); err != nil {
		return WrapBuildError("UPDATE", err)
	}
	if s.Table.Alias != nil {
		return r.buildErr("UPDATE target cannot be aliased")
	}
	if err := r.checkReturning(s.Returning, r.caps.ReturningOnUpdate); err != nil {
		return err
	}
	if (len(s.OrderBy) > 0 || s.Limit != nil) && !r.caps.UpdateLimit {
		return r.unsupported("UPDATE with ORDER BY or LIMIT", "restrict the rows with a sub-query in WHERE")
	}

	r.write("UPDATE ")
	if err := r.tableName(s.Table); err != nil {
		return err
	}
	r.write(" SET ")
	if err := r.assignments(s.Sets); err != nil {
		return err
	}
	if err := r.output(s.Returning, "INSERTED"); err != nil {
		return err
	}
	if err := r.where(s.Where); err != nil {
		return err
	}
	if err := r.modifyTail(s.OrderBy, s.Limit); err != nil {
		return err
	}
	return r.returning(s.Returning)
}

func (r *renderer) deleteStmt(s *types.DeleteStmt) error {
	if err := s.Validate(); err != nil {
		return WrapBuildError("DELETE", err)
	}
	if s.Table.Alias != nil {
		return r.buildErr("DELETE target cannot be aliased")
	}
	if err := r.checkReturning(s.Returning, r.caps.ReturningOnDelete); err != nil {
		return err
	}
	if (len(s.OrderBy) > 0 || s.Limit != nil) && !r.caps.DeleteLimit {
		return r.unsupported("DELETE with ORDER BY or LIMIT", "restrict the rows with a sub-query in WHERE")
	}

	r.write("DELETE FROM ")
	if err := r.tableName(s.Table); err != nil {
		return err
	}
	if err := r.output(s.Returning, "DELETED"); err != nil {
		return err
	}
	if err := r.where(s.Where); err != nil {
		return err
	}
	if err := r.modifyTail(s.OrderBy, s.Limit); err != nil {
		return err
	}
	return r.returning(s.Returning)
}

func (r *renderer) modifyTail(order []types.OrderExpr, limit *int64) error {
	if len(order) > 0 {
		if err := r.orderBy(order); err != nil {
			return err
		}
	}
	if limit != nil {
		r.write(" LIMIT ")
		return r.limitValue(*limit)
	}
	return nil
}

func (r *renderer) checkReturning(ret *types.Returning, allowed bool) error {
	if ret == nil {
		return nil
	}
	if r.caps.Returning == ReturningNone || !allowed {
		return r.unsupported("RETURNING", "run a separate SELECT after the statement")
	}
	return nil
}

// output renders the OUTPUT clause of dialects that report modified rows
// through pseudo tables.
func (r *renderer) output(ret *types.Returning, pseudo string) error {
	if ret == nil || r.caps.Returning != ReturningOutput {
		return nil
	}
	r.write(" OUTPUT ")
	if ret.All {
		r.write(pseudo + ".*")
		return nil
	}
	for i, col := range ret.Columns {
		if i > 0 {
			r.write(", ")
		}
		r.write(pseudo + ".")
		if err := r.ident(col); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) returning(ret *types.Returning) error {
	if ret == nil || r.caps.Returning != ReturningClause {
		return nil
	}
	r.write(" RETURNING ")
	if ret.All {
		r.write("*")
		return nil
	}
	return r.identList(ret.Columns)
}

func (r *renderer) withStmt(s *types.WithStmt) error {
	if err := s.Validate(); err != nil {
		return WrapBuildError("WITH", err)
	}
	switch s.Body.(type) {
	case *types.InsertStmt:
		if !r.caps.CTEOnInsert {
			return r.unsupported("WITH before INSERT", "use INSERT ... SELECT with a derived table")
		}
	case *types.UpdateStmt, *types.DeleteStmt:
		if !r.caps.CTEOnUpdateDelete {
			return r.unsupported("WITH before " + s.Body.Kind())
		}
	}

	r.write("WITH ")
	if s.Recursive {
		r.write(r.desc.RecursiveKeyword)
	}
	for i, cte := range s.CTEs {
		if i > 0 {
			r.write(", ")
		}
		if err := r.ident(cte.Name); err != nil {
			return err
		}
		if len(cte.Columns) > 0 {
			r.write(" (")
			if err := r.identList(cte.Columns); err != nil {
				return err
			}
			r.write(")")
		}
		r.write(" AS (")
		if err := r.nested(func() error { return r.selectQuery(cte.Query) }); err != nil {
			return err
		}
		r.write(")")
	}
	r.write(" ")
	r.stmt = s.Body.Kind()
	return r.statement(s.Body)
}
