package render

import (
	"github.com/zoobzio/sqlkit/internal/types"
)

func (r *renderer) selectStmt(s *types.SelectStmt) error {
	return r.selectQuery(s)
}

// selectQuery renders a complete SELECT: core, set operations, ORDER BY,
// pagination and locking, in that order.
func (r *renderer) selectQuery(s *types.SelectStmt) error {
	if err := s.Validate(); err != nil {
		return WrapBuildError("SELECT", err)
	}

	if len(s.SetOps) > 0 {
		if err := r.compound(s); err != nil {
			return err
		}
	} else if err := r.selectCore(s); err != nil {
		return err
	}

	if len(s.OrderBy) > 0 {
		if err := r.orderBy(s.OrderBy); err != nil {
			return err
		}
	}
	if err := r.pagination(s); err != nil {
		return err
	}
	if s.Lock != nil {
		return r.lock(s.Lock)
	}
	return nil
}

// compound renders the first arm and every set operation. Arms are
// parenthesized where the dialect allows it; otherwise they must be
// plain cores.
func (r *renderer) compound(s *types.SelectStmt) error {
	paren := r.caps.ParenthesizedSetOperands
	if paren {
		r.write("(")
	}
	if err := r.selectCore(s); err != nil {
		return err
	}
	if paren {
		r.write(")")
	}

	for _, op := range s.SetOps {
		r.write(" ")
		r.write(op.Type.String())
		r.write(" ")
		arm := op.Query
		if !paren {
			if len(arm.OrderBy) > 0 || arm.Limit != nil || arm.Offset != nil || len(arm.SetOps) > 0 {
				return r.unsupported("ORDER BY, LIMIT or nested set operations inside a set operation arm",
					"wrap the arm in a derived table")
			}
			if err := arm.Validate(); err != nil {
				return WrapBuildError("SELECT", err)
			}
			if err := r.selectCore(arm); err != nil {
				return err
			}
			continue
		}
		r.write("(")
		if err := r.selectQuery(arm); err != nil {
			return err
		}
		r.write(")")
	}
	return nil
}

// selectCore renders SELECT ... FROM ... WHERE ... GROUP BY ... HAVING.
func (r *renderer) selectCore(s *types.SelectStmt) error {
	r.write("SELECT ")

	if len(s.DistinctOn) > 0 {
		if !r.caps.DistinctOn {
			return r.unsupported("DISTINCT ON", "use GROUP BY or a window function")
		}
		r.write("DISTINCT ON (")
		if err := r.exprList(s.DistinctOn); err != nil {
			return err
		}
		r.write(") ")
	} else if s.Distinct {
		r.write("DISTINCT ")
	}

	if len(s.Columns) == 0 {
		r.write("*")
	}
	for i, item := range s.Columns {
		if i > 0 {
			r.write(", ")
		}
		if err := r.expr(item.Expr, types.PrecLowest); err != nil {
			return err
		}
		if item.Alias != nil {
			r.write(" AS ")
			if err := r.ident(item.Alias); err != nil {
				return err
			}
		}
	}

	if len(s.From) > 0 {
		r.write(" FROM ")
		for i, from := range s.From {
			if i > 0 {
				r.write(", ")
			}
			if err := r.tableRef(from); err != nil {
				return err
			}
		}
	}

	// Render JOINs
	for _, join := range s.Joins {
		switch join.Type {
		case types.FullJoin:
			if !r.caps.FullOuterJoin {
				return r.unsupported("FULL OUTER JOIN", "combine LEFT JOIN and RIGHT JOIN with UNION")
			}
		case types.RightJoin:
			if !r.caps.RightJoin {
				return r.unsupported("RIGHT JOIN", "swap the tables and use LEFT JOIN")
			}
		}
		r.write(" ")
		r.write(join.Type.String())
		r.write(" ")
		if err := r.tableRef(join.Table); err != nil {
			return err
		}
		if join.Type != types.CrossJoin {
			r.write(" ON ")
			if err := r.expr(join.On, types.PrecLowest); err != nil {
				return err
			}
		}
	}

	if err := r.where(s.Where); err != nil {
		return err
	}

	if len(s.GroupBy) > 0 {
		r.write(" GROUP BY ")
		if err := r.exprList(s.GroupBy); err != nil {
			return err
		}
	}

	if !s.Having.IsEmpty() || s.Having.Negate {
		r.write(" HAVING ")
		if err := r.expr(s.Having, types.PrecLowest); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) pagination(s *types.SelectStmt) error {
	if s.Limit == nil && s.Offset == nil {
		return nil
	}

	if r.desc.Pagination == PaginationOffsetFetch {
		if len(s.OrderBy) == 0 {
			return r.unsupported("LIMIT/OFFSET without ORDER BY", "OFFSET ... FETCH requires an ORDER BY clause")
		}
		r.write(" OFFSET ")
		var offset int64
		if s.Offset != nil {
			offset = *s.Offset
		}
		if err := r.limitValue(offset); err != nil {
			return err
		}
		r.write(" ROWS")
		if s.Limit != nil {
			r.write(" FETCH NEXT ")
			if err := r.limitValue(*s.Limit); err != nil {
				return err
			}
			r.write(" ROWS ONLY")
		}
		return nil
	}

	switch {
	case s.Limit != nil:
		r.write(" LIMIT ")
		if err := r.limitValue(*s.Limit); err != nil {
			return err
		}
	case r.desc.NoLimit != "":
		r.write(" LIMIT ")
		r.write(r.desc.NoLimit)
	}
	if s.Offset != nil {
		r.write(" OFFSET ")
		return r.limitValue(*s.Offset)
	}
	return nil
}

func (r *renderer) lock(l *types.Lock) error {
	switch r.caps.RowLocking {
	case RowLockingNone:
		return r.unsupported("row locking", "use a table hint or serializable transaction")
	case RowLockingBasic:
		if l.Type == types.LockNoKeyUpdate || l.Type == types.LockKeyShare {
			return r.unsupported(l.Type.String())
		}
	}
	r.write(" ")
	if l.Type == types.LockShare && r.desc.ShareLock != "" {
		r.write(r.desc.ShareLock)
	} else {
		r.write(l.Type.String())
	}

	if len(l.Of) > 0 {
		if !r.caps.LockOf {
			return r.unsupported("locking clause OF")
		}
		r.write(" OF ")
		if err := r.identList(l.Of); err != nil {
			return err
		}
	}

	switch l.Wait {
	case types.LockNoWait:
		if !r.caps.LockWait {
			return r.unsupported("NOWAIT")
		}
		r.write(" NOWAIT")
	case types.LockSkipLocked:
		if !r.caps.LockWait {
			return r.unsupported("SKIP LOCKED")
		}
		r.write(" SKIP LOCKED")
	}
	return nil
}
