package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
)

// ---------- Statement Formatting ----------

func (p *Printer) formatStmt(stmt core.Stmt) {
	switch s := stmt.(type) {
	case *core.Query:
		p.formatQuery(s)
	case *core.InsertStmt:
		p.formatInsert(s)
	case *core.UpdateStmt:
		p.formatUpdate(s)
	case *core.DeleteStmt:
		p.formatDelete(s)
	default:
		p.write(stmt.String())
		p.writeln()
	}
}

func (p *Printer) formatQuery(q *core.Query) {
	if len(q.CTEs) > 0 {
		p.formatWith(q.CTEs)
	}

	p.formatSetExpr(q.Body)

	if len(q.OrderBy) > 0 {
		p.block("ORDER BY", func() {
			p.formatList(len(q.OrderBy), func(i int) {
				p.formatOrderByItem(q.OrderBy[i])
			}, ",", true)
		})
	}
	if q.Limit != nil {
		p.keyword("LIMIT")
		p.space()
		p.formatExpr(q.Limit)
		p.writeln()
	}
	if q.Offset != nil {
		p.keyword("OFFSET")
		p.space()
		p.formatExpr(q.Offset)
		p.space()
		p.keyword("ROWS")
		p.writeln()
	}
	if q.Fetch != nil {
		p.write(q.Fetch.String())
		p.writeln()
	}
}

func (p *Printer) formatWith(ctes []*core.CTE) {
	p.keyword("WITH")
	p.writeln()
	p.indent()

	p.formatList(len(ctes), func(i int) {
		cte := ctes[i]
		p.write(cte.Alias.String())
		p.space()
		p.keyword("AS")
		p.write(" (")
		p.writeln()
		p.indent()
		p.formatQuery(cte.Query)
		p.dedent()
		p.write(")")
	}, ",", true)

	p.writeln()
	p.dedent()
}

func (p *Printer) formatSetExpr(body core.SetExpr) {
	switch b := body.(type) {
	case *core.Select:
		p.formatSelect(b)
	case *core.SetOperation:
		p.formatSetExpr(b.Left)
		if b.All {
			p.keyword(b.Op.String(), "ALL")
		} else {
			p.keyword(b.Op.String())
		}
		p.writeln()
		p.formatSetExpr(b.Right)
	case *core.SetQuery:
		p.write("(")
		p.writeln()
		p.indent()
		p.formatQuery(b.Query)
		p.dedent()
		p.write(")")
		p.writeln()
	case *core.Values:
		p.block("VALUES", func() {
			p.formatList(len(b.Rows), func(i int) {
				p.write("(")
				p.formatList(len(b.Rows[i]), func(j int) {
					p.formatExpr(b.Rows[i][j])
				}, ", ", false)
				p.write(")")
			}, ",", true)
		})
	default:
		p.write(body.String())
		p.writeln()
	}
}

func (p *Printer) formatSelect(sel *core.Select) {
	if sel.Distinct {
		p.keyword("SELECT", "DISTINCT")
	} else {
		p.keyword("SELECT")
	}
	p.writeln()
	p.indent()
	p.formatList(len(sel.Projection), func(i int) {
		p.formatSelectItem(sel.Projection[i])
	}, ",", true)
	p.writeln()
	p.dedent()

	if len(sel.From) > 0 {
		p.keyword("FROM")
		p.space()
		p.formatList(len(sel.From), func(i int) {
			p.formatTableWithJoins(sel.From[i])
		}, ", ", false)
		p.writeln()
	}

	if sel.Selection != nil {
		p.block("WHERE", func() {
			p.formatExpr(sel.Selection)
		})
	}

	if len(sel.GroupBy) > 0 {
		p.block("GROUP BY", func() {
			p.formatList(len(sel.GroupBy), func(i int) {
				p.formatExpr(sel.GroupBy[i])
			}, ",", true)
		})
	}

	if sel.Having != nil {
		p.block("HAVING", func() {
			p.formatExpr(sel.Having)
		})
	}
}

func (p *Printer) formatSelectItem(item core.SelectItem) {
	switch it := item.(type) {
	case *core.UnnamedExpr:
		p.formatExpr(it.Expr)
	case *core.ExprWithAlias:
		p.formatExpr(it.Expr)
		p.space()
		p.keyword("AS")
		p.space()
		p.write(string(it.Alias))
	default:
		p.write(item.String())
	}
}

func (p *Printer) formatOrderByItem(item *core.OrderByExpr) {
	p.formatExpr(item.Expr)
	if item.Asc != nil {
		p.space()
		if *item.Asc {
			p.keyword("ASC")
		} else {
			p.keyword("DESC")
		}
	}
}

// ---------- FROM Clause ----------

func (p *Printer) formatTableWithJoins(t *core.TableWithJoins) {
	p.formatTableFactor(t.Relation)
	for _, j := range t.Joins {
		p.writeln()
		p.formatJoin(j)
	}
}

func (p *Printer) formatTableFactor(tf core.TableFactor) {
	switch t := tf.(type) {
	case *core.Derived:
		if t.Lateral {
			p.keyword("LATERAL")
			p.space()
		}
		p.write("(")
		p.writeln()
		p.indent()
		p.formatQuery(t.Subquery)
		p.dedent()
		p.write(")")
		if t.Alias != nil {
			p.space()
			p.keyword("AS")
			p.space()
			p.write(t.Alias.String())
		}
	default:
		p.write(tf.String())
	}
}

func (p *Printer) formatJoin(j *core.Join) {
	p.keyword(joinKeyword(j))
	p.space()
	p.formatTableFactor(j.Relation)

	switch c := j.Constraint.(type) {
	case *core.JoinOn:
		p.writeln()
		p.indent()
		p.keyword("ON")
		p.space()
		p.formatExpr(c.Expr)
		p.dedent()
	case *core.JoinUsing:
		p.writeln()
		p.indent()
		p.write(c.String()[1:])
		p.dedent()
	}
}

func joinKeyword(j *core.Join) string {
	var kw string
	switch j.Kind {
	case core.JoinCross:
		return "CROSS JOIN"
	case core.JoinCrossApply:
		return "CROSS APPLY"
	case core.JoinOuterApply:
		return "OUTER APPLY"
	case core.JoinLeftOuter:
		kw = "LEFT JOIN"
	case core.JoinRightOuter:
		kw = "RIGHT JOIN"
	case core.JoinFullOuter:
		kw = "FULL JOIN"
	default:
		kw = "JOIN"
	}
	if _, ok := j.Constraint.(*core.NaturalJoin); ok {
		return "NATURAL " + kw
	}
	return kw
}

// ---------- DML ----------

func (p *Printer) formatInsert(s *core.InsertStmt) {
	p.keyword("INSERT", "INTO")
	p.space()
	p.write(s.TableName.String())
	if len(s.Columns) > 0 {
		p.write(" (")
		p.formatList(len(s.Columns), func(i int) {
			p.write(string(s.Columns[i]))
		}, ", ", false)
		p.write(")")
	}
	p.writeln()
	p.formatQuery(s.Source)
}

func (p *Printer) formatUpdate(s *core.UpdateStmt) {
	p.keyword("UPDATE")
	p.space()
	p.write(s.TableName.String())
	p.writeln()

	if len(s.Assignments) > 0 {
		p.block("SET", func() {
			p.formatList(len(s.Assignments), func(i int) {
				a := s.Assignments[i]
				p.write(string(a.ID) + " = ")
				p.formatExpr(a.Value)
			}, ",", true)
		})
	}

	if s.Selection != nil {
		p.block("WHERE", func() {
			p.formatExpr(s.Selection)
		})
	}
}

func (p *Printer) formatDelete(s *core.DeleteStmt) {
	p.keyword("DELETE", "FROM")
	p.space()
	p.write(s.TableName.String())
	p.writeln()

	if s.Selection != nil {
		p.block("WHERE", func() {
			p.formatExpr(s.Selection)
		})
	}
}
