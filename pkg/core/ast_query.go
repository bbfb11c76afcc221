package core

import (
	"strings"
)

// ---------- Query Types ----------

// Query is a complete query: optional CTEs, a body, and the trailing
// ORDER BY, LIMIT, OFFSET and FETCH clauses. It is also a statement.
type Query struct {
	CTEs    []*CTE
	Body    SetExpr
	OrderBy []*OrderByExpr
	Limit   Expr // nil also covers LIMIT ALL
	Offset  Expr
	Fetch   *Fetch
}

func (*Query) stmtNode() {}

// String implements Node.
func (q *Query) String() string {
	var sb strings.Builder
	if len(q.CTEs) > 0 {
		sb.WriteString("WITH ")
		sb.WriteString(commaSeparated(q.CTEs))
		sb.WriteString(" ")
	}
	sb.WriteString(q.Body.String())
	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(commaSeparated(q.OrderBy))
	}
	if q.Limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(q.Limit.String())
	}
	if q.Offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(q.Offset.String())
		sb.WriteString(" ROWS")
	}
	if q.Fetch != nil {
		sb.WriteString(" ")
		sb.WriteString(q.Fetch.String())
	}
	return sb.String()
}

// SetExpr is a query body: a SELECT, a parenthesized query, VALUES, or a
// set operation combining two bodies.
type SetExpr interface {
	Node
	setExprNode()
}

// SetOperator is UNION, EXCEPT or INTERSECT.
type SetOperator int

// Set operators.
const (
	Union SetOperator = iota
	Except
	Intersect
)

// String implements Node.
func (op SetOperator) String() string {
	switch op {
	case Except:
		return "EXCEPT"
	case Intersect:
		return "INTERSECT"
	}
	return "UNION"
}

// SetOperation is `left UNION [ALL] right` and friends.
type SetOperation struct {
	Op    SetOperator
	All   bool
	Left  SetExpr
	Right SetExpr
}

func (*SetOperation) setExprNode() {}

// String implements Node.
func (s *SetOperation) String() string {
	all := ""
	if s.All {
		all = " ALL"
	}
	return s.Left.String() + " " + s.Op.String() + all + " " + s.Right.String()
}

// SetQuery is a parenthesized query used as a query body.
type SetQuery struct {
	Query *Query
}

func (*SetQuery) setExprNode() {}

// String implements Node.
func (s *SetQuery) String() string { return "(" + s.Query.String() + ")" }

// Values is `VALUES (..), (..)`.
type Values struct {
	Rows [][]Expr
}

func (*Values) setExprNode() {}

// String implements Node.
func (v *Values) String() string {
	rows := make([]string, len(v.Rows))
	for i, row := range v.Rows {
		rows[i] = "(" + commaSeparated(row) + ")"
	}
	return "VALUES " + strings.Join(rows, ", ")
}

// Select is the body of a SELECT, without ORDER BY and friends, which
// belong to the enclosing Query.
type Select struct {
	Distinct   bool
	Projection []SelectItem
	From       []*TableWithJoins
	Selection  Expr // WHERE
	GroupBy    []Expr
	Having     Expr
}

func (*Select) setExprNode() {}

// String implements Node.
func (s *Select) String() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if s.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(commaSeparated(s.Projection))
	if len(s.From) > 0 {
		sb.WriteString(" FROM ")
		sb.WriteString(commaSeparated(s.From))
	}
	if s.Selection != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(s.Selection.String())
	}
	if len(s.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(commaSeparated(s.GroupBy))
	}
	if s.Having != nil {
		sb.WriteString(" HAVING ")
		sb.WriteString(s.Having.String())
	}
	return sb.String()
}

// CTE is a common table expression: `alias [(cols)] AS (query)`.
type CTE struct {
	Alias TableAlias
	Query *Query
}

// String implements Node.
func (c *CTE) String() string {
	return c.Alias.String() + " AS (" + c.Query.String() + ")"
}

// SelectItem is one element of a projection.
type SelectItem interface {
	Node
	selectItemNode()
}

// UnnamedExpr is a projected expression without an alias.
type UnnamedExpr struct {
	Expr Expr
}

func (*UnnamedExpr) selectItemNode() {}

// String implements Node.
func (s *UnnamedExpr) String() string { return s.Expr.String() }

// ExprWithAlias is `expr AS alias`.
type ExprWithAlias struct {
	Expr  Expr
	Alias Ident
}

func (*ExprWithAlias) selectItemNode() {}

// String implements Node.
func (s *ExprWithAlias) String() string { return s.Expr.String() + " AS " + string(s.Alias) }

// SelectQualifiedWildcard is `alias.*` or `schema.table.*`.
type SelectQualifiedWildcard struct {
	Prefix ObjectName
}

func (*SelectQualifiedWildcard) selectItemNode() {}

// String implements Node.
func (s *SelectQualifiedWildcard) String() string { return s.Prefix.String() + ".*" }

// SelectWildcard is an unqualified `*`.
type SelectWildcard struct{}

func (*SelectWildcard) selectItemNode() {}

// String implements Node.
func (*SelectWildcard) String() string { return "*" }

// OrderByExpr is `expr [ASC|DESC]`. A nil Asc means no direction was given.
type OrderByExpr struct {
	Expr Expr
	Asc  *bool
}

// String implements Node.
func (o *OrderByExpr) String() string {
	switch {
	case o.Asc == nil:
		return o.Expr.String()
	case *o.Asc:
		return o.Expr.String() + " ASC"
	default:
		return o.Expr.String() + " DESC"
	}
}

// Fetch is `FETCH FIRST [quantity [PERCENT]] ROWS {ONLY | WITH TIES}`.
type Fetch struct {
	WithTies bool
	Percent  bool
	Quantity Expr
}

// String implements Node.
func (f *Fetch) String() string {
	extension := "ONLY"
	if f.WithTies {
		extension = "WITH TIES"
	}
	if f.Quantity == nil {
		return "FETCH FIRST ROWS " + extension
	}
	percent := ""
	if f.Percent {
		percent = " PERCENT"
	}
	return "FETCH FIRST " + f.Quantity.String() + percent + " ROWS " + extension
}
