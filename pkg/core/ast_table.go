package core

import (
	"strings"
)

// ---------- Table Reference Types ----------

// TableWithJoins is a FROM item: a relation followed by zero or more joins.
type TableWithJoins struct {
	Relation TableFactor
	Joins    []*Join
}

// String implements Node.
func (t *TableWithJoins) String() string {
	var sb strings.Builder
	sb.WriteString(t.Relation.String())
	for _, j := range t.Joins {
		sb.WriteString(j.String())
	}
	return sb.String()
}

// TableFactor is a single relation in a FROM clause.
type TableFactor interface {
	Node
	tableFactorNode()
}

// TableAlias is `name [(col, ...)]`.
type TableAlias struct {
	Name    Ident
	Columns []Ident
}

// String implements Node.
func (a TableAlias) String() string {
	if len(a.Columns) == 0 {
		return string(a.Name)
	}
	return string(a.Name) + " (" + commaSeparated(a.Columns) + ")"
}

// Table is a named relation, optionally with table-valued function
// arguments and MSSQL-style WITH hints.
type Table struct {
	Name      ObjectName
	Alias     *TableAlias
	Args      []Expr // arguments of a table-valued function; empty otherwise
	WithHints []Expr
}

func (*Table) tableFactorNode() {}

// String implements Node. Empty argument lists are not rendered.
func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name.String())
	if len(t.Args) > 0 {
		sb.WriteString("(")
		sb.WriteString(commaSeparated(t.Args))
		sb.WriteString(")")
	}
	if t.Alias != nil {
		sb.WriteString(" AS ")
		sb.WriteString(t.Alias.String())
	}
	if len(t.WithHints) > 0 {
		sb.WriteString(" WITH (")
		sb.WriteString(commaSeparated(t.WithHints))
		sb.WriteString(")")
	}
	return sb.String()
}

// Derived is a subquery in FROM, optionally LATERAL.
type Derived struct {
	Lateral  bool
	Subquery *Query
	Alias    *TableAlias
}

func (*Derived) tableFactorNode() {}

// String implements Node.
func (d *Derived) String() string {
	var sb strings.Builder
	if d.Lateral {
		sb.WriteString("LATERAL ")
	}
	sb.WriteString("(")
	sb.WriteString(d.Subquery.String())
	sb.WriteString(")")
	if d.Alias != nil {
		sb.WriteString(" AS ")
		sb.WriteString(d.Alias.String())
	}
	return sb.String()
}

// NestedJoin is a parenthesized join, e.g. `(a NATURAL JOIN b)`.
type NestedJoin struct {
	TableWithJoins *TableWithJoins
}

func (*NestedJoin) tableFactorNode() {}

// String implements Node.
func (n *NestedJoin) String() string { return "(" + n.TableWithJoins.String() + ")" }

// ---------- Join Types ----------

// JoinKind is the type of a join.
type JoinKind int

// Join kinds.
const (
	JoinInner JoinKind = iota
	JoinLeftOuter
	JoinRightOuter
	JoinFullOuter
	JoinCross
	JoinCrossApply
	JoinOuterApply
)

// Join is one join appended to a relation.
type Join struct {
	Relation   TableFactor
	Kind       JoinKind
	Constraint JoinConstraint // nil for CROSS JOIN and APPLY
}

// String renders the join with a leading space.
func (j *Join) String() string {
	var keyword string
	switch j.Kind {
	case JoinCross:
		return " CROSS JOIN " + j.Relation.String()
	case JoinCrossApply:
		return " CROSS APPLY " + j.Relation.String()
	case JoinOuterApply:
		return " OUTER APPLY " + j.Relation.String()
	case JoinLeftOuter:
		keyword = "LEFT JOIN"
	case JoinRightOuter:
		keyword = "RIGHT JOIN"
	case JoinFullOuter:
		keyword = "FULL JOIN"
	default:
		keyword = "JOIN"
	}
	prefix, suffix := "", ""
	switch c := j.Constraint.(type) {
	case *NaturalJoin:
		prefix = "NATURAL "
	case nil:
	default:
		suffix = c.String()
	}
	return " " + prefix + keyword + " " + j.Relation.String() + suffix
}

// JoinConstraint is ON, USING or NATURAL.
type JoinConstraint interface {
	Node
	joinConstraintNode()
}

// JoinOn is `ON expr`.
type JoinOn struct {
	Expr Expr
}

func (*JoinOn) joinConstraintNode() {}

// String renders the constraint with a leading space.
func (c *JoinOn) String() string { return " ON " + c.Expr.String() }

// JoinUsing is `USING(col, ...)`.
type JoinUsing struct {
	Columns []Ident
}

func (*JoinUsing) joinConstraintNode() {}

// String renders the constraint with a leading space.
func (c *JoinUsing) String() string { return " USING(" + commaSeparated(c.Columns) + ")" }

// NaturalJoin marks a NATURAL join.
type NaturalJoin struct{}

func (*NaturalJoin) joinConstraintNode() {}

// String implements Node. NATURAL renders as a prefix of the join keyword.
func (*NaturalJoin) String() string { return "" }
