package core

import (
	"strings"
)

// ---------- Expression Types ----------

// Identifier is an unqualified name, e.g. a column or an alias.
type Identifier struct {
	Name Ident
}

func (*Identifier) exprNode() {}

// String implements Node.
func (e *Identifier) String() string { return string(e.Name) }

// Wildcard is an unqualified `*`.
type Wildcard struct{}

func (*Wildcard) exprNode() {}

// String implements Node.
func (*Wildcard) String() string { return "*" }

// QualifiedWildcard is `q.*`, e.g. `alias.*` or `schema.table.*`.
type QualifiedWildcard struct {
	Qualifier []Ident
}

func (*QualifiedWildcard) exprNode() {}

// String implements Node.
func (e *QualifiedWildcard) String() string {
	return joinIdents(e.Qualifier, ".") + ".*"
}

// CompoundIdentifier is a multi-part identifier, e.g. `table.column`.
type CompoundIdentifier struct {
	Parts []Ident
}

func (*CompoundIdentifier) exprNode() {}

// String implements Node.
func (e *CompoundIdentifier) String() string {
	return joinIdents(e.Parts, ".")
}

// IsNull is `expr IS NULL`.
type IsNull struct {
	Expr Expr
}

func (*IsNull) exprNode() {}

// String implements Node.
func (e *IsNull) String() string { return e.Expr.String() + " IS NULL" }

// IsNotNull is `expr IS NOT NULL`.
type IsNotNull struct {
	Expr Expr
}

func (*IsNotNull) exprNode() {}

// String implements Node.
func (e *IsNotNull) String() string { return e.Expr.String() + " IS NOT NULL" }

// InList is `expr [NOT] IN (val1, val2, ...)`.
type InList struct {
	Expr    Expr
	List    []Expr
	Negated bool
}

func (*InList) exprNode() {}

// String implements Node.
func (e *InList) String() string {
	return e.Expr.String() + " " + not(e.Negated) + "IN (" + commaSeparated(e.List) + ")"
}

// InSubquery is `expr [NOT] IN (SELECT ...)`.
type InSubquery struct {
	Expr     Expr
	Subquery *Query
	Negated  bool
}

func (*InSubquery) exprNode() {}

// String implements Node.
func (e *InSubquery) String() string {
	return e.Expr.String() + " " + not(e.Negated) + "IN (" + e.Subquery.String() + ")"
}

// Between is `expr [NOT] BETWEEN low AND high`.
type Between struct {
	Expr    Expr
	Negated bool
	Low     Expr
	High    Expr
}

func (*Between) exprNode() {}

// String implements Node.
func (e *Between) String() string {
	return e.Expr.String() + " " + not(e.Negated) + "BETWEEN " + e.Low.String() + " AND " + e.High.String()
}

// BinaryOp is a binary operation, e.g. `1 + 1` or `foo > bar`.
type BinaryOp struct {
	Left  Expr
	Op    BinaryOperator
	Right Expr
}

func (*BinaryOp) exprNode() {}

// String implements Node.
func (e *BinaryOp) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

// UnaryOp is a prefix operation, e.g. `NOT foo` or `- 1`.
type UnaryOp struct {
	Op   UnaryOperator
	Expr Expr
}

func (*UnaryOp) exprNode() {}

// String implements Node.
func (e *UnaryOp) String() string { return e.Op.String() + " " + e.Expr.String() }

// Cast is `CAST(expr AS type)`; `expr::type` parses to the same node.
type Cast struct {
	Expr     Expr
	DataType DataType
}

func (*Cast) exprNode() {}

// String implements Node.
func (e *Cast) String() string {
	return "CAST(" + e.Expr.String() + " AS " + e.DataType.String() + ")"
}

// Extract is `EXTRACT(field FROM expr)`.
type Extract struct {
	Field DateTimeField
	Expr  Expr
}

func (*Extract) exprNode() {}

// String implements Node.
func (e *Extract) String() string {
	return "EXTRACT(" + e.Field.String() + " FROM " + e.Expr.String() + ")"
}

// Collate is `expr COLLATE collation`.
type Collate struct {
	Expr      Expr
	Collation ObjectName
}

func (*Collate) exprNode() {}

// String implements Node.
func (e *Collate) String() string {
	return e.Expr.String() + " COLLATE " + e.Collation.String()
}

// Nested is a parenthesized expression, e.g. `(foo > bar)`.
type Nested struct {
	Expr Expr
}

func (*Nested) exprNode() {}

// String implements Node.
func (e *Nested) String() string { return "(" + e.Expr.String() + ")" }

// Literal is a literal value such as a string, number, date or NULL.
type Literal struct {
	Value Value
}

func (*Literal) exprNode() {}

// String implements Node.
func (e *Literal) String() string { return e.Value.String() }

// Function is a function call, e.g. `LEFT(foo, 5)` or
// `row_number() OVER (ORDER BY x)`.
type Function struct {
	Name     ObjectName
	Args     []Expr
	Over     *WindowSpec
	Distinct bool // COUNT(DISTINCT x)
}

func (*Function) exprNode() {}

// String implements Node.
func (e *Function) String() string {
	var sb strings.Builder
	sb.WriteString(e.Name.String())
	sb.WriteString("(")
	if e.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(commaSeparated(e.Args))
	sb.WriteString(")")
	if e.Over != nil {
		sb.WriteString(" OVER (")
		sb.WriteString(e.Over.String())
		sb.WriteString(")")
	}
	return sb.String()
}

// Case is `CASE [operand] WHEN cond THEN result ... [ELSE result] END`.
// Conditions and Results have equal length.
type Case struct {
	Operand    Expr
	Conditions []Expr
	Results    []Expr
	ElseResult Expr
}

func (*Case) exprNode() {}

// String implements Node.
func (e *Case) String() string {
	var sb strings.Builder
	sb.WriteString("CASE")
	if e.Operand != nil {
		sb.WriteString(" ")
		sb.WriteString(e.Operand.String())
	}
	for i, c := range e.Conditions {
		sb.WriteString(" WHEN ")
		sb.WriteString(c.String())
		sb.WriteString(" THEN ")
		sb.WriteString(e.Results[i].String())
	}
	if e.ElseResult != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(e.ElseResult.String())
	}
	sb.WriteString(" END")
	return sb.String()
}

// Exists is `EXISTS (SELECT ...)`.
type Exists struct {
	Subquery *Query
}

func (*Exists) exprNode() {}

// String implements Node.
func (e *Exists) String() string { return "EXISTS (" + e.Subquery.String() + ")" }

// Subquery is a parenthesized query used as an expression, e.g.
// `SELECT (SELECT 1) AS x`.
type Subquery struct {
	Query *Query
}

func (*Subquery) exprNode() {}

// String implements Node.
func (e *Subquery) String() string { return "(" + e.Query.String() + ")" }

func not(negated bool) string {
	if negated {
		return "NOT "
	}
	return ""
}

// ---------- Window Types ----------

// WindowSpec is the body of an OVER clause.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []*OrderByExpr
	WindowFrame *WindowFrame
}

// String renders the clauses space-separated, without the parentheses.
func (w *WindowSpec) String() string {
	var parts []string
	if len(w.PartitionBy) > 0 {
		parts = append(parts, "PARTITION BY "+commaSeparated(w.PartitionBy))
	}
	if len(w.OrderBy) > 0 {
		parts = append(parts, "ORDER BY "+commaSeparated(w.OrderBy))
	}
	if w.WindowFrame != nil {
		parts = append(parts, w.WindowFrame.String())
	}
	return strings.Join(parts, " ")
}

// WindowFrameUnits is ROWS, RANGE or GROUPS.
type WindowFrameUnits int

// Window frame units.
const (
	FrameRows WindowFrameUnits = iota
	FrameRange
	FrameGroups
)

// String implements Node.
func (u WindowFrameUnits) String() string {
	switch u {
	case FrameRange:
		return "RANGE"
	case FrameGroups:
		return "GROUPS"
	}
	return "ROWS"
}

// WindowFrame is e.g. `RANGE UNBOUNDED PRECEDING` or
// `ROWS BETWEEN 5 PRECEDING AND CURRENT ROW`.
type WindowFrame struct {
	Units      WindowFrameUnits
	StartBound *WindowFrameBound
	EndBound   *WindowFrameBound // BETWEEN .. AND right bound, or nil
}

// String implements Node.
func (f *WindowFrame) String() string {
	if f.EndBound != nil {
		return f.Units.String() + " BETWEEN " + f.StartBound.String() + " AND " + f.EndBound.String()
	}
	return f.Units.String() + " " + f.StartBound.String()
}

// BoundKind is the kind of a window frame bound.
type BoundKind int

// Window frame bound kinds.
const (
	CurrentRow BoundKind = iota
	Preceding
	Following
)

// WindowFrameBound is `CURRENT ROW`, `[n|UNBOUNDED] PRECEDING` or
// `[n|UNBOUNDED] FOLLOWING`. A nil Offset means UNBOUNDED.
type WindowFrameBound struct {
	Kind   BoundKind
	Offset *uint64
}

// String implements Node.
func (b *WindowFrameBound) String() string {
	var dir string
	switch b.Kind {
	case CurrentRow:
		return "CURRENT ROW"
	case Preceding:
		dir = "PRECEDING"
	default:
		dir = "FOLLOWING"
	}
	if b.Offset == nil {
		return "UNBOUNDED " + dir
	}
	return formatUint(*b.Offset) + " " + dir
}
