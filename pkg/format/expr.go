package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
)

const complexityThreshold = 5

func (p *Printer) formatExpr(e core.Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *core.BinaryOp:
		p.formatBinaryOp(expr)
	case *core.UnaryOp:
		p.keyword(expr.Op.String())
		p.space()
		p.formatExpr(expr.Expr)
	case *core.Nested:
		p.write("(")
		p.formatExpr(expr.Expr)
		p.write(")")
	case *core.Function:
		p.formatFunction(expr)
	case *core.Case:
		p.formatCase(expr)
	case *core.Subquery:
		p.formatSubquery(expr.Query)
	case *core.Exists:
		p.keyword("EXISTS")
		p.space()
		p.formatSubquery(expr.Subquery)
	case *core.InSubquery:
		p.formatExpr(expr.Expr)
		p.space()
		if expr.Negated {
			p.keyword("NOT", "IN")
		} else {
			p.keyword("IN")
		}
		p.space()
		p.formatSubquery(expr.Subquery)
	default:
		p.write(e.String())
	}
}

func (p *Printer) exprComplexity(e core.Expr) int {
	if e == nil {
		return 0
	}

	switch expr := e.(type) {
	case *core.BinaryOp:
		return 1 + p.exprComplexity(expr.Left) + p.exprComplexity(expr.Right)
	case *core.UnaryOp:
		return 1 + p.exprComplexity(expr.Expr)
	case *core.Nested:
		return p.exprComplexity(expr.Expr)
	case *core.Function:
		score := 2
		for _, arg := range expr.Args {
			score += p.exprComplexity(arg)
		}
		return score
	case *core.Case:
		score := 2
		for i, c := range expr.Conditions {
			score += p.exprComplexity(c) + p.exprComplexity(expr.Results[i])
		}
		return score
	case *core.Between:
		return 2 + p.exprComplexity(expr.Expr)
	default:
		return 1
	}
}

func isLogicalOp(op core.BinaryOperator) bool {
	return op == core.OpAnd || op == core.OpOr
}

func (p *Printer) formatBinaryOp(expr *core.BinaryOp) {
	shouldBreak := isLogicalOp(expr.Op) && p.exprComplexity(expr) > complexityThreshold

	p.formatExpr(expr.Left)

	if shouldBreak {
		p.writeln()
	} else {
		p.space()
	}
	p.keyword(expr.Op.String())
	p.space()

	p.formatExpr(expr.Right)
}

func (p *Printer) formatSubquery(q *core.Query) {
	p.write("(")
	p.writeln()
	p.indent()
	p.formatQuery(q)
	p.dedent()
	p.write(")")
}

func (p *Printer) formatFunction(fn *core.Function) {
	p.write(fn.Name.String())
	p.write("(")
	if fn.Distinct {
		p.keyword("DISTINCT")
		p.space()
	}
	p.formatList(len(fn.Args), func(i int) { p.formatExpr(fn.Args[i]) }, ", ", false)
	p.write(")")

	if fn.Over != nil {
		p.space()
		p.formatWindowSpec(fn.Over)
	}
}

func (p *Printer) formatWindowSpec(w *core.WindowSpec) {
	p.keyword("OVER")
	p.write(" (")

	if len(w.PartitionBy) > 0 {
		p.writeln()
		p.indent()
		p.keyword("PARTITION", "BY")
		p.space()
		p.formatList(len(w.PartitionBy), func(i int) { p.formatExpr(w.PartitionBy[i]) }, ", ", false)
		p.dedent()
	}

	if len(w.OrderBy) > 0 {
		p.writeln()
		p.indent()
		p.keyword("ORDER", "BY")
		p.space()
		p.formatList(len(w.OrderBy), func(i int) { p.formatOrderByItem(w.OrderBy[i]) }, ", ", false)
		p.dedent()
	}

	if w.WindowFrame != nil {
		p.writeln()
		p.indent()
		p.write(w.WindowFrame.String())
		p.dedent()
	}

	p.write(")")
}

func (p *Printer) formatCase(c *core.Case) {
	p.keyword("CASE")

	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}

	p.writeln()
	p.indent()

	for i, cond := range c.Conditions {
		p.keyword("WHEN")
		p.space()
		p.formatExpr(cond)
		p.space()
		p.keyword("THEN")
		p.space()
		p.formatExpr(c.Results[i])
		p.writeln()
	}

	if c.ElseResult != nil {
		p.keyword("ELSE")
		p.space()
		p.formatExpr(c.ElseResult)
		p.writeln()
	}

	p.dedent()
	p.keyword("END")
}
