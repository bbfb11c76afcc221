// Package format pretty-prints parsed statements as indented, multi-line
// SQL. Queries and DML get one clause per line; other statements print in
// their canonical single-line form.
package format

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Statement formats a single statement without a trailing delimiter.
func Statement(stmt core.Stmt) string {
	p := newPrinter()
	p.formatStmt(stmt)
	return p.String()
}

// Statements formats stmts, terminating each with `;` and separating them
// with a blank line.
func Statements(stmts []core.Stmt) string {
	p := newPrinter()
	p.formatStatements(stmts)
	return p.String()
}

// WithComments formats stmts preceded by comments. The AST does not record
// source positions, so comments are emitted above the statements in
// source order.
func WithComments(stmts []core.Stmt, comments []*token.Comment) string {
	p := newPrinter()
	p.formatComments(comments)
	if len(comments) > 0 && len(stmts) > 0 {
		p.writeln()
	}
	p.formatStatements(stmts)
	return p.String()
}

func (p *Printer) formatStatements(stmts []core.Stmt) {
	for i, stmt := range stmts {
		if i > 0 {
			p.writeln()
		}
		p.write(strings.TrimRight(Statement(stmt), "\n") + ";")
		p.writeln()
	}
}
