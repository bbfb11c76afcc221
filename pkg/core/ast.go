package core

import (
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// String renders the node as canonical SQL.
	String() string
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Ident is an identifier as written in source, including any delimiters
// (e.g. `"Foo Bar"` or `[x]`).
type Ident string

// String implements Node.
func (i Ident) String() string { return string(i) }

// ObjectName is a possibly multi-part name, e.g. db.schema.obj.
type ObjectName []Ident

// String implements Node.
func (o ObjectName) String() string {
	return joinIdents(o, ".")
}

// ---------- Rendering helpers ----------

func joinIdents(idents []Ident, sep string) string {
	parts := make([]string, len(idents))
	for i, id := range idents {
		parts[i] = string(id)
	}
	return strings.Join(parts, sep)
}

// commaSeparated renders nodes joined by ", ".
func commaSeparated[T Node](nodes []T) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

// quoteString renders s as a single-quoted SQL string.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
