// Package core defines the SQL abstract syntax tree.
//
// This package contains:
//   - Statement nodes (Query, InsertStmt, CreateTableStmt, etc.)
//   - Expression nodes (Identifier, BinaryOp, Function, etc.)
//   - Literal values, including parsed INTERVAL literals
//   - Data types, DDL column definitions and constraints
//
// Every node implements fmt.Stringer and renders canonical SQL. Parsing the
// rendered text yields a structurally equal tree, apart from a few
// documented lossy cases (JSONFILE renders as TEXTFILE, for one).
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// The parser depends on core, not the reverse.
package core
