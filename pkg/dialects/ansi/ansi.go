// Package ansi provides the ANSI SQL dialect.
//
// Identifiers start with an ASCII letter and continue with letters, digits
// and underscores. Delimited identifiers use double quotes.
package ansi

import "github.com/leapstack-labs/sqlfront/pkg/dialect"

func init() {
	dialect.Register(ANSI)
}

// ANSI is the strict ANSI SQL dialect.
var ANSI = dialect.NewDialect("ansi").
	IdentifierStart(dialect.IsASCIILetter).
	IdentifierPart(dialect.AnyOf(dialect.IsASCIILetter, dialect.IsASCIIDigit, dialect.Runes('_'))).
	Delimiters('"').
	Build()
