// Package generic provides a permissive dialect that accepts the identifier
// characters of the common SQL engines. It is the default dialect.
package generic

import "github.com/leapstack-labs/sqlfront/pkg/dialect"

func init() {
	dialect.Register(Generic)
}

// Generic accepts @-prefixed identifiers and $ and # inside identifiers.
var Generic = dialect.NewDialect(dialect.DefaultName).
	IdentifierStart(dialect.AnyOf(dialect.IsASCIILetter, dialect.Runes('@'))).
	IdentifierPart(dialect.AnyOf(dialect.IsASCIILetter, dialect.IsASCIIDigit, dialect.Runes('@', '$', '#', '_'))).
	Delimiters('"').
	Build()
