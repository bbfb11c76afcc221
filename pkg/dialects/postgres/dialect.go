// Package postgres provides the PostgreSQL dialect.
package postgres

import "github.com/leapstack-labs/sqlfront/pkg/dialect"

func init() {
	dialect.Register(Postgres)
}

// Postgres allows a leading underscore and $ inside identifiers.
var Postgres = dialect.NewDialect("postgres").
	IdentifierStart(dialect.AnyOf(dialect.IsASCIILetter, dialect.Runes('_'))).
	IdentifierPart(dialect.AnyOf(dialect.IsASCIILetter, dialect.IsASCIIDigit, dialect.Runes('$', '_'))).
	Delimiters('"').
	Build()
