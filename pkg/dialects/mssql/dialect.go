// Package mssql provides the Microsoft SQL Server dialect.
package mssql

import "github.com/leapstack-labs/sqlfront/pkg/dialect"

func init() {
	dialect.Register(MsSQL)
}

// MsSQL accepts Unicode letters, #temp and @variable names, and [bracketed]
// delimited identifiers.
//
// See https://docs.microsoft.com/en-us/sql/relational-databases/databases/database-identifiers
var MsSQL = dialect.NewDialect("mssql").
	IdentifierStart(dialect.AnyOf(dialect.IsAlphabetic, dialect.Runes('_', '#', '@'))).
	IdentifierPart(dialect.AnyOf(dialect.IsAlphanumeric, dialect.Runes('@', '$', '#', '_'))).
	Delimiters('"', '[').
	Build()
