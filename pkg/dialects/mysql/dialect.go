// Package mysql provides the MySQL dialect.
package mysql

import (
	"unicode"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// identStart covers the unquoted identifier characters MySQL accepts:
// ASCII letters, _ and $, and any character at or above U+0080.
var identStart = dialect.AnyOf(
	dialect.IsASCIILetter,
	dialect.Runes('_', '$'),
	dialect.Between('\u0080', unicode.MaxRune),
)

// MySQL delimits identifiers with backticks.
var MySQL = dialect.NewDialect("mysql").
	IdentifierStart(identStart).
	IdentifierPart(dialect.AnyOf(identStart, dialect.IsASCIIDigit)).
	Delimiters('`').
	Build()
