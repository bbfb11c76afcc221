package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// TokenizerError reports malformed lexical input.
type TokenizerError struct {
	Message string
	Pos     token.Position
}

func (e *TokenizerError) Error() string {
	return e.Message
}

// ParserError reports input that does not match the grammar. A tokenizer
// failure during Parse is wrapped in a ParserError and kept as Cause.
type ParserError struct {
	Message string
	Pos     token.Position
	Cause   error
}

func (e *ParserError) Error() string {
	return "sql parser error: " + e.Message
}

// Unwrap returns the underlying tokenizer error, if any.
func (e *ParserError) Unwrap() error {
	return e.Cause
}

// InvariantError is panicked when the parser itself is inconsistent, for
// example when it rewinds past the first token. It is never returned.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "parser invariant violated: " + e.Message
}

func invariant(format string, args ...any) {
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}

// Common error messages
const (
	errExpected             = "Expected %s, found: %s"
	errUnexpectedKeyword    = "Unexpected keyword %q at the beginning of a statement"
	errNoStatementKeyword   = "Expected a keyword at the beginning of a statement, found: %s"
	errAllAndDistinct       = "Cannot specify both ALL and DISTINCT in %s"
	errCascadeAndRestrict   = "Cannot specify both CASCADE and RESTRICT in DROP"
	errUnexpectedFileFormat = "Unexpected file format: %s"
)
