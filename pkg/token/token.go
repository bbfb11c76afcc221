// Package token defines the lexical tokens produced by the SQL tokenizer.
//
// A Token is a tagged variant: Type selects the variant and the remaining
// fields carry its payload. Words carry a Word, whitespace and comments carry
// a Whitespace, and literal tokens carry their text in Literal.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota

	// Words and literals
	WORD            // identifier or keyword
	NUMBER          // 123, 4.5, 1e10
	CHAR            // unrecognized single character
	STRING          // 'abc'
	NATIONAL_STRING // N'abc'
	HEX_STRING      // X'deadbeef'
	PARAMETER       // $1
	WHITESPACE      // space, tab, newline, comment

	// Punctuation and operators
	COMMA     // ,
	EQ        // =
	NE        // <> or !=
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	LPAREN    // (
	RPAREN    // )
	DOT       // .
	COLON     // :
	DCOLON    // ::
	SEMICOLON // ;
	BACKSLASH // \
	LBRACKET  // [
	RBRACKET  // ]
	AMPERSAND // &
	LBRACE    // {
	RBRACE    // }

	// JSON operators
	ARROW         // ->
	DARROW        // ->>
	HASH_ARROW    // #>
	HASH_DARROW   // #>>
	AT_ARROW      // @>
	ARROW_AT      // <@
	QUESTION      // ?
	QUESTION_PIPE // ?|
	QUESTION_AMP  // ?&
	DPIPE         // ||
	HASH_MINUS    // #-
	AT_QUESTION   // @?
	AT_AT         // @@
)

// String returns the name of the token type. Punctuation and operators
// are named by their SQL text.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// IsOperator reports whether the type is fixed-text punctuation or an operator.
func (t TokenType) IsOperator() bool {
	return t >= COMMA && t <= AT_AT
}

var tokenNames = map[TokenType]string{
	EOF: "EOF",

	WORD:            "WORD",
	NUMBER:          "NUMBER",
	CHAR:            "CHAR",
	STRING:          "STRING",
	NATIONAL_STRING: "NATIONAL_STRING",
	HEX_STRING:      "HEX_STRING",
	PARAMETER:       "PARAMETER",
	WHITESPACE:      "WHITESPACE",

	COMMA:     ",",
	EQ:        "=",
	NE:        "<>",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	LPAREN:    "(",
	RPAREN:    ")",
	DOT:       ".",
	COLON:     ":",
	DCOLON:    "::",
	SEMICOLON: ";",
	BACKSLASH: "\\",
	LBRACKET:  "[",
	RBRACKET:  "]",
	AMPERSAND: "&",
	LBRACE:    "{",
	RBRACE:    "}",

	ARROW:         "->",
	DARROW:        "->>",
	HASH_ARROW:    "#>",
	HASH_DARROW:   "#>>",
	AT_ARROW:      "@>",
	ARROW_AT:      "<@",
	QUESTION:      "?",
	QUESTION_PIPE: "?|",
	QUESTION_AMP:  "?&",
	DPIPE:         "||",
	HASH_MINUS:    "#-",
	AT_QUESTION:   "@?",
	AT_AT:         "@@",
}

// WhitespaceKind distinguishes the whitespace variants.
type WhitespaceKind int

// Whitespace kinds.
const (
	Space WhitespaceKind = iota
	Newline
	Tab
	SingleLineComment
	MultiLineComment
)

// Whitespace is the payload of a WHITESPACE token.
type Whitespace struct {
	Kind WhitespaceKind
	Text string // comment body without delimiters
}

// String returns the whitespace as it appears in source.
func (w Whitespace) String() string {
	switch w.Kind {
	case Space:
		return " "
	case Newline:
		return "\n"
	case Tab:
		return "\t"
	case SingleLineComment:
		return "--" + w.Text
	case MultiLineComment:
		return "/*" + w.Text + "*/"
	}
	return ""
}

// Word is an identifier or keyword.
type Word struct {
	// Value is the identifier text without delimiters.
	Value string
	// QuoteStyle is the opening delimiter of a delimited identifier, or 0.
	QuoteStyle rune
	// Keyword is the uppercased value when the word is an unquoted keyword,
	// otherwise "".
	Keyword string
}

// String returns the word wrapped in its delimiters.
func (w Word) String() string {
	if w.QuoteStyle == 0 {
		return w.Value
	}
	return string(w.QuoteStyle) + w.Value + string(MatchingEndQuote(w.QuoteStyle))
}

// MatchingEndQuote returns the closing delimiter paired with an opening one.
func MatchingEndQuote(ch rune) rune {
	if ch == '[' {
		return ']'
	}
	return ch
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string     // NUMBER, CHAR, string literals, PARAMETER digits and alternate operator spellings
	Word    Word       // WORD payload
	Space   Whitespace // WHITESPACE payload
	Pos     Position
}

// MakeWord builds a WORD token. keyword is the uppercased value when the
// word is an unquoted keyword; it is discarded for quoted words.
func MakeWord(value string, quote rune, keyword string) Token {
	if quote != 0 {
		keyword = ""
	}
	return Token{Type: WORD, Word: Word{Value: value, QuoteStyle: quote, Keyword: keyword}}
}

// IsKeyword reports whether the token is the unquoted keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Type == WORD && t.Word.Keyword != "" && t.Word.Keyword == kw
}

// IsWhitespace reports whether the token is whitespace or a comment.
func (t Token) IsWhitespace() bool {
	return t.Type == WHITESPACE
}

// String returns the canonical SQL text of the token.
func (t Token) String() string {
	switch t.Type {
	case WORD:
		return t.Word.String()
	case NUMBER, CHAR:
		return t.Literal
	case STRING:
		return "'" + EscapeQuotes(t.Literal) + "'"
	case NATIONAL_STRING:
		return "N'" + EscapeQuotes(t.Literal) + "'"
	case HEX_STRING:
		return "X'" + t.Literal + "'"
	case PARAMETER:
		return "$" + t.Literal
	case WHITESPACE:
		return t.Space.String()
	}
	// alternate spellings such as != keep their source text
	if t.Literal != "" {
		return t.Literal
	}
	return t.Type.String()
}

// EscapeQuotes doubles every single quote in s.
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
