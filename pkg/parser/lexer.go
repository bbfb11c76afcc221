package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

const eof rune = -1

// Lexer tokenizes SQL input according to a dialect's identifier rules.
type Lexer struct {
	input   []rune
	pos     int // current rune offset in input
	line    int // current line number (1-based)
	col     int // current column number (1-based)
	dialect dialect.Capabilities
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(d dialect.Capabilities, input string) *Lexer {
	return &Lexer{
		input:   []rune(input),
		line:    1,
		col:     1,
		dialect: d,
	}
}

// Tokenize splits sql into tokens, whitespace and comments included. The
// result does not contain an EOF token.
func Tokenize(d dialect.Capabilities, sql string) ([]token.Token, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	l := NewLexer(d, sql)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or an EOF token at the end of input.
func (l *Lexer) NextToken() (token.Token, error) {
	start := l.currentPos()
	tok, err := l.scan()
	if err != nil {
		return token.Token{}, err
	}
	tok.Pos = start
	next := token.Advance(start, tok)
	l.line, l.col = next.Line, next.Column
	return tok, nil
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// peekChar returns the current character without advancing.
func (l *Lexer) peekChar() rune {
	return l.peekCharN(0)
}

// peekCharN returns the character n positions ahead of the current one.
func (l *Lexer) peekCharN(n int) rune {
	if l.pos+n >= len(l.input) {
		return eof
	}
	return l.input[l.pos+n]
}

// readChar consumes and returns the current character.
func (l *Lexer) readChar() rune {
	ch := l.peekChar()
	if ch != eof {
		l.pos++
	}
	return ch
}

// readWhile consumes characters while pred holds.
func (l *Lexer) readWhile(pred func(rune) bool) string {
	var sb strings.Builder
	for ch := l.peekChar(); ch != eof && pred(ch); ch = l.peekChar() {
		sb.WriteRune(ch)
		l.pos++
	}
	return sb.String()
}

func (l *Lexer) errorf(format string, args ...any) error {
	return &TokenizerError{Message: fmt.Sprintf(format, args...), Pos: l.currentPos()}
}

// unexpected reports a character that only starts multi-character operators.
func (l *Lexer) unexpected() error {
	return l.errorf("Tokenizer Error at Line: %d, Col: %d", l.line, l.col)
}

func (l *Lexer) scan() (token.Token, error) {
	ch := l.peekChar()
	switch {
	case ch == eof:
		return token.Token{Type: token.EOF}, nil
	case ch == ' ':
		l.pos++
		return whitespace(token.Space, ""), nil
	case ch == '\t':
		l.pos++
		return whitespace(token.Tab, ""), nil
	case ch == '\n':
		l.pos++
		return whitespace(token.Newline, ""), nil
	case ch == '\r':
		// \r\n is a single newline
		l.pos++
		if l.peekChar() == '\n' {
			l.pos++
		}
		return whitespace(token.Newline, ""), nil

	// N'...' and X'...' are checked before the dialect's identifier rules
	case ch == 'N':
		l.pos++
		if l.peekChar() == '\'' {
			return token.Token{Type: token.NATIONAL_STRING, Literal: l.readQuotedString()}, nil
		}
		return l.readWord(ch), nil
	case ch == 'x' || ch == 'X':
		l.pos++
		if l.peekChar() == '\'' {
			return token.Token{Type: token.HEX_STRING, Literal: l.readQuotedString()}, nil
		}
		return l.readWord(ch), nil

	case l.dialect.IsIdentifierStart(ch):
		l.pos++
		return l.readWord(ch), nil
	case ch == '\'':
		return token.Token{Type: token.STRING, Literal: l.readQuotedString()}, nil
	case l.dialect.IsDelimitedIdentifierStart(ch):
		return l.readDelimitedIdentifier()
	case isDigit(ch) || (ch == '.' && isDigit(l.peekCharN(1))):
		return token.Token{Type: token.NUMBER, Literal: l.readNumber()}, nil
	}
	return l.scanOperator(ch)
}

func (l *Lexer) scanOperator(ch rune) (token.Token, error) {
	l.pos++
	switch ch {
	case ',':
		return op(token.COMMA), nil
	case '(':
		return op(token.LPAREN), nil
	case ')':
		return op(token.RPAREN), nil
	case '+':
		return op(token.PLUS), nil
	case '*':
		return op(token.STAR), nil
	case '%':
		return op(token.PERCENT), nil
	case '=':
		return op(token.EQ), nil
	case '.':
		return op(token.DOT), nil
	case ';':
		return op(token.SEMICOLON), nil
	case '\\':
		return op(token.BACKSLASH), nil
	case '[':
		return op(token.LBRACKET), nil
	case ']':
		return op(token.RBRACKET), nil
	case '&':
		return op(token.AMPERSAND), nil
	case '{':
		return op(token.LBRACE), nil
	case '}':
		return op(token.RBRACE), nil

	case '-':
		switch l.peekChar() {
		case '-':
			l.pos++
			return whitespace(token.SingleLineComment, l.readLineComment()), nil
		case '>':
			l.pos++
			if l.peekChar() == '>' {
				l.pos++
				return op(token.DARROW), nil
			}
			return op(token.ARROW), nil
		}
		return op(token.MINUS), nil

	case '/':
		if l.peekChar() == '*' {
			l.pos++
			return l.readBlockComment()
		}
		return op(token.SLASH), nil

	case '<':
		switch l.peekChar() {
		case '=':
			l.pos++
			return op(token.LE), nil
		case '>':
			l.pos++
			return op(token.NE), nil
		case '@':
			l.pos++
			return op(token.ARROW_AT), nil
		}
		return op(token.LT), nil

	case '>':
		if l.peekChar() == '=' {
			l.pos++
			return op(token.GE), nil
		}
		return op(token.GT), nil

	case '!':
		if l.peekChar() == '=' {
			l.pos++
			return token.Token{Type: token.NE, Literal: "!="}, nil
		}
		return token.Token{}, l.unexpected()

	case ':':
		if l.peekChar() == ':' {
			l.pos++
			return op(token.DCOLON), nil
		}
		return op(token.COLON), nil

	case '#':
		switch l.peekChar() {
		case '>':
			l.pos++
			if l.peekChar() == '>' {
				l.pos++
				return op(token.HASH_DARROW), nil
			}
			return op(token.HASH_ARROW), nil
		case '-':
			l.pos++
			return op(token.HASH_MINUS), nil
		}
		return token.Token{}, l.unexpected()

	case '@':
		switch l.peekChar() {
		case '>':
			l.pos++
			return op(token.AT_ARROW), nil
		case '?':
			l.pos++
			return op(token.AT_QUESTION), nil
		case '@':
			l.pos++
			return op(token.AT_AT), nil
		}
		return token.Token{}, l.unexpected()

	case '?':
		switch l.peekChar() {
		case '|':
			l.pos++
			return op(token.QUESTION_PIPE), nil
		case '&':
			l.pos++
			return op(token.QUESTION_AMP), nil
		}
		return op(token.QUESTION), nil

	case '|':
		if l.peekChar() == '|' {
			l.pos++
			return op(token.DPIPE), nil
		}
		return token.Token{}, l.unexpected()

	case '$':
		n := l.readWhile(isDigit)
		if n == "" {
			return token.Token{}, l.errorf("parameter marker ($) was not followed by at least one digit")
		}
		return token.Token{Type: token.PARAMETER, Literal: n}, nil
	}
	return token.Token{Type: token.CHAR, Literal: string(ch)}, nil
}

// readWord reads the rest of an identifier or keyword whose first
// character has already been consumed.
func (l *Lexer) readWord(first rune) token.Token {
	value := string(first) + l.readWhile(l.dialect.IsIdentifierPart)
	var keyword string
	if upper := strings.ToUpper(value); l.dialect.IsKeyword(upper) {
		keyword = upper
	}
	return token.MakeWord(value, 0, keyword)
}

// readDelimitedIdentifier reads "quoted" (or [bracketed]) identifiers.
func (l *Lexer) readDelimitedIdentifier() (token.Token, error) {
	quote := l.readChar()
	end := token.MatchingEndQuote(quote)
	value := l.readWhile(func(ch rune) bool { return ch != end })
	if l.peekChar() != end {
		return token.Token{}, l.errorf("Expected close delimiter '%c' before EOF.", end)
	}
	l.pos++
	return token.MakeWord(value, quote, ""), nil
}

// readQuotedString reads a single-quoted string starting at the opening
// quote. A doubled quote is an escaped quote. Input ending before the
// closing quote ends the string.
func (l *Lexer) readQuotedString() string {
	var sb strings.Builder
	l.pos++ // opening quote
	for {
		ch := l.readChar()
		switch ch {
		case eof:
			return sb.String()
		case '\'':
			if l.peekChar() != '\'' {
				return sb.String()
			}
			l.pos++
		}
		sb.WriteRune(ch)
	}
}

// readNumber reads digits with at most one '.', then an optional exponent
// with an optional minus sign. The exponent marker is kept as written.
func (l *Lexer) readNumber() string {
	seenDot := false
	s := l.readWhile(func(ch rune) bool {
		if ch == '.' && !seenDot {
			seenDot = true
			return true
		}
		return isDigit(ch)
	})
	if ch := l.peekChar(); ch == 'e' || ch == 'E' {
		l.pos++
		s += string(ch)
		if l.peekChar() == '-' {
			l.pos++
			s += "-"
		}
		s += l.readWhile(isDigit)
	}
	return s
}

// readLineComment reads up to and including the next newline.
func (l *Lexer) readLineComment() string {
	text := l.readWhile(func(ch rune) bool { return ch != '\n' })
	if l.peekChar() == '\n' {
		l.pos++
		text += "\n"
	}
	return text
}

// readBlockComment reads the body of a /* */ comment after the opening
// delimiter. Comments do not nest.
func (l *Lexer) readBlockComment() (token.Token, error) {
	var sb strings.Builder
	for {
		ch := l.readChar()
		if ch == eof {
			return token.Token{}, l.errorf("Unexpected EOF while in a multi-line comment")
		}
		if ch == '*' && l.peekChar() == '/' {
			l.pos++
			return whitespace(token.MultiLineComment, sb.String()), nil
		}
		sb.WriteRune(ch)
	}
}

func op(t token.TokenType) token.Token {
	return token.Token{Type: t}
}

func whitespace(kind token.WhitespaceKind, text string) token.Token {
	return token.Token{Type: token.WHITESPACE, Space: token.Whitespace{Kind: kind, Text: text}}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
