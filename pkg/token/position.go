package token

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is the location of a token in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based rune offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String formats the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a range in the source text.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Advance returns the line and column following tok when tok starts at p.
// A newline moves to the next line and a tab counts as four columns.
// Other tokens advance by the width of their text. Offset is left
// unchanged; the lexer tracks it from the source cursor.
func Advance(p Position, tok Token) Position {
	next := p
	switch tok.Type {
	case WHITESPACE:
		switch tok.Space.Kind {
		case Newline:
			next.Line++
			next.Column = 1
			return next
		case Tab:
			next.Column += 4
			return next
		case Space:
			next.Column++
			return next
		}
		// comments move past any newlines they contain
		text := tok.Space.String()
		if n := strings.Count(text, "\n"); n > 0 {
			next.Line += n
			next.Column = utf8.RuneCountInString(text[strings.LastIndex(text, "\n")+1:]) + 1
			return next
		}
		next.Column += utf8.RuneCountInString(text)
	default:
		// the canonical text of a non-whitespace token has its source width
		next.Column += utf8.RuneCountInString(tok.String())
	}
	return next
}
