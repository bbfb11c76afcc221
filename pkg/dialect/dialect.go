// Package dialect provides the lexical capabilities of SQL dialects.
//
// The tokenizer and parser hard-code no dialect rules: they consult a
// Capabilities value for identifier characters, delimited identifier
// quotes and keyword membership. Concrete dialects are built with
// NewDialect and registered from pkg/dialects/*/ packages.
package dialect

import (
	"strings"
	"unicode"
)

// Capabilities is the contract the tokenizer and parser depend on.
type Capabilities interface {
	// Name returns the dialect name.
	Name() string
	// IsIdentifierStart reports whether ch can begin an unquoted identifier.
	IsIdentifierStart(ch rune) bool
	// IsIdentifierPart reports whether ch can continue an unquoted identifier.
	IsIdentifierPart(ch rune) bool
	// IsDelimitedIdentifierStart reports whether ch opens a delimited identifier.
	IsDelimitedIdentifierStart(ch rune) bool
	// IsKeyword reports whether the uppercased word is a keyword.
	IsKeyword(upper string) bool
}

// RuneClass classifies a single character.
type RuneClass func(ch rune) bool

// Dialect is an immutable dialect configuration. It is safe to share
// across goroutines once built.
type Dialect struct {
	name            string
	identStart      RuneClass
	identPart       RuneClass
	delimiters      []rune
	extraKeywords   map[string]struct{}
	disableKeywords map[string]struct{}
}

var _ Capabilities = (*Dialect)(nil)

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return d.name
}

// IsIdentifierStart reports whether ch can begin an unquoted identifier.
func (d *Dialect) IsIdentifierStart(ch rune) bool {
	return d.identStart(ch)
}

// IsIdentifierPart reports whether ch can continue an unquoted identifier.
func (d *Dialect) IsIdentifierPart(ch rune) bool {
	return d.identPart(ch)
}

// IsDelimitedIdentifierStart reports whether ch opens a delimited identifier.
func (d *Dialect) IsDelimitedIdentifierStart(ch rune) bool {
	for _, q := range d.delimiters {
		if q == ch {
			return true
		}
	}
	return false
}

// Delimiters returns the opening delimiters of delimited identifiers.
func (d *Dialect) Delimiters() []rune {
	out := make([]rune, len(d.delimiters))
	copy(out, d.delimiters)
	return out
}

// IsKeyword reports whether the uppercased word is a keyword in this dialect.
func (d *Dialect) IsKeyword(upper string) bool {
	if _, ok := d.disableKeywords[upper]; ok {
		return false
	}
	if _, ok := d.extraKeywords[upper]; ok {
		return true
	}
	return IsKeyword(upper)
}

// QuoteIdentifier quotes an identifier using the dialect's first delimiter.
func (d *Dialect) QuoteIdentifier(name string) string {
	if len(d.delimiters) == 0 {
		return name
	}
	open := d.delimiters[0]
	closing := open
	if open == '[' {
		closing = ']'
	}
	return string(open) + name + string(closing)
}

// Builder assembles a Dialect.
type Builder struct {
	d *Dialect
}

// NewDialect starts building a dialect with ANSI identifier rules and a
// double-quote delimiter.
func NewDialect(name string) *Builder {
	return &Builder{d: &Dialect{
		name:            name,
		identStart:      IsASCIILetter,
		identPart:       AnyOf(IsASCIILetter, IsASCIIDigit, Runes('_')),
		delimiters:      []rune{'"'},
		extraKeywords:   make(map[string]struct{}),
		disableKeywords: make(map[string]struct{}),
	}}
}

// IdentifierStart sets the class of identifier start characters.
func (b *Builder) IdentifierStart(fn RuneClass) *Builder {
	b.d.identStart = fn
	return b
}

// IdentifierPart sets the class of identifier continuation characters.
func (b *Builder) IdentifierPart(fn RuneClass) *Builder {
	b.d.identPart = fn
	return b
}

// Delimiters sets the opening delimiters of delimited identifiers.
func (b *Builder) Delimiters(quotes ...rune) *Builder {
	b.d.delimiters = append([]rune(nil), quotes...)
	return b
}

// Keywords adds dialect-specific keywords.
func (b *Builder) Keywords(words ...string) *Builder {
	for _, w := range words {
		b.d.extraKeywords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// Unreserve removes words from the shared keyword set for this dialect.
func (b *Builder) Unreserve(words ...string) *Builder {
	for _, w := range words {
		b.d.disableKeywords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// Build returns the finished dialect.
func (b *Builder) Build() *Dialect {
	return b.d
}

// ---------- Character classes ----------

// IsASCIILetter matches a-z and A-Z.
func IsASCIILetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// IsASCIIDigit matches 0-9.
func IsASCIIDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// IsAlphabetic matches any Unicode letter.
func IsAlphabetic(ch rune) bool {
	return unicode.IsLetter(ch)
}

// IsAlphanumeric matches any Unicode letter or digit.
func IsAlphanumeric(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Runes matches exactly the listed characters.
func Runes(set ...rune) RuneClass {
	return func(ch rune) bool {
		for _, r := range set {
			if r == ch {
				return true
			}
		}
		return false
	}
}

// Between matches characters in the inclusive range [lo, hi].
func Between(lo, hi rune) RuneClass {
	return func(ch rune) bool {
		return ch >= lo && ch <= hi
	}
}

// AnyOf matches when any of the classes matches.
func AnyOf(classes ...RuneClass) RuneClass {
	return func(ch rune) bool {
		for _, c := range classes {
			if c(ch) {
				return true
			}
		}
		return false
	}
}
