package parser

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T, sql string) *Parser {
	t.Helper()
	tokens, err := Tokenize(generic.Generic, sql)
	require.NoError(t, err)
	return NewParser(tokens)
}

func TestPeekSkipsWhitespace(t *testing.T) {
	p := newTestParser(t, "  a /* c */ b\n c")
	assert.Equal(t, "a", p.peekToken().Word.Value)
	assert.Equal(t, "b", p.peekNthToken(1).Word.Value)
	assert.Equal(t, "c", p.peekNthToken(2).Word.Value)
	assert.Equal(t, token.EOF, p.peekNthToken(3).Type)
	assert.Equal(t, "a", p.nextToken().Word.Value, "peeking must not consume")
}

func TestNextTokenAtEOF(t *testing.T) {
	p := newTestParser(t, "ab")
	assert.Equal(t, "ab", p.nextToken().Word.Value)

	for range 3 {
		tok := p.nextToken()
		assert.Equal(t, token.EOF, tok.Type)
		assert.Equal(t, 1, tok.Pos.Line)
		assert.Equal(t, 3, tok.Pos.Column)
	}
}

func TestPrevTokenSkipsWhitespace(t *testing.T) {
	p := newTestParser(t, "a \n b")
	p.nextToken()
	p.nextToken()
	p.prevToken()
	assert.Equal(t, "b", p.nextToken().Word.Value)

	p.prevToken()
	p.prevToken()
	assert.Equal(t, "a", p.nextToken().Word.Value)
}

func TestInvariantPanics(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(p *Parser)
		wantErr string
	}{
		{
			name:    "rewind before start",
			fn:      func(p *Parser) { p.prevToken() },
			wantErr: "parser invariant violated: prevToken called at the beginning of the token stream",
		},
		{
			name:    "unknown keyword",
			fn:      func(p *Parser) { p.parseKeyword("FROBNICATE") },
			wantErr: "parser invariant violated: FROBNICATE is not a known keyword",
		},
		{
			name:    "unknown keyword in set",
			fn:      func(p *Parser) { p.parseOneOfKeywords("SELECT", "FROBNICATE") },
			wantErr: "parser invariant violated: FROBNICATE is not a known keyword",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, "SELECT 1")
			assert.PanicsWithError(t, tt.wantErr, func() { tt.fn(p) })
		})
	}
}

func TestParseKeywordsRewinds(t *testing.T) {
	p := newTestParser(t, "READ WRITE")

	assert.False(t, p.parseKeywords("READ", "ONLY"))
	assert.Equal(t, 0, p.index)

	assert.True(t, p.parseKeywords("READ", "WRITE"))
	assert.Equal(t, token.EOF, p.peekToken().Type)
}

func TestParseKeywordIgnoresQuotedWords(t *testing.T) {
	p := newTestParser(t, `"SELECT" select`)
	assert.False(t, p.parseKeyword("SELECT"))
	p.nextToken()
	assert.True(t, p.parseKeyword("SELECT"))
}

func TestOneOfKeywords(t *testing.T) {
	p := newTestParser(t, "rows x")
	assert.Equal(t, "ROWS", p.parseOneOfKeywords("ROW", "ROWS"))
	assert.Equal(t, "", p.parseOneOfKeywords("ROW", "ROWS"))

	_, err := p.expectOneOfKeywords("ROW", "ROWS")
	require.Error(t, err)
	assert.Equal(t, "sql parser error: Expected one of ROW or ROWS, found: x", err.Error())
}
