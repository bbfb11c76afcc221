// Package parser turns SQL text into the AST defined in pkg/core.
//
// # Usage
//
//	stmts, err := parser.Parse(generic.Generic, "SELECT a, b FROM t")
//	if err != nil {
//	    // handle error
//	}
//
// The parser requires a dialect. Use the dialect registry to get one by
// name:
//
//	d, err := dialect.Lookup("postgres")
//	stmts, err := parser.Parse(d, sql)
//
// # Grammar Overview
//
// Statements are parsed by recursive descent. Expressions use a Pratt
// (precedence climbing) parser:
//
//	program       → statement { ';' statement } [';']
//	query         → [WITH cte_list] query_body [ORDER BY order_list]
//	                [LIMIT n|ALL] [OFFSET n ROW|ROWS] [FETCH ...]
//	query_body    → (SELECT ... | '(' query ')' | VALUES ...)
//	                {(UNION|EXCEPT|INTERSECT) [ALL] query_body}
//	select        → SELECT [ALL|DISTINCT] select_list [FROM from_list]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Parser parses a token stream into statements. A Parser is not safe for
// concurrent use; create one per input.
type Parser struct {
	tokens []token.Token
	index  int // next token to read, may run past the end

	logger          *slog.Logger
	strictIntervals bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger enables debug tracing of statement and expression parsing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStrictIntervals makes INTERVAL literals whose value does not fit the
// declared qualifier a parse error.
func WithStrictIntervals(strict bool) Option {
	return func(p *Parser) {
		p.strictIntervals = strict
	}
}

// NewParser creates a parser over tokens produced by Tokenize.
func NewParser(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens: tokens,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse tokenizes and parses sql into a list of statements. Empty input, or
// input consisting only of semicolons and whitespace, yields no statements.
func Parse(d dialect.Capabilities, sql string, opts ...Option) ([]core.Stmt, error) {
	tokens, err := Tokenize(d, sql)
	if err != nil {
		var tokErr *TokenizerError
		if errors.As(err, &tokErr) {
			return nil, &ParserError{Message: tokErr.Message, Pos: tokErr.Pos, Cause: err}
		}
		return nil, err
	}
	return NewParser(tokens, opts...).ParseStatements()
}

// ParseStatements parses statements separated by semicolons until EOF.
func (p *Parser) ParseStatements() ([]core.Stmt, error) {
	var stmts []core.Stmt
	expectingDelimiter := false
	for {
		// ignore empty statements between successive delimiters
		for p.consumeToken(token.SEMICOLON) {
			expectingDelimiter = false
		}
		if p.peekToken().Type == token.EOF {
			break
		}
		if expectingDelimiter {
			return nil, p.expected("end of statement", p.peekToken())
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		expectingDelimiter = true
	}
	return stmts, nil
}

// ParseStatement parses a single top-level statement, stopping before the
// delimiter.
func (p *Parser) ParseStatement() (core.Stmt, error) {
	tok := p.nextToken()
	p.logger.Debug("parsing statement", slog.String("token", tok.String()), slog.String("pos", tok.Pos.String()))
	switch {
	case tok.Type == token.WORD && tok.Word.Keyword != "":
		switch tok.Word.Keyword {
		case "SELECT", "WITH", "VALUES":
			p.prevToken()
			return p.parseQuery()
		case "CREATE":
			return p.parseCreate()
		case "DROP":
			return p.parseDrop()
		case "DELETE":
			return p.parseDelete()
		case "INSERT":
			return p.parseInsert()
		case "UPDATE":
			return p.parseUpdate()
		case "ALTER":
			return p.parseAlter()
		case "COPY":
			return p.parseCopy()
		case "START":
			return p.parseStartTransaction()
		case "SET":
			return p.parseSetTransaction()
		case "BEGIN":
			// BEGIN is a common alias for START TRANSACTION
			return p.parseBegin()
		case "COMMIT":
			chain, err := p.parseCommitRollbackChain()
			if err != nil {
				return nil, err
			}
			return &core.CommitStmt{Chain: chain}, nil
		case "ROLLBACK":
			chain, err := p.parseCommitRollbackChain()
			if err != nil {
				return nil, err
			}
			return &core.RollbackStmt{Chain: chain}, nil
		case "PEEK":
			name, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			return &core.PeekStmt{Name: name}, nil
		case "TAIL":
			name, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			return &core.TailStmt{Name: name}, nil
		case "SHOW":
			return p.parseShow()
		}
		return nil, p.errorf(tok, errUnexpectedKeyword, tok.String())
	case tok.Type == token.LPAREN:
		p.prevToken()
		return p.parseQuery()
	}
	return nil, p.errorf(tok, errNoStatementKeyword, tok.String())
}

// ParseExpr parses a single expression.
func (p *Parser) ParseExpr() (core.Expr, error) {
	return p.parseExpr()
}

// ---------- Token Helpers ----------

var eofToken = token.Token{Type: token.EOF}

// peekToken returns the next non-whitespace token without consuming it.
func (p *Parser) peekToken() token.Token {
	return p.peekNthToken(0)
}

// peekNthToken returns the nth (0-based) non-whitespace token ahead.
func (p *Parser) peekNthToken(n int) token.Token {
	for i := p.index; i < len(p.tokens); i++ {
		if p.tokens[i].IsWhitespace() {
			continue
		}
		if n == 0 {
			return p.tokens[i]
		}
		n--
	}
	return p.eof()
}

// nextToken consumes and returns the next non-whitespace token. It is safe
// to call repeatedly at EOF.
func (p *Parser) nextToken() token.Token {
	for {
		p.index++
		if p.index-1 >= len(p.tokens) {
			return p.eof()
		}
		if tok := p.tokens[p.index-1]; !tok.IsWhitespace() {
			return tok
		}
	}
}

// nextTokenNoSkip consumes and returns the next token, whitespace included.
func (p *Parser) nextTokenNoSkip() token.Token {
	p.index++
	if p.index-1 >= len(p.tokens) {
		return p.eof()
	}
	return p.tokens[p.index-1]
}

// prevToken steps back over the last non-whitespace token consumed. It
// must only follow nextToken.
func (p *Parser) prevToken() {
	for {
		if p.index <= 0 {
			invariant("prevToken called at the beginning of the token stream")
		}
		p.index--
		if p.index < len(p.tokens) && p.tokens[p.index].IsWhitespace() {
			continue
		}
		return
	}
}

// eof returns an EOF token positioned after the last token.
func (p *Parser) eof() token.Token {
	tok := eofToken
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		tok.Pos = token.Advance(last.Pos, last)
	}
	return tok
}

// consumeToken consumes the next token if it has type t.
func (p *Parser) consumeToken(t token.TokenType) bool {
	if p.peekToken().Type == t {
		p.nextToken()
		return true
	}
	return false
}

// expectToken consumes a token of type t or fails.
func (p *Parser) expectToken(t token.TokenType) error {
	if p.consumeToken(t) {
		return nil
	}
	return p.expected(t.String(), p.peekToken())
}

// parseKeyword consumes the next token if it is the keyword kw. kw must be
// a known keyword.
func (p *Parser) parseKeyword(kw string) bool {
	if !dialect.IsKeyword(kw) {
		invariant("%s is not a known keyword", kw)
	}
	tok := p.peekToken()
	if tok.Type == token.WORD && tok.Word.Keyword != "" && strings.EqualFold(tok.Word.Keyword, kw) {
		p.nextToken()
		return true
	}
	return false
}

// parseKeywords consumes a sequence of keywords, or nothing if any of them
// is missing.
func (p *Parser) parseKeywords(kws ...string) bool {
	index := p.index
	for _, kw := range kws {
		if !p.parseKeyword(kw) {
			p.index = index
			return false
		}
	}
	return true
}

// parseOneOfKeywords consumes and returns whichever of kws comes next, or
// returns "" without consuming anything.
func (p *Parser) parseOneOfKeywords(kws ...string) string {
	for _, kw := range kws {
		if !dialect.IsKeyword(kw) {
			invariant("%s is not a known keyword", kw)
		}
	}
	tok := p.peekToken()
	if tok.Type != token.WORD || tok.Word.Keyword == "" {
		return ""
	}
	for _, kw := range kws {
		if strings.EqualFold(tok.Word.Keyword, kw) {
			p.nextToken()
			return kw
		}
	}
	return ""
}

// expectOneOfKeywords is parseOneOfKeywords that fails on a miss.
func (p *Parser) expectOneOfKeywords(kws ...string) (string, error) {
	if kw := p.parseOneOfKeywords(kws...); kw != "" {
		return kw, nil
	}
	return "", p.expected("one of "+strings.Join(kws, " or "), p.peekToken())
}

// expectKeyword consumes the keyword kw or fails.
func (p *Parser) expectKeyword(kw string) error {
	if p.parseKeyword(kw) {
		return nil
	}
	return p.expected(kw, p.peekToken())
}

// ---------- Errors ----------

// expected reports that what was expected but found was seen instead.
func (p *Parser) expected(what string, found token.Token) error {
	return p.errorf(found, errExpected, what, found.String())
}

func (p *Parser) errorf(at token.Token, format string, args ...any) error {
	return &ParserError{Message: fmt.Sprintf(format, args...), Pos: at.Pos}
}
