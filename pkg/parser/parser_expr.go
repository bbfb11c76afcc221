package parser

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Operator precedence levels (higher binds tighter).
const (
	precedenceNone      = 0
	precedenceOr        = 5
	precedenceAnd       = 10
	precedenceUnaryNot  = 15
	precedenceIs        = 17
	precedenceBetween   = 20 // also IN, LIKE and comparisons
	precedencePlusMinus = 30
	precedenceMulDiv    = 40
	precedenceCast      = 50
)

// parseExpr parses an expression.
func (p *Parser) parseExpr() (core.Expr, error) {
	return p.parseSubexpr(precedenceNone)
}

// parseSubexpr parses operators that bind tighter than precedence.
func (p *Parser) parseSubexpr(precedence int) (core.Expr, error) {
	expr, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	// String walks the whole subtree; skip it unless debug is on
	debug := p.logger.Enabled(context.Background(), slog.LevelDebug)
	if debug {
		p.logger.Debug("parsed prefix", slog.String("expr", expr.String()))
	}
	for {
		next := p.nextPrecedence()
		if precedence >= next {
			return expr, nil
		}
		if debug {
			p.logger.Debug("parsing infix", slog.String("token", p.peekToken().String()), slog.Int("precedence", next))
		}
		expr, err = p.parseInfix(expr, next)
		if err != nil {
			return nil, err
		}
	}
}

// nextPrecedence returns the binding power of the next token as an infix
// operator, or 0 if it cannot continue an expression.
func (p *Parser) nextPrecedence() int {
	tok := p.peekToken()
	switch tok.Type {
	case token.WORD:
		switch tok.Word.Keyword {
		case "OR":
			return precedenceOr
		case "AND":
			return precedenceAnd
		case "NOT":
			// NOT takes the precedence of the operator it negates
			switch p.peekNthToken(1).Word.Keyword {
			case "IN", "BETWEEN", "LIKE":
				return precedenceBetween
			}
			return precedenceNone
		case "IS":
			return precedenceIs
		case "IN", "BETWEEN", "LIKE":
			return precedenceBetween
		}
	case token.EQ, token.LT, token.LE, token.NE, token.GT, token.GE:
		return precedenceBetween
	case token.PLUS, token.MINUS:
		return precedencePlusMinus
	case token.STAR, token.SLASH, token.PERCENT:
		return precedenceMulDiv
	case token.DCOLON:
		return precedenceCast
	}
	return precedenceNone
}

var binaryOperators = map[token.TokenType]core.BinaryOperator{
	token.EQ:      core.OpEq,
	token.NE:      core.OpNotEq,
	token.GT:      core.OpGt,
	token.GE:      core.OpGtEq,
	token.LT:      core.OpLt,
	token.LE:      core.OpLtEq,
	token.PLUS:    core.OpPlus,
	token.MINUS:   core.OpMinus,
	token.STAR:    core.OpMultiply,
	token.PERCENT: core.OpModulus,
	token.SLASH:   core.OpDivide,
}

var binaryKeywordOperators = map[string]core.BinaryOperator{
	"AND":  core.OpAnd,
	"OR":   core.OpOr,
	"LIKE": core.OpLike,
}

// parseInfix parses the operator following expr.
func (p *Parser) parseInfix(expr core.Expr, precedence int) (core.Expr, error) {
	tok := p.nextToken()

	op, isBinary := binaryOperators[tok.Type]
	if tok.Type == token.WORD {
		op, isBinary = binaryKeywordOperators[tok.Word.Keyword]
		if tok.Word.Keyword == "NOT" && p.parseKeyword("LIKE") {
			op, isBinary = core.OpNotLike, true
		}
	}
	if isBinary {
		right, err := p.parseSubexpr(precedence)
		if err != nil {
			return nil, err
		}
		return &core.BinaryOp{Left: expr, Op: op, Right: right}, nil
	}

	switch {
	case tok.Type == token.WORD && tok.Word.Keyword == "IS":
		if p.parseKeyword("NULL") {
			return &core.IsNull{Expr: expr}, nil
		}
		if p.parseKeywords("NOT", "NULL") {
			return &core.IsNotNull{Expr: expr}, nil
		}
		return nil, p.expected("NULL or NOT NULL after IS", p.peekToken())
	case tok.Type == token.WORD && (tok.Word.Keyword == "NOT" || tok.Word.Keyword == "IN" || tok.Word.Keyword == "BETWEEN"):
		p.prevToken()
		negated := p.parseKeyword("NOT")
		if p.parseKeyword("IN") {
			return p.parseIn(expr, negated)
		}
		if p.parseKeyword("BETWEEN") {
			return p.parseBetween(expr, negated)
		}
		return nil, p.expected("IN or BETWEEN after NOT", p.peekToken())
	case tok.Type == token.DCOLON:
		dataType, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		return &core.Cast{Expr: expr, DataType: dataType}, nil
	}
	// nextPrecedence and parseInfix disagree
	invariant("no infix parser for token %s", tok)
	return nil, nil
}

// parseIn parses the parenthesized list or subquery after [NOT] IN.
func (p *Parser) parseIn(expr core.Expr, negated bool) (core.Expr, error) {
	if err := p.expectToken(token.LPAREN); err != nil {
		return nil, err
	}
	var result core.Expr
	if p.parseKeyword("SELECT") || p.parseKeyword("WITH") {
		p.prevToken()
		query, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		result = &core.InSubquery{Expr: expr, Subquery: query, Negated: negated}
	} else {
		list, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		result = &core.InList{Expr: expr, List: list, Negated: negated}
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return result, nil
}

// parseBetween parses `low AND high` after [NOT] BETWEEN. The bounds stop
// at operators weaker than BETWEEN, so the AND is not consumed as a
// conjunction.
func (p *Parser) parseBetween(expr core.Expr, negated bool) (core.Expr, error) {
	low, err := p.parseSubexpr(precedenceBetween)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AND"); err != nil {
		return nil, err
	}
	high, err := p.parseSubexpr(precedenceBetween)
	if err != nil {
		return nil, err
	}
	return &core.Between{Expr: expr, Negated: negated, Low: low, High: high}, nil
}

// parseExprList parses a comma-separated list of expressions.
func (p *Parser) parseExprList() ([]core.Expr, error) {
	var list []core.Expr
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if !p.consumeToken(token.COMMA) {
			return list, nil
		}
	}
}

// parseOptionalArgs parses `[expr, ...] )` after an opening parenthesis.
func (p *Parser) parseOptionalArgs() ([]core.Expr, error) {
	if p.consumeToken(token.RPAREN) {
		return nil, nil
	}
	args, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}
