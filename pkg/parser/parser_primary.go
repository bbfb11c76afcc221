package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// parsePrefix parses an expression that does not start with an operand:
// literals, identifiers, function calls, unary operators and the
// keyword-introduced forms. A trailing COLLATE applies to any of them.
func (p *Parser) parsePrefix() (core.Expr, error) {
	expr, err := p.parsePrefixExpr()
	if err != nil {
		return nil, err
	}
	if p.parseKeyword("COLLATE") {
		collation, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		return &core.Collate{Expr: expr, Collation: collation}, nil
	}
	return expr, nil
}

func (p *Parser) parsePrefixExpr() (core.Expr, error) {
	tok := p.nextToken()
	switch tok.Type {
	case token.WORD:
		switch tok.Word.Keyword {
		case "TRUE", "FALSE", "NULL":
			p.prevToken()
			return p.parseLiteral()
		case "CASE":
			return p.parseCase()
		case "CAST":
			return p.parseCast()
		case "DATE":
			s, err := p.parseLiteralString()
			if err != nil {
				return nil, err
			}
			return &core.Literal{Value: core.Date(s)}, nil
		case "TIME":
			s, err := p.parseLiteralString()
			if err != nil {
				return nil, err
			}
			return &core.Literal{Value: core.Time(s)}, nil
		case "TIMESTAMP":
			s, err := p.parseLiteralString()
			if err != nil {
				return nil, err
			}
			return &core.Literal{Value: core.Timestamp(s)}, nil
		case "EXISTS":
			return p.parseExists()
		case "EXTRACT":
			return p.parseExtract()
		case "INTERVAL":
			return p.parseInterval()
		case "NOT":
			operand, err := p.parseSubexpr(precedenceUnaryNot)
			if err != nil {
				return nil, err
			}
			return &core.UnaryOp{Op: core.OpNot, Expr: operand}, nil
		}
		return p.parseWordExpr(tok)

	case token.STAR:
		return &core.Wildcard{}, nil

	case token.PLUS, token.MINUS:
		op := core.OpUnaryPlus
		if tok.Type == token.MINUS {
			op = core.OpUnaryMinus
		}
		operand, err := p.parseSubexpr(precedencePlusMinus)
		if err != nil {
			return nil, err
		}
		return &core.UnaryOp{Op: op, Expr: operand}, nil

	case token.NUMBER, token.STRING, token.NATIONAL_STRING, token.HEX_STRING:
		p.prevToken()
		return p.parseLiteral()

	case token.LPAREN:
		var expr core.Expr
		if p.parseKeyword("SELECT") || p.parseKeyword("WITH") {
			p.prevToken()
			query, err := p.parseQuery()
			if err != nil {
				return nil, err
			}
			expr = &core.Subquery{Query: query}
		} else {
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			expr = &core.Nested{Expr: inner}
		}
		if err := p.expectToken(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.expected("an expression", tok)
}

// parseWordExpr continues a word into an identifier, a compound identifier,
// a qualified wildcard or a function call.
func (p *Parser) parseWordExpr(first token.Token) (core.Expr, error) {
	switch p.peekToken().Type {
	case token.LPAREN, token.DOT:
	default:
		return &core.Identifier{Name: core.Ident(first.Word.String())}, nil
	}

	parts := []core.Ident{core.Ident(first.Word.String())}
	for p.consumeToken(token.DOT) {
		tok := p.nextToken()
		switch tok.Type {
		case token.WORD:
			parts = append(parts, core.Ident(tok.Word.String()))
		case token.STAR:
			return &core.QualifiedWildcard{Qualifier: parts}, nil
		default:
			return nil, p.expected("an identifier or a '*' after '.'", tok)
		}
	}
	if p.peekToken().Type == token.LPAREN {
		return p.parseFunction(core.ObjectName(parts))
	}
	return &core.CompoundIdentifier{Parts: parts}, nil
}

// parseFunction parses `name([ALL|DISTINCT] [args]) [OVER (...)]`.
func (p *Parser) parseFunction(name core.ObjectName) (core.Expr, error) {
	if err := p.expectToken(token.LPAREN); err != nil {
		return nil, err
	}
	all := p.parseKeyword("ALL")
	distinct := p.parseKeyword("DISTINCT")
	if all && distinct {
		return nil, p.errorf(p.peekToken(), errAllAndDistinct, "function: "+name.String())
	}
	args, err := p.parseOptionalArgs()
	if err != nil {
		return nil, err
	}
	fn := &core.Function{Name: name, Args: args, Distinct: distinct}
	if p.parseKeyword("OVER") {
		if fn.Over, err = p.parseWindowSpec(); err != nil {
			return nil, err
		}
	}
	return fn, nil
}

// parseCase parses `CASE [operand] WHEN c THEN r ... [ELSE r] END` after CASE.
func (p *Parser) parseCase() (core.Expr, error) {
	c := &core.Case{}
	if !p.parseKeyword("WHEN") {
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.Operand = operand
		if err := p.expectKeyword("WHEN"); err != nil {
			return nil, err
		}
	}
	for {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}
		result, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.Conditions = append(c.Conditions, cond)
		c.Results = append(c.Results, result)
		if !p.parseKeyword("WHEN") {
			break
		}
	}
	if p.parseKeyword("ELSE") {
		elseResult, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.ElseResult = elseResult
	}
	if err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return c, nil
}

// parseCast parses `(expr AS type)` after CAST.
func (p *Parser) parseCast() (core.Expr, error) {
	if err := p.expectToken(token.LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	dataType, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return &core.Cast{Expr: expr, DataType: dataType}, nil
}

// parseExists parses `(query)` after EXISTS.
func (p *Parser) parseExists() (core.Expr, error) {
	if err := p.expectToken(token.LPAREN); err != nil {
		return nil, err
	}
	query, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return &core.Exists{Subquery: query}, nil
}

// parseExtract parses `(field FROM expr)` after EXTRACT.
func (p *Parser) parseExtract() (core.Expr, error) {
	if err := p.expectToken(token.LPAREN); err != nil {
		return nil, err
	}
	field, err := p.parseDateTimeField()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return &core.Extract{Field: field, Expr: expr}, nil
}

// parseDateTimeField parses YEAR, MONTH, DAY, HOUR, MINUTE or SECOND.
func (p *Parser) parseDateTimeField() (core.DateTimeField, error) {
	tok := p.nextToken()
	if tok.Type == token.WORD {
		if f, ok := core.LookupDateTimeField(tok.Word.Keyword); ok {
			return f, nil
		}
	}
	return 0, p.expected("date/time field", tok)
}

// ---------- Literals ----------

// parseLiteral parses a literal value as an expression.
func (p *Parser) parseLiteral() (core.Expr, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &core.Literal{Value: v}, nil
}

// parseValue parses a number, string, boolean or NULL.
func (p *Parser) parseValue() (core.Value, error) {
	tok := p.nextToken()
	switch tok.Type {
	case token.WORD:
		switch tok.Word.Keyword {
		case "TRUE":
			return core.Boolean(true), nil
		case "FALSE":
			return core.Boolean(false), nil
		case "NULL":
			return core.Null{}, nil
		}
		return nil, p.errorf(tok, "No value parser for keyword %s", tok)
	case token.NUMBER:
		return p.parseNumber(tok)
	case token.STRING:
		return core.SingleQuotedString(tok.Literal), nil
	case token.NATIONAL_STRING:
		return core.NationalStringLiteral(tok.Literal), nil
	case token.HEX_STRING:
		return core.HexStringLiteral(tok.Literal), nil
	case token.EOF:
		return nil, p.errorf(tok, "Expecting a value, but found EOF")
	}
	return nil, p.errorf(tok, "Unsupported value: %s", tok)
}

// parseNumber classifies a number token. Numbers with a fractional part or
// an exponent are kept as Decimal text; the rest must fit in a uint64.
func (p *Parser) parseNumber(tok token.Token) (core.Value, error) {
	n := tok.Literal
	if strings.ContainsAny(n, ".eE") {
		if _, err := strconv.ParseFloat(n, 64); err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, p.errorf(tok, "Could not parse '%s' as decimal: %v", n, err)
		}
		return core.Decimal(n), nil
	}
	v, err := strconv.ParseUint(n, 10, 64)
	if err != nil {
		return nil, p.errorf(tok, "Could not parse '%s' as u64: %v", n, err)
	}
	return core.Long(v), nil
}

// parseLiteralUint parses an unsigned integer.
func (p *Parser) parseLiteralUint() (uint64, error) {
	tok := p.nextToken()
	if tok.Type != token.NUMBER {
		return 0, p.expected("literal int", tok)
	}
	v, err := strconv.ParseUint(tok.Literal, 10, 64)
	if err != nil {
		return 0, p.errorf(tok, "Could not parse '%s' as u64: %v", tok.Literal, err)
	}
	return v, nil
}

// parseLiteralString parses a single-quoted string.
func (p *Parser) parseLiteralString() (string, error) {
	tok := p.nextToken()
	if tok.Type != token.STRING {
		return "", p.expected("literal string", tok)
	}
	return tok.Literal, nil
}

// parseOptionalPrecision parses an optional `(n)`.
func (p *Parser) parseOptionalPrecision() (*uint64, error) {
	if !p.consumeToken(token.LPAREN) {
		return nil, nil
	}
	n, err := p.parseLiteralUint()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return &n, nil
}

// parseOptionalPrecisionScale parses an optional `(p [, s])`.
func (p *Parser) parseOptionalPrecisionScale() (precision, scale *uint64, err error) {
	if !p.consumeToken(token.LPAREN) {
		return nil, nil, nil
	}
	n, err := p.parseLiteralUint()
	if err != nil {
		return nil, nil, err
	}
	precision = &n
	if p.consumeToken(token.COMMA) {
		s, err := p.parseLiteralUint()
		if err != nil {
			return nil, nil, err
		}
		scale = &s
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, nil, err
	}
	return precision, scale, nil
}

// ---------- Identifiers ----------

// parseIdentifier parses a single, possibly quoted, identifier. Keywords
// are accepted.
func (p *Parser) parseIdentifier() (core.Ident, error) {
	tok := p.nextToken()
	if tok.Type != token.WORD {
		return "", p.expected("identifier", tok)
	}
	return core.Ident(tok.Word.String()), nil
}

// parseListOfIds parses identifiers separated by sep.
func (p *Parser) parseListOfIds(sep token.TokenType) ([]core.Ident, error) {
	var ids []core.Ident
	for {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		if !p.consumeToken(sep) {
			return ids, nil
		}
	}
}

// parseObjectName parses a dotted name such as `myschema."table"`.
func (p *Parser) parseObjectName() (core.ObjectName, error) {
	ids, err := p.parseListOfIds(token.DOT)
	if err != nil {
		return nil, err
	}
	return core.ObjectName(ids), nil
}

// parseParenthesizedColumnList parses `(a, b, ...)`. When optional is set a
// missing list yields nil.
func (p *Parser) parseParenthesizedColumnList(optional bool) ([]core.Ident, error) {
	if p.consumeToken(token.LPAREN) {
		cols, err := p.parseListOfIds(token.COMMA)
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.RPAREN); err != nil {
			return nil, err
		}
		return cols, nil
	}
	if optional {
		return nil, nil
	}
	return nil, p.expected("a list of columns in parentheses", p.peekToken())
}

// parseOptionalAlias parses `AS ident`, or a bare ident that is not one of
// the reserved keywords. A single-quoted string is accepted as an alias and
// kept with its quotes.
func (p *Parser) parseOptionalAlias(reserved []string) (core.Ident, bool, error) {
	afterAs := p.parseKeyword("AS")
	tok := p.nextToken()
	switch {
	case tok.Type == token.WORD && (afterAs || !dialect.IsReserved(tok.Word.Keyword, reserved)):
		return core.Ident(tok.Word.String()), true, nil
	case tok.Type == token.STRING:
		return core.Ident("'" + token.EscapeQuotes(tok.Literal) + "'"), true, nil
	}
	if afterAs {
		return "", false, p.expected("an identifier after AS", tok)
	}
	p.prevToken()
	return "", false, nil
}

// parseOptionalTableAlias parses an alias that may name the columns of a
// table-valued object, e.g. `AS t (a, b)`.
func (p *Parser) parseOptionalTableAlias(reserved []string) (*core.TableAlias, error) {
	name, ok, err := p.parseOptionalAlias(reserved)
	if err != nil || !ok {
		return nil, err
	}
	cols, err := p.parseParenthesizedColumnList(true)
	if err != nil {
		return nil, err
	}
	return &core.TableAlias{Name: name, Columns: cols}, nil
}
