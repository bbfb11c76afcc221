package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Set operator precedence. UNION and EXCEPT associate left to right;
// INTERSECT binds tighter.
const (
	precedenceUnion     = 10
	precedenceIntersect = 20
)

// parseQuery parses a query expression. Unlike most parse methods it
// expects the leading keyword (WITH, SELECT, VALUES or '(') not to be
// consumed yet.
//
//	query → [WITH cte_list] query_body [ORDER BY order_list]
//	        [LIMIT n|ALL] [OFFSET n ROW|ROWS] [FETCH ...]
func (p *Parser) parseQuery() (*core.Query, error) {
	q := &core.Query{}
	var err error
	if p.parseKeyword("WITH") {
		if q.CTEs, err = p.parseCTEList(); err != nil {
			return nil, err
		}
	}
	if q.Body, err = p.parseQueryBody(0); err != nil {
		return nil, err
	}
	if p.parseKeywords("ORDER", "BY") {
		if q.OrderBy, err = p.parseOrderByList(); err != nil {
			return nil, err
		}
	}
	if p.parseKeyword("LIMIT") {
		if q.Limit, err = p.parseLimit(); err != nil {
			return nil, err
		}
	}
	if p.parseKeyword("OFFSET") {
		if q.Offset, err = p.parseOffset(); err != nil {
			return nil, err
		}
	}
	if p.parseKeyword("FETCH") {
		if q.Fetch, err = p.parseFetch(); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// parseCTEList parses `alias [(cols)] AS (query), ...` after WITH.
func (p *Parser) parseCTEList() ([]*core.CTE, error) {
	var ctes []*core.CTE
	for {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		cols, err := p.parseParenthesizedColumnList(true)
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("AS"); err != nil {
			return nil, err
		}
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
		ctes = append(ctes, &core.CTE{Alias: core.TableAlias{Name: name, Columns: cols}, Query: query})
		if !p.consumeToken(token.COMMA) {
			return ctes, nil
		}
	}
}

// parseQueryBody parses a SELECT, a parenthesized query or VALUES, then
// climbs set operators that bind tighter than precedence.
func (p *Parser) parseQueryBody(precedence int) (core.SetExpr, error) {
	var body core.SetExpr
	switch {
	case p.parseKeyword("SELECT"):
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		body = sel
	case p.consumeToken(token.LPAREN):
		// CTEs are accepted here even though they are not standard
		query, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.RPAREN); err != nil {
			return nil, err
		}
		body = &core.SetQuery{Query: query}
	case p.parseKeyword("VALUES"):
		values, err := p.parseValues()
		if err != nil {
			return nil, err
		}
		body = values
	default:
		return nil, p.expected("SELECT, VALUES, or a subquery in the query body", p.peekToken())
	}

	for {
		op, ok := setOperator(p.peekToken())
		if !ok {
			return body, nil
		}
		next := precedenceUnion
		if op == core.Intersect {
			next = precedenceIntersect
		}
		if precedence >= next {
			return body, nil
		}
		p.nextToken()
		all := p.parseKeyword("ALL")
		right, err := p.parseQueryBody(next)
		if err != nil {
			return nil, err
		}
		body = &core.SetOperation{Op: op, All: all, Left: body, Right: right}
	}
}

func setOperator(tok token.Token) (core.SetOperator, bool) {
	switch tok.Word.Keyword {
	case "UNION":
		return core.Union, true
	case "EXCEPT":
		return core.Except, true
	case "INTERSECT":
		return core.Intersect, true
	}
	return 0, false
}

// parseSelect parses a SELECT without CTEs, set operations or ORDER BY,
// after the SELECT keyword.
//
//	select → [ALL|DISTINCT] select_list [FROM from_list] [WHERE expr]
//	         [GROUP BY expr_list] [HAVING expr]
func (p *Parser) parseSelect() (*core.Select, error) {
	all := p.parseKeyword("ALL")
	distinct := p.parseKeyword("DISTINCT")
	if all && distinct {
		return nil, p.errorf(p.peekToken(), errAllAndDistinct, "SELECT")
	}
	sel := &core.Select{Distinct: distinct}
	var err error
	if sel.Projection, err = p.parseSelectList(); err != nil {
		return nil, err
	}

	// Keywords that end the projection or a FROM item must be listed in
	// dialect.ReservedForColumnAlias / ReservedForTableAlias, or they will
	// be taken as aliases.
	if p.parseKeyword("FROM") {
		for {
			twj, err := p.parseTableAndJoins()
			if err != nil {
				return nil, err
			}
			sel.From = append(sel.From, twj)
			if !p.consumeToken(token.COMMA) {
				break
			}
		}
	}
	if p.parseKeyword("WHERE") {
		if sel.Selection, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if p.parseKeywords("GROUP", "BY") {
		if sel.GroupBy, err = p.parseExprList(); err != nil {
			return nil, err
		}
	}
	if p.parseKeyword("HAVING") {
		if sel.Having, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	return sel, nil
}

// parseSelectList parses the comma-separated projection.
func (p *Parser) parseSelectList() ([]core.SelectItem, error) {
	var items []core.SelectItem
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		switch e := expr.(type) {
		case *core.Wildcard:
			items = append(items, &core.SelectWildcard{})
		case *core.QualifiedWildcard:
			items = append(items, &core.SelectQualifiedWildcard{Prefix: core.ObjectName(e.Qualifier)})
		default:
			alias, ok, err := p.parseOptionalAlias(dialect.ReservedForColumnAlias)
			if err != nil {
				return nil, err
			}
			if ok {
				items = append(items, &core.ExprWithAlias{Expr: expr, Alias: alias})
			} else {
				items = append(items, &core.UnnamedExpr{Expr: expr})
			}
		}
		if !p.consumeToken(token.COMMA) {
			return items, nil
		}
	}
}

// parseOrderByList parses `expr [ASC|DESC], ...`.
func (p *Parser) parseOrderByList() ([]*core.OrderByExpr, error) {
	var list []*core.OrderByExpr
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		item := &core.OrderByExpr{Expr: expr}
		switch {
		case p.parseKeyword("ASC"):
			asc := true
			item.Asc = &asc
		case p.parseKeyword("DESC"):
			asc := false
			item.Asc = &asc
		}
		list = append(list, item)
		if !p.consumeToken(token.COMMA) {
			return list, nil
		}
	}
}

// parseLimit parses `n | ALL` after LIMIT. LIMIT ALL yields nil.
func (p *Parser) parseLimit() (core.Expr, error) {
	if p.parseKeyword("ALL") {
		return nil, nil
	}
	n, err := p.parseLiteralUint()
	if err != nil {
		return nil, err
	}
	return &core.Literal{Value: core.Long(n)}, nil
}

// parseOffset parses `n ROW|ROWS` after OFFSET.
func (p *Parser) parseOffset() (core.Expr, error) {
	n, err := p.parseLiteralUint()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOneOfKeywords("ROW", "ROWS"); err != nil {
		return nil, err
	}
	return &core.Literal{Value: core.Long(n)}, nil
}

// parseFetch parses
//
//	FIRST|NEXT [quantity [PERCENT]] ROW|ROWS ONLY|WITH TIES
//
// after FETCH.
func (p *Parser) parseFetch() (*core.Fetch, error) {
	if _, err := p.expectOneOfKeywords("FIRST", "NEXT"); err != nil {
		return nil, err
	}
	fetch := &core.Fetch{}
	if p.parseOneOfKeywords("ROW", "ROWS") == "" {
		quantity, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		fetch.Quantity = quantity
		fetch.Percent = p.parseKeyword("PERCENT")
		if _, err := p.expectOneOfKeywords("ROW", "ROWS"); err != nil {
			return nil, err
		}
	}
	switch {
	case p.parseKeyword("ONLY"):
	case p.parseKeywords("WITH", "TIES"):
		fetch.WithTies = true
	default:
		return nil, p.expected("one of ONLY or WITH TIES", p.peekToken())
	}
	return fetch, nil
}

// parseValues parses `(exprs), (exprs), ...` after VALUES.
func (p *Parser) parseValues() (*core.Values, error) {
	values := &core.Values{}
	for {
		if err := p.expectToken(token.LPAREN); err != nil {
			return nil, err
		}
		row, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.RPAREN); err != nil {
			return nil, err
		}
		values.Rows = append(values.Rows, row)
		if !p.consumeToken(token.COMMA) {
			return values, nil
		}
	}
}
