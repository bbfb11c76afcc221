package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// FROM clause parsing: table references, derived tables, nested joins, JOINs.
//
// Grammar:
//
//	table_and_joins → table_factor (join)*
//	table_factor    → object_name ['(' args ')'] [alias] [WITH '(' hints ')']
//	                | [LATERAL] '(' query ')' [alias]
//	                | '(' table_and_joins ')'
//	join            → CROSS JOIN table_factor | CROSS APPLY table_factor
//	                | OUTER APPLY table_factor
//	                | [NATURAL] join_type table_factor [join_constraint]
//	join_type       → [INNER] JOIN | (LEFT|RIGHT|FULL) [OUTER] JOIN
//	join_constraint → ON expr | USING '(' columns ')'

// parseTableAndJoins parses a relation followed by any number of joins.
func (p *Parser) parseTableAndJoins() (*core.TableWithJoins, error) {
	relation, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	twj := &core.TableWithJoins{Relation: relation}
	for {
		join, ok, err := p.parseJoin()
		if err != nil {
			return nil, err
		}
		if !ok {
			return twj, nil
		}
		twj.Joins = append(twj.Joins, join)
	}
}

// parseJoin parses one join, reporting false when the next tokens do not
// start a join.
func (p *Parser) parseJoin() (*core.Join, bool, error) {
	switch {
	case p.parseKeyword("CROSS"):
		var kind core.JoinKind
		switch {
		case p.parseKeyword("JOIN"):
			kind = core.JoinCross
		case p.parseKeyword("APPLY"):
			kind = core.JoinCrossApply
		default:
			return nil, false, p.expected("JOIN or APPLY after CROSS", p.peekToken())
		}
		relation, err := p.parseTableFactor()
		if err != nil {
			return nil, false, err
		}
		return &core.Join{Relation: relation, Kind: kind}, true, nil

	case p.parseKeywords("OUTER", "APPLY"):
		relation, err := p.parseTableFactor()
		if err != nil {
			return nil, false, err
		}
		return &core.Join{Relation: relation, Kind: core.JoinOuterApply}, true, nil
	}

	natural := p.parseKeyword("NATURAL")
	var kind core.JoinKind
	switch p.peekToken().Word.Keyword {
	case "INNER", "JOIN":
		_ = p.parseKeyword("INNER")
		if err := p.expectKeyword("JOIN"); err != nil {
			return nil, false, err
		}
		kind = core.JoinInner
	case "LEFT", "RIGHT", "FULL":
		switch p.nextToken().Word.Keyword {
		case "LEFT":
			kind = core.JoinLeftOuter
		case "RIGHT":
			kind = core.JoinRightOuter
		default:
			kind = core.JoinFullOuter
		}
		_ = p.parseKeyword("OUTER")
		if err := p.expectKeyword("JOIN"); err != nil {
			return nil, false, err
		}
	case "OUTER":
		return nil, false, p.expected("LEFT, RIGHT, or FULL", p.peekToken())
	default:
		if natural {
			return nil, false, p.expected("a join type after NATURAL", p.peekToken())
		}
		return nil, false, nil
	}

	relation, err := p.parseTableFactor()
	if err != nil {
		return nil, false, err
	}
	constraint, err := p.parseJoinConstraint(natural)
	if err != nil {
		return nil, false, err
	}
	return &core.Join{Relation: relation, Kind: kind, Constraint: constraint}, true, nil
}

// parseJoinConstraint parses the ON or USING clause of a qualified join.
func (p *Parser) parseJoinConstraint(natural bool) (core.JoinConstraint, error) {
	switch {
	case natural:
		return &core.NaturalJoin{}, nil
	case p.parseKeyword("ON"):
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &core.JoinOn{Expr: expr}, nil
	case p.parseKeyword("USING"):
		cols, err := p.parseParenthesizedColumnList(false)
		if err != nil {
			return nil, err
		}
		return &core.JoinUsing{Columns: cols}, nil
	}
	return nil, p.expected("ON, or USING after JOIN", p.peekToken())
}

// parseTableFactor parses a table name, a derived table or a parenthesized
// join.
func (p *Parser) parseTableFactor() (core.TableFactor, error) {
	if p.parseKeyword("LATERAL") {
		// LATERAL applies only to derived tables
		if err := p.expectToken(token.LPAREN); err != nil {
			return nil, err
		}
		return p.parseDerivedTableFactor(true)
	}

	if p.consumeToken(token.LPAREN) {
		// `(` may open a derived table or a nested join. Try the derived
		// table first and rewind on failure.
		index := p.index
		if derived, err := p.parseDerivedTableFactor(false); err == nil {
			return derived, nil
		}
		p.index = index

		twj, err := p.parseTableAndJoins()
		if err != nil {
			return nil, err
		}
		if _, nested := twj.Relation.(*core.NestedJoin); !nested && len(twj.Joins) == 0 {
			return nil, p.expected("joined table", p.peekToken())
		}
		if err := p.expectToken(token.RPAREN); err != nil {
			return nil, err
		}
		return &core.NestedJoin{TableWithJoins: twj}, nil
	}

	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	table := &core.Table{Name: name}
	if p.consumeToken(token.LPAREN) {
		if table.Args, err = p.parseOptionalArgs(); err != nil {
			return nil, err
		}
	}
	if table.Alias, err = p.parseOptionalTableAlias(dialect.ReservedForTableAlias); err != nil {
		return nil, err
	}
	// MSSQL-style table hints, e.g. `FROM t WITH (NOLOCK)`
	if p.parseKeyword("WITH") {
		if p.consumeToken(token.LPAREN) {
			if table.WithHints, err = p.parseExprList(); err != nil {
				return nil, err
			}
			if err := p.expectToken(token.RPAREN); err != nil {
				return nil, err
			}
		} else {
			// not a hint list, e.g. the WITH of a following CTE
			p.prevToken()
		}
	}
	return table, nil
}

// parseDerivedTableFactor parses `query ) [alias]` after the opening
// parenthesis.
func (p *Parser) parseDerivedTableFactor(lateral bool) (core.TableFactor, error) {
	subquery, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	alias, err := p.parseOptionalTableAlias(dialect.ReservedForTableAlias)
	if err != nil {
		return nil, err
	}
	return &core.Derived{Lateral: lateral, Subquery: subquery, Alias: alias}, nil
}
