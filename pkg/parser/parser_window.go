package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// parseWindowSpec parses the parenthesized body of an OVER clause:
//
//	'(' [PARTITION BY expr_list] [ORDER BY order_list] [frame] ')'
func (p *Parser) parseWindowSpec() (*core.WindowSpec, error) {
	if err := p.expectToken(token.LPAREN); err != nil {
		return nil, err
	}
	spec := &core.WindowSpec{}
	var err error
	if p.parseKeywords("PARTITION", "BY") {
		if spec.PartitionBy, err = p.parseExprList(); err != nil {
			return nil, err
		}
	}
	if p.parseKeywords("ORDER", "BY") {
		if spec.OrderBy, err = p.parseOrderByList(); err != nil {
			return nil, err
		}
	}
	if spec.WindowFrame, err = p.parseWindowFrame(); err != nil {
		return nil, err
	}
	return spec, nil
}

// parseWindowFrame parses an optional frame and the closing parenthesis:
//
//	frame → (ROWS|RANGE|GROUPS) (bound | BETWEEN bound AND bound)
func (p *Parser) parseWindowFrame() (*core.WindowFrame, error) {
	var frame *core.WindowFrame
	switch tok := p.peekToken(); tok.Type {
	case token.WORD:
		units, err := p.parseWindowFrameUnits(tok)
		if err != nil {
			return nil, err
		}
		p.nextToken()
		frame = &core.WindowFrame{Units: units}
		if p.parseKeyword("BETWEEN") {
			if frame.StartBound, err = p.parseWindowFrameBound(); err != nil {
				return nil, err
			}
			if err := p.expectKeyword("AND"); err != nil {
				return nil, err
			}
			if frame.EndBound, err = p.parseWindowFrameBound(); err != nil {
				return nil, err
			}
		} else if frame.StartBound, err = p.parseWindowFrameBound(); err != nil {
			return nil, err
		}
	case token.RPAREN:
	default:
		return nil, p.expected("'ROWS', 'RANGE', 'GROUPS', or ')'", tok)
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return frame, nil
}

func (p *Parser) parseWindowFrameUnits(tok token.Token) (core.WindowFrameUnits, error) {
	switch tok.Word.Keyword {
	case "ROWS":
		return core.FrameRows, nil
	case "RANGE":
		return core.FrameRange, nil
	case "GROUPS":
		return core.FrameGroups, nil
	}
	return 0, p.expected("ROWS, RANGE, or GROUPS", tok)
}

// parseWindowFrameBound parses
//
//	CURRENT ROW | (n | UNBOUNDED) (PRECEDING | FOLLOWING)
func (p *Parser) parseWindowFrameBound() (*core.WindowFrameBound, error) {
	if p.parseKeywords("CURRENT", "ROW") {
		return &core.WindowFrameBound{Kind: core.CurrentRow}, nil
	}
	var offset *uint64
	if !p.parseKeyword("UNBOUNDED") {
		n, err := p.parseLiteralUint()
		if err != nil {
			return nil, err
		}
		offset = &n
	}
	switch {
	case p.parseKeyword("PRECEDING"):
		return &core.WindowFrameBound{Kind: core.Preceding, Offset: offset}, nil
	case p.parseKeyword("FOLLOWING"):
		return &core.WindowFrameBound{Kind: core.Following, Offset: offset}, nil
	}
	return nil, p.expected("PRECEDING or FOLLOWING", p.peekToken())
}
