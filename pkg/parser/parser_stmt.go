package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// DML, COPY, transaction control and SHOW.
//
// Grammar:
//
//	insert      → INSERT INTO name ['(' ids ')'] query
//	update      → UPDATE name SET id '=' expr {',' id '=' expr} [WHERE expr]
//	delete      → DELETE FROM name [WHERE expr]
//	copy        → COPY name ['(' ids ')'] FROM STDIN ';' tsv_payload '\.'
//	start       → START TRANSACTION [modes] | BEGIN [TRANSACTION|WORK] [modes]
//	set         → SET TRANSACTION [modes]
//	modes       → mode {[','] mode}
//	mode        → ISOLATION LEVEL level | READ ONLY | READ WRITE
//	commit      → (COMMIT|ROLLBACK) [TRANSACTION|WORK] [AND [NO] CHAIN]
//	show        → SHOW COLUMNS FROM name | SHOW (TABLES|VIEWS|SOURCES|SINKS)

// parseInsert parses the statement after INSERT.
func (p *Parser) parseInsert() (core.Stmt, error) {
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	stmt := &core.InsertStmt{}
	var err error
	if stmt.TableName, err = p.parseObjectName(); err != nil {
		return nil, err
	}
	if stmt.Columns, err = p.parseParenthesizedColumnList(true); err != nil {
		return nil, err
	}
	if stmt.Source, err = p.parseQuery(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseUpdate parses the statement after UPDATE.
func (p *Parser) parseUpdate() (core.Stmt, error) {
	stmt := &core.UpdateStmt{}
	var err error
	if stmt.TableName, err = p.parseObjectName(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}
	for {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.EQ); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, &core.Assignment{ID: id, Value: value})
		if !p.consumeToken(token.COMMA) {
			break
		}
	}
	if p.parseKeyword("WHERE") {
		if stmt.Selection, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseDelete parses the statement after DELETE.
func (p *Parser) parseDelete() (core.Stmt, error) {
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	stmt := &core.DeleteStmt{}
	var err error
	if stmt.TableName, err = p.parseObjectName(); err != nil {
		return nil, err
	}
	if p.parseKeyword("WHERE") {
		if stmt.Selection, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// ---------- COPY ----------

// parseCopy parses the statement after COPY, including its inline payload.
func (p *Parser) parseCopy() (core.Stmt, error) {
	stmt := &core.CopyStmt{}
	var err error
	if stmt.TableName, err = p.parseObjectName(); err != nil {
		return nil, err
	}
	if stmt.Columns, err = p.parseParenthesizedColumnList(true); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("STDIN"); err != nil {
		return nil, err
	}
	if err := p.expectToken(token.SEMICOLON); err != nil {
		return nil, err
	}
	stmt.Values = p.parseTSV()
	return stmt, nil
}

// parseTSV reads a tab-separated payload from the raw token stream. Tabs
// and newlines end a field, `\N` marks the field NULL and `\.` ends the
// payload. The whitespace between the `;` and the first newline is not
// part of the payload.
func (p *Parser) parseTSV() []*string {
	for p.index < len(p.tokens) && p.tokens[p.index].IsWhitespace() {
		kind := p.tokens[p.index].Space.Kind
		p.index++
		if kind == token.Newline {
			break
		}
	}

	var values []*string
	var field strings.Builder
	null := false
	push := func() {
		if null {
			values = append(values, nil)
		} else {
			s := field.String()
			values = append(values, &s)
		}
		field.Reset()
		null = false
	}
	pending := func() bool { return null || field.Len() > 0 }

	for {
		tok := p.nextTokenNoSkip()
		switch tok.Type {
		case token.EOF:
			if pending() {
				push()
			}
			return values
		case token.WHITESPACE:
			switch tok.Space.Kind {
			case token.Tab, token.Newline:
				push()
			default:
				field.WriteString(tok.String())
			}
		case token.BACKSLASH:
			next := p.nextTokenNoSkip()
			switch {
			case next.Type == token.DOT:
				if pending() {
					push()
				}
				return values
			case next.Type == token.WORD && next.Word.QuoteStyle == 0 && next.Word.Value == "N":
				null = true
			case next.Type == token.EOF:
				if pending() {
					push()
				}
				return values
			default:
				field.WriteString(`\` + next.String())
			}
		default:
			field.WriteString(tok.String())
		}
	}
}

// ---------- Transactions ----------

func (p *Parser) parseStartTransaction() (core.Stmt, error) {
	if err := p.expectKeyword("TRANSACTION"); err != nil {
		return nil, err
	}
	modes, err := p.parseTransactionModes()
	if err != nil {
		return nil, err
	}
	return &core.StartTransactionStmt{Modes: modes}, nil
}

func (p *Parser) parseBegin() (core.Stmt, error) {
	_ = p.parseOneOfKeywords("TRANSACTION", "WORK")
	modes, err := p.parseTransactionModes()
	if err != nil {
		return nil, err
	}
	return &core.StartTransactionStmt{Modes: modes}, nil
}

func (p *Parser) parseSetTransaction() (core.Stmt, error) {
	if err := p.expectKeyword("TRANSACTION"); err != nil {
		return nil, err
	}
	modes, err := p.parseTransactionModes()
	if err != nil {
		return nil, err
	}
	return &core.SetTransactionStmt{Modes: modes}, nil
}

// parseTransactionModes parses isolation levels and access modes. The
// comma between modes is optional, as in PostgreSQL, but a trailing comma
// requires another mode. The list ends at EOF or a statement delimiter.
func (p *Parser) parseTransactionModes() ([]core.TransactionMode, error) {
	var modes []core.TransactionMode
	required := false
	for {
		var mode core.TransactionMode
		switch {
		case p.parseKeywords("ISOLATION", "LEVEL"):
			switch {
			case p.parseKeywords("READ", "UNCOMMITTED"):
				mode = core.ReadUncommitted
			case p.parseKeywords("READ", "COMMITTED"):
				mode = core.ReadCommitted
			case p.parseKeywords("REPEATABLE", "READ"):
				mode = core.RepeatableRead
			case p.parseKeyword("SERIALIZABLE"):
				mode = core.Serializable
			default:
				return nil, p.expected("isolation level", p.peekToken())
			}
		case p.parseKeywords("READ", "ONLY"):
			mode = core.ReadOnly
		case p.parseKeywords("READ", "WRITE"):
			mode = core.ReadWrite
		default:
			next := p.peekToken()
			if required || (next.Type != token.EOF && next.Type != token.SEMICOLON) {
				return nil, p.expected("transaction mode", next)
			}
			return modes, nil
		}
		modes = append(modes, mode)
		required = p.consumeToken(token.COMMA)
	}
}

// parseCommitRollbackChain parses `[TRANSACTION|WORK] [AND [NO] CHAIN]`
// after COMMIT or ROLLBACK and reports whether a chain was requested.
func (p *Parser) parseCommitRollbackChain() (bool, error) {
	_ = p.parseOneOfKeywords("TRANSACTION", "WORK")
	if !p.parseKeyword("AND") {
		return false, nil
	}
	chain := !p.parseKeyword("NO")
	if err := p.expectKeyword("CHAIN"); err != nil {
		return false, err
	}
	return chain, nil
}

// ---------- SHOW ----------

// parseShow parses the statement after SHOW.
func (p *Parser) parseShow() (core.Stmt, error) {
	if p.parseKeyword("COLUMNS") {
		if !p.parseKeyword("FROM") {
			return nil, p.expected("FROM", p.peekToken())
		}
		name, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		return &core.ShowColumnsStmt{TableName: name}, nil
	}
	switch p.parseOneOfKeywords("SOURCES", "VIEWS", "SINKS", "TABLES") {
	case "SOURCES":
		return &core.ShowStmt{ObjectType: core.ObjectSource}, nil
	case "VIEWS":
		return &core.ShowStmt{ObjectType: core.ObjectView}, nil
	case "SINKS":
		return &core.ShowStmt{ObjectType: core.ObjectSink}, nil
	case "TABLES":
		return &core.ShowStmt{ObjectType: core.ObjectTable}, nil
	}
	return nil, p.expected("One of {COLUMNS, TABLES, VIEWS, SOURCES, SINKS}", p.peekToken())
}
