package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// DDL parsing: CREATE, ALTER and DROP.
//
// Grammar:
//
//	create        → CREATE (create_table | create_view | create_source
//	                | create_sink | create_external)
//	create_table  → TABLE name [columns] [WITH options]
//	create_view   → [MATERIALIZED] VIEW name ['(' ids ')'] [WITH options] AS query
//	create_source → SOURCE name FROM 'url' USING SCHEMA [REGISTRY] 'schema' [WITH options]
//	create_sink   → SINK name FROM name INTO 'url' [WITH options]
//	create_ext    → EXTERNAL TABLE name [columns] STORED AS format LOCATION 'path'
//	columns       → '(' (column_def | table_constraint) {',' ...} [','] ')'
//	alter         → ALTER TABLE [ONLY] name ADD table_constraint
//	drop          → DROP (TABLE|VIEW|SOURCE|SINK) [IF EXISTS] names [CASCADE|RESTRICT]

// parseCreate parses the statement after CREATE.
func (p *Parser) parseCreate() (core.Stmt, error) {
	switch {
	case p.parseKeyword("TABLE"):
		return p.parseCreateTable()
	case p.parseKeyword("MATERIALIZED") || p.parseKeyword("VIEW"):
		p.prevToken()
		return p.parseCreateView()
	case p.parseKeyword("SOURCE"):
		return p.parseCreateSource()
	case p.parseKeyword("SINK"):
		return p.parseCreateSink()
	case p.parseKeyword("EXTERNAL"):
		return p.parseCreateExternalTable()
	}
	return nil, p.expected("TABLE, VIEW, SOURCE, or SINK after CREATE", p.peekToken())
}

func (p *Parser) parseCreateSource() (core.Stmt, error) {
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	url, err := p.parseLiteralString()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("USING"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SCHEMA"); err != nil {
		return nil, err
	}
	stmt := &core.CreateSourceStmt{Name: name, URL: url}
	stmt.Schema.Registry = p.parseKeyword("REGISTRY")
	if stmt.Schema.Value, err = p.parseLiteralString(); err != nil {
		return nil, err
	}
	if stmt.WithOptions, err = p.parseOptionalWithOptions(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseCreateSink() (core.Stmt, error) {
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	from, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	url, err := p.parseLiteralString()
	if err != nil {
		return nil, err
	}
	stmt := &core.CreateSinkStmt{Name: name, From: from, URL: url}
	if stmt.WithOptions, err = p.parseOptionalWithOptions(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseCreateView() (core.Stmt, error) {
	stmt := &core.CreateViewStmt{Materialized: p.parseKeyword("MATERIALIZED")}
	if err := p.expectKeyword("VIEW"); err != nil {
		return nil, err
	}
	var err error
	if stmt.Name, err = p.parseObjectName(); err != nil {
		return nil, err
	}
	if stmt.Columns, err = p.parseParenthesizedColumnList(true); err != nil {
		return nil, err
	}
	if stmt.WithOptions, err = p.parseOptionalWithOptions(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	if stmt.Query, err = p.parseQuery(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseCreateTable() (core.Stmt, error) {
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	stmt := &core.CreateTableStmt{Name: name}
	if stmt.Columns, stmt.Constraints, err = p.parseColumns(); err != nil {
		return nil, err
	}
	if stmt.WithOptions, err = p.parseOptionalWithOptions(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseCreateExternalTable() (core.Stmt, error) {
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	stmt := &core.CreateTableStmt{Name: name, External: true}
	if stmt.Columns, stmt.Constraints, err = p.parseColumns(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("STORED"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	formatTok := p.peekToken()
	format, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	ff, ok := core.LookupFileFormat(string(format))
	if !ok {
		return nil, p.errorf(formatTok, errUnexpectedFileFormat, format)
	}
	stmt.FileFormat = ff
	if err := p.expectKeyword("LOCATION"); err != nil {
		return nil, err
	}
	if stmt.Location, err = p.parseLiteralString(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseColumns parses the optional parenthesized list of column
// definitions and table constraints. A trailing comma is accepted.
func (p *Parser) parseColumns() ([]*core.ColumnDef, []core.TableConstraint, error) {
	var columns []*core.ColumnDef
	var constraints []core.TableConstraint
	if !p.consumeToken(token.LPAREN) || p.consumeToken(token.RPAREN) {
		return columns, constraints, nil
	}
	for {
		constraint, err := p.parseOptionalTableConstraint()
		if err != nil {
			return nil, nil, err
		}
		switch {
		case constraint != nil:
			constraints = append(constraints, constraint)
		case p.peekToken().Type == token.WORD:
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, nil, err
			}
			columns = append(columns, col)
		default:
			return nil, nil, p.expected("column name or constraint definition", p.peekToken())
		}

		comma := p.consumeToken(token.COMMA)
		if p.consumeToken(token.RPAREN) {
			break
		}
		if !comma {
			return nil, nil, p.expected("',' or ')' after column definition", p.peekToken())
		}
	}
	return columns, constraints, nil
}

// parseColumnDef parses `name type [COLLATE collation] [options...]`.
func (p *Parser) parseColumnDef() (*core.ColumnDef, error) {
	col := &core.ColumnDef{Name: core.Ident(p.nextToken().Word.String())}
	var err error
	if col.DataType, err = p.parseDataType(); err != nil {
		return nil, err
	}
	if p.parseKeyword("COLLATE") {
		if col.Collation, err = p.parseObjectName(); err != nil {
			return nil, err
		}
	}
	for {
		switch p.peekToken().Type {
		case token.EOF, token.COMMA, token.RPAREN:
			return col, nil
		}
		opt, err := p.parseColumnOptionDef()
		if err != nil {
			return nil, err
		}
		col.Options = append(col.Options, opt)
	}
}

// parseColumnOptionDef parses `[CONSTRAINT name] option`.
func (p *Parser) parseColumnOptionDef() (*core.ColumnOptionDef, error) {
	def := &core.ColumnOptionDef{}
	var err error
	if p.parseKeyword("CONSTRAINT") {
		if def.Name, err = p.parseIdentifier(); err != nil {
			return nil, err
		}
	}
	switch {
	case p.parseKeywords("NOT", "NULL"):
		def.Option = &core.NotNullOption{}
	case p.parseKeyword("NULL"):
		def.Option = &core.NullOption{}
	case p.parseKeyword("DEFAULT"):
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		def.Option = &core.DefaultOption{Expr: expr}
	case p.parseKeywords("PRIMARY", "KEY"):
		def.Option = &core.UniqueOption{IsPrimary: true}
	case p.parseKeyword("UNIQUE"):
		def.Option = &core.UniqueOption{}
	case p.parseKeyword("REFERENCES"):
		table, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		cols, err := p.parseParenthesizedColumnList(false)
		if err != nil {
			return nil, err
		}
		def.Option = &core.ReferencesOption{ForeignTable: table, ReferredColumns: cols}
	case p.parseKeyword("CHECK"):
		expr, err := p.parseParenthesizedExpr()
		if err != nil {
			return nil, err
		}
		def.Option = &core.CheckOption{Expr: expr}
	default:
		return nil, p.expected("column option", p.peekToken())
	}
	return def, nil
}

// parseOptionalTableConstraint parses a table constraint, or returns nil
// without consuming anything when none follows. A CONSTRAINT name commits
// to a constraint.
func (p *Parser) parseOptionalTableConstraint() (core.TableConstraint, error) {
	var name core.Ident
	named := p.parseKeyword("CONSTRAINT")
	if named {
		var err error
		if name, err = p.parseIdentifier(); err != nil {
			return nil, err
		}
	}

	tok := p.nextToken()
	switch tok.Word.Keyword {
	case "PRIMARY", "UNIQUE":
		isPrimary := tok.Word.Keyword == "PRIMARY"
		if isPrimary {
			if err := p.expectKeyword("KEY"); err != nil {
				return nil, err
			}
		}
		cols, err := p.parseParenthesizedColumnList(false)
		if err != nil {
			return nil, err
		}
		return &core.UniqueConstraint{Name: name, Columns: cols, IsPrimary: isPrimary}, nil
	case "FOREIGN":
		if err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}
		cols, err := p.parseParenthesizedColumnList(false)
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("REFERENCES"); err != nil {
			return nil, err
		}
		table, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		referred, err := p.parseParenthesizedColumnList(false)
		if err != nil {
			return nil, err
		}
		return &core.ForeignKeyConstraint{Name: name, Columns: cols, ForeignTable: table, ReferredColumns: referred}, nil
	case "CHECK":
		expr, err := p.parseParenthesizedExpr()
		if err != nil {
			return nil, err
		}
		return &core.CheckConstraint{Name: name, Expr: expr}, nil
	}
	if named {
		return nil, p.expected("PRIMARY, UNIQUE, FOREIGN, or CHECK", tok)
	}
	p.prevToken()
	return nil, nil
}

// parseParenthesizedExpr parses `( expr )`.
func (p *Parser) parseParenthesizedExpr() (core.Expr, error) {
	if err := p.expectToken(token.LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseOptionalWithOptions parses `WITH (name = value, ...)` if present.
func (p *Parser) parseOptionalWithOptions() ([]*core.SQLOption, error) {
	if !p.parseKeyword("WITH") {
		return nil, nil
	}
	return p.parseWithOptions()
}

// parseWithOptions parses `(name = value, ...)` after WITH.
func (p *Parser) parseWithOptions() ([]*core.SQLOption, error) {
	if err := p.expectToken(token.LPAREN); err != nil {
		return nil, err
	}
	var options []*core.SQLOption
	for {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.EQ); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		options = append(options, &core.SQLOption{Name: name, Value: value})
		if !p.consumeToken(token.COMMA) {
			break
		}
	}
	if err := p.expectToken(token.RPAREN); err != nil {
		return nil, err
	}
	return options, nil
}

// parseAlter parses the statement after ALTER.
func (p *Parser) parseAlter() (core.Stmt, error) {
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	_ = p.parseKeyword("ONLY")
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if !p.parseKeyword("ADD") {
		return nil, p.expected("ADD after ALTER TABLE", p.peekToken())
	}
	constraint, err := p.parseOptionalTableConstraint()
	if err != nil {
		return nil, err
	}
	if constraint == nil {
		return nil, p.expected("a constraint in ALTER TABLE .. ADD", p.peekToken())
	}
	return &core.AlterTableStmt{Name: name, Operation: &core.AddConstraint{Constraint: constraint}}, nil
}

// parseDrop parses the statement after DROP.
func (p *Parser) parseDrop() (core.Stmt, error) {
	stmt := &core.DropStmt{}
	switch {
	case p.parseKeyword("TABLE"):
		stmt.ObjectType = core.ObjectTable
	case p.parseKeyword("VIEW"):
		stmt.ObjectType = core.ObjectView
	case p.parseKeyword("SOURCE"):
		stmt.ObjectType = core.ObjectSource
	case p.parseKeyword("SINK"):
		stmt.ObjectType = core.ObjectSink
	default:
		return nil, p.expected("TABLE or VIEW after DROP", p.peekToken())
	}
	stmt.IfExists = p.parseKeywords("IF", "EXISTS")
	for {
		name, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		stmt.Names = append(stmt.Names, name)
		if !p.consumeToken(token.COMMA) {
			break
		}
	}
	stmt.Cascade = p.parseKeyword("CASCADE")
	if restrict := p.parseKeyword("RESTRICT"); stmt.Cascade && restrict {
		return nil, p.errorf(p.peekToken(), errCascadeAndRestrict)
	}
	return stmt, nil
}
