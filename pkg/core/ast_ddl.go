package core

import (
	"strings"
)

// ---------- DDL Statements ----------

// ObjectType is the kind of catalog object a statement targets.
type ObjectType int

// Object types.
const (
	ObjectTable ObjectType = iota
	ObjectView
	ObjectSource
	ObjectSink
)

// String implements Node.
func (o ObjectType) String() string {
	switch o {
	case ObjectView:
		return "VIEW"
	case ObjectSource:
		return "SOURCE"
	case ObjectSink:
		return "SINK"
	}
	return "TABLE"
}

// Plural returns the plural keyword used by SHOW.
func (o ObjectType) Plural() string {
	return o.String() + "S"
}

// SourceSchema is the schema of a CREATE SOURCE: either given inline or
// fetched from a schema registry.
type SourceSchema struct {
	Registry bool
	Value    string // raw schema text, or the registry URL
}

// String implements Node.
func (s SourceSchema) String() string {
	if s.Registry {
		return "REGISTRY " + quoteString(s.Value)
	}
	return quoteString(s.Value)
}

// FileFormat is the STORED AS format of an external table.
type FileFormat int

// File formats.
const (
	TextFile FileFormat = iota
	SequenceFile
	ORC
	Parquet
	Avro
	RCFile
	JSONFile
)

var fileFormatNames = map[string]FileFormat{
	"TEXTFILE":     TextFile,
	"SEQUENCEFILE": SequenceFile,
	"ORC":          ORC,
	"PARQUET":      Parquet,
	"AVRO":         Avro,
	"RCFILE":       RCFile,
	"JSONFILE":     JSONFile,
}

// LookupFileFormat resolves a STORED AS keyword, case-insensitively.
func LookupFileFormat(name string) (FileFormat, bool) {
	f, ok := fileFormatNames[strings.ToUpper(name)]
	return f, ok
}

// String implements Node. JSONFILE renders as TEXTFILE.
func (f FileFormat) String() string {
	switch f {
	case SequenceFile:
		return "SEQUENCEFILE"
	case ORC:
		return "ORC"
	case Parquet:
		return "PARQUET"
	case Avro:
		return "AVRO"
	case RCFile:
		return "RCFILE"
	}
	return "TEXTFILE"
}

// SQLOption is `name = value` inside WITH (...).
type SQLOption struct {
	Name  Ident
	Value Value
}

// String implements Node.
func (o *SQLOption) String() string { return string(o.Name) + " = " + o.Value.String() }

func withOptions(opts []*SQLOption) string {
	if len(opts) == 0 {
		return ""
	}
	return " WITH (" + commaSeparated(opts) + ")"
}

// CreateSourceStmt is
// `CREATE SOURCE name FROM 'url' USING SCHEMA [REGISTRY] 'schema' [WITH (...)]`.
type CreateSourceStmt struct {
	Name        ObjectName
	URL         string
	Schema      SourceSchema
	WithOptions []*SQLOption
}

func (*CreateSourceStmt) stmtNode() {}

// String implements Node.
func (s *CreateSourceStmt) String() string {
	return "CREATE SOURCE " + s.Name.String() + " FROM " + quoteString(s.URL) +
		" USING SCHEMA " + s.Schema.String() + withOptions(s.WithOptions)
}

// CreateSinkStmt is `CREATE SINK name FROM obj INTO 'url' [WITH (...)]`.
type CreateSinkStmt struct {
	Name        ObjectName
	From        ObjectName
	URL         string
	WithOptions []*SQLOption
}

func (*CreateSinkStmt) stmtNode() {}

// String implements Node.
func (s *CreateSinkStmt) String() string {
	return "CREATE SINK " + s.Name.String() + " FROM " + s.From.String() +
		" INTO " + quoteString(s.URL) + withOptions(s.WithOptions)
}

// CreateViewStmt is
// `CREATE [MATERIALIZED] VIEW name [(cols)] [WITH (...)] AS query`.
type CreateViewStmt struct {
	Name         ObjectName
	Columns      []Ident
	Query        *Query
	Materialized bool
	WithOptions  []*SQLOption
}

func (*CreateViewStmt) stmtNode() {}

// String implements Node. Columns precede the options, matching the
// order the parser accepts.
func (s *CreateViewStmt) String() string {
	var sb strings.Builder
	sb.WriteString("CREATE")
	if s.Materialized {
		sb.WriteString(" MATERIALIZED")
	}
	sb.WriteString(" VIEW ")
	sb.WriteString(s.Name.String())
	if len(s.Columns) > 0 {
		sb.WriteString(" (" + commaSeparated(s.Columns) + ")")
	}
	sb.WriteString(withOptions(s.WithOptions))
	sb.WriteString(" AS ")
	sb.WriteString(s.Query.String())
	return sb.String()
}

// CreateTableStmt is CREATE TABLE or CREATE EXTERNAL TABLE.
type CreateTableStmt struct {
	Name        ObjectName
	Columns     []*ColumnDef
	Constraints []TableConstraint
	WithOptions []*SQLOption
	External    bool
	FileFormat  FileFormat // external tables only
	Location    string     // external tables only
}

func (*CreateTableStmt) stmtNode() {}

// String implements Node.
func (s *CreateTableStmt) String() string {
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if s.External {
		sb.WriteString("EXTERNAL ")
	}
	sb.WriteString("TABLE ")
	sb.WriteString(s.Name.String())
	sb.WriteString(" (")
	sb.WriteString(commaSeparated(s.Columns))
	if len(s.Constraints) > 0 {
		sb.WriteString(", ")
		sb.WriteString(commaSeparated(s.Constraints))
	}
	sb.WriteString(")")
	if s.External {
		sb.WriteString(" STORED AS " + s.FileFormat.String() + " LOCATION " + quoteString(s.Location))
	}
	sb.WriteString(withOptions(s.WithOptions))
	return sb.String()
}

// AlterTableStmt is `ALTER TABLE name operation`.
type AlterTableStmt struct {
	Name      ObjectName
	Operation AlterTableOperation
}

func (*AlterTableStmt) stmtNode() {}

// String implements Node.
func (s *AlterTableStmt) String() string {
	return "ALTER TABLE " + s.Name.String() + " " + s.Operation.String()
}

// AlterTableOperation is an ALTER TABLE action.
type AlterTableOperation interface {
	Node
	alterTableOperationNode()
}

// AddConstraint is `ADD <table constraint>`.
type AddConstraint struct {
	Constraint TableConstraint
}

func (*AddConstraint) alterTableOperationNode() {}

// String implements Node.
func (a *AddConstraint) String() string { return "ADD " + a.Constraint.String() }

// DropStmt is `DROP TABLE|VIEW|SOURCE|SINK [IF EXISTS] names [CASCADE]`.
type DropStmt struct {
	ObjectType ObjectType
	IfExists   bool
	Names      []ObjectName
	Cascade    bool
}

func (*DropStmt) stmtNode() {}

// String implements Node.
func (s *DropStmt) String() string {
	var sb strings.Builder
	sb.WriteString("DROP ")
	sb.WriteString(s.ObjectType.String())
	if s.IfExists {
		sb.WriteString(" IF EXISTS")
	}
	sb.WriteString(" ")
	sb.WriteString(commaSeparated(s.Names))
	if s.Cascade {
		sb.WriteString(" CASCADE")
	}
	return sb.String()
}

// ---------- Columns and Constraints ----------

// ColumnDef is `name type [COLLATE c] [options...]`.
type ColumnDef struct {
	Name      Ident
	DataType  DataType
	Collation ObjectName
	Options   []*ColumnOptionDef
}

// String implements Node.
func (c *ColumnDef) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Name))
	sb.WriteString(" ")
	sb.WriteString(c.DataType.String())
	if len(c.Collation) > 0 {
		sb.WriteString(" COLLATE ")
		sb.WriteString(c.Collation.String())
	}
	for _, opt := range c.Options {
		sb.WriteString(" ")
		sb.WriteString(opt.String())
	}
	return sb.String()
}

// ColumnOptionDef is a column option with an optional constraint name.
type ColumnOptionDef struct {
	Name   Ident // empty when unnamed
	Option ColumnOption
}

// String implements Node.
func (d *ColumnOptionDef) String() string {
	return constraintName(d.Name) + d.Option.String()
}

// ColumnOption is a column-level constraint or default.
type ColumnOption interface {
	Node
	columnOptionNode()
}

// NullOption is NULL.
type NullOption struct{}

// NotNullOption is NOT NULL.
type NotNullOption struct{}

// DefaultOption is DEFAULT expr.
type DefaultOption struct {
	Expr Expr
}

// UniqueOption is UNIQUE or PRIMARY KEY.
type UniqueOption struct {
	IsPrimary bool
}

// ReferencesOption is REFERENCES table (cols).
type ReferencesOption struct {
	ForeignTable    ObjectName
	ReferredColumns []Ident
}

// CheckOption is CHECK (expr).
type CheckOption struct {
	Expr Expr
}

func (*NullOption) columnOptionNode()       {}
func (*NotNullOption) columnOptionNode()    {}
func (*DefaultOption) columnOptionNode()    {}
func (*UniqueOption) columnOptionNode()     {}
func (*ReferencesOption) columnOptionNode() {}
func (*CheckOption) columnOptionNode()      {}

// String implements Node.
func (*NullOption) String() string { return "NULL" }

// String implements Node.
func (*NotNullOption) String() string { return "NOT NULL" }

// String implements Node.
func (o *DefaultOption) String() string { return "DEFAULT " + o.Expr.String() }

// String implements Node.
func (o *UniqueOption) String() string {
	if o.IsPrimary {
		return "PRIMARY KEY"
	}
	return "UNIQUE"
}

// String implements Node.
func (o *ReferencesOption) String() string {
	return "REFERENCES " + o.ForeignTable.String() + " (" + commaSeparated(o.ReferredColumns) + ")"
}

// String implements Node.
func (o *CheckOption) String() string { return "CHECK (" + o.Expr.String() + ")" }

// TableConstraint is a table-level constraint.
type TableConstraint interface {
	Node
	tableConstraintNode()
}

// UniqueConstraint is `[CONSTRAINT n] {PRIMARY KEY | UNIQUE} (cols)`.
type UniqueConstraint struct {
	Name      Ident
	Columns   []Ident
	IsPrimary bool
}

// ForeignKeyConstraint is
// `[CONSTRAINT n] FOREIGN KEY (cols) REFERENCES table(cols)`.
type ForeignKeyConstraint struct {
	Name            Ident
	Columns         []Ident
	ForeignTable    ObjectName
	ReferredColumns []Ident
}

// CheckConstraint is `[CONSTRAINT n] CHECK (expr)`.
type CheckConstraint struct {
	Name Ident
	Expr Expr
}

func (*UniqueConstraint) tableConstraintNode()     {}
func (*ForeignKeyConstraint) tableConstraintNode() {}
func (*CheckConstraint) tableConstraintNode()      {}

// String implements Node.
func (c *UniqueConstraint) String() string {
	kind := "UNIQUE"
	if c.IsPrimary {
		kind = "PRIMARY KEY"
	}
	return constraintName(c.Name) + kind + " (" + commaSeparated(c.Columns) + ")"
}

// String implements Node.
func (c *ForeignKeyConstraint) String() string {
	return constraintName(c.Name) + "FOREIGN KEY (" + commaSeparated(c.Columns) + ") REFERENCES " +
		c.ForeignTable.String() + "(" + commaSeparated(c.ReferredColumns) + ")"
}

// String implements Node.
func (c *CheckConstraint) String() string {
	return constraintName(c.Name) + "CHECK (" + c.Expr.String() + ")"
}

func constraintName(name Ident) string {
	if name == "" {
		return ""
	}
	return "CONSTRAINT " + string(name) + " "
}
