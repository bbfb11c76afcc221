package core

import (
	"strings"
)

// ---------- Statement Types ----------

// InsertStmt is `INSERT INTO table [(cols)] query`.
type InsertStmt struct {
	TableName ObjectName
	Columns   []Ident
	Source    *Query
}

func (*InsertStmt) stmtNode() {}

// String implements Node.
func (s *InsertStmt) String() string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(s.TableName.String())
	sb.WriteString(" ")
	if len(s.Columns) > 0 {
		sb.WriteString("(" + commaSeparated(s.Columns) + ") ")
	}
	sb.WriteString(s.Source.String())
	return sb.String()
}

// CopyStmt is `COPY table [(cols)] FROM STDIN;` followed by a
// tab-separated payload terminated by `\.`. A nil value is NULL (`\N`).
type CopyStmt struct {
	TableName ObjectName
	Columns   []Ident
	Values    []*string
}

func (*CopyStmt) stmtNode() {}

// String implements Node.
func (s *CopyStmt) String() string {
	var sb strings.Builder
	sb.WriteString("COPY ")
	sb.WriteString(s.TableName.String())
	if len(s.Columns) > 0 {
		sb.WriteString(" (" + commaSeparated(s.Columns) + ")")
	}
	sb.WriteString(" FROM stdin; ")
	if len(s.Values) > 0 {
		sb.WriteString("\n")
		for i, v := range s.Values {
			if i > 0 {
				sb.WriteString("\t")
			}
			if v == nil {
				sb.WriteString(`\N`)
			} else {
				sb.WriteString(*v)
			}
		}
	}
	sb.WriteString("\n\\.")
	return sb.String()
}

// Assignment is `id = value` in UPDATE ... SET.
type Assignment struct {
	ID    Ident
	Value Expr
}

// String implements Node.
func (a *Assignment) String() string { return string(a.ID) + " = " + a.Value.String() }

// UpdateStmt is `UPDATE table SET a = 1, ... [WHERE expr]`.
type UpdateStmt struct {
	TableName   ObjectName
	Assignments []*Assignment
	Selection   Expr
}

func (*UpdateStmt) stmtNode() {}

// String implements Node.
func (s *UpdateStmt) String() string {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(s.TableName.String())
	if len(s.Assignments) > 0 {
		sb.WriteString(" SET ")
		sb.WriteString(commaSeparated(s.Assignments))
	}
	if s.Selection != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(s.Selection.String())
	}
	return sb.String()
}

// DeleteStmt is `DELETE FROM table [WHERE expr]`.
type DeleteStmt struct {
	TableName ObjectName
	Selection Expr
}

func (*DeleteStmt) stmtNode() {}

// String implements Node.
func (s *DeleteStmt) String() string {
	if s.Selection == nil {
		return "DELETE FROM " + s.TableName.String()
	}
	return "DELETE FROM " + s.TableName.String() + " WHERE " + s.Selection.String()
}

// ---------- Transaction Statements ----------

// TransactionMode is either an access mode or an isolation level.
type TransactionMode interface {
	Node
	transactionModeNode()
}

// AccessMode is READ ONLY or READ WRITE.
type AccessMode bool

// Access modes.
const (
	ReadWrite AccessMode = false
	ReadOnly  AccessMode = true
)

func (AccessMode) transactionModeNode() {}

// String implements Node.
func (m AccessMode) String() string {
	if m == ReadOnly {
		return "READ ONLY"
	}
	return "READ WRITE"
}

// IsolationLevel is the argument of ISOLATION LEVEL.
type IsolationLevel int

// Isolation levels.
const (
	ReadUncommitted IsolationLevel = iota
	ReadCommitted
	RepeatableRead
	Serializable
)

func (IsolationLevel) transactionModeNode() {}

// String implements Node.
func (l IsolationLevel) String() string {
	switch l {
	case ReadUncommitted:
		return "ISOLATION LEVEL READ UNCOMMITTED"
	case ReadCommitted:
		return "ISOLATION LEVEL READ COMMITTED"
	case RepeatableRead:
		return "ISOLATION LEVEL REPEATABLE READ"
	}
	return "ISOLATION LEVEL SERIALIZABLE"
}

func renderModes(head string, modes []TransactionMode) string {
	if len(modes) == 0 {
		return head
	}
	return head + " " + commaSeparated(modes)
}

// StartTransactionStmt is `START TRANSACTION` or `BEGIN`, with modes.
type StartTransactionStmt struct {
	Modes []TransactionMode
}

func (*StartTransactionStmt) stmtNode() {}

// String implements Node.
func (s *StartTransactionStmt) String() string { return renderModes("START TRANSACTION", s.Modes) }

// SetTransactionStmt is `SET TRANSACTION` with modes.
type SetTransactionStmt struct {
	Modes []TransactionMode
}

func (*SetTransactionStmt) stmtNode() {}

// String implements Node.
func (s *SetTransactionStmt) String() string { return renderModes("SET TRANSACTION", s.Modes) }

// CommitStmt is `COMMIT [AND [NO] CHAIN]`.
type CommitStmt struct {
	Chain bool
}

func (*CommitStmt) stmtNode() {}

// String implements Node.
func (s *CommitStmt) String() string {
	if s.Chain {
		return "COMMIT AND CHAIN"
	}
	return "COMMIT"
}

// RollbackStmt is `ROLLBACK [AND [NO] CHAIN]`.
type RollbackStmt struct {
	Chain bool
}

func (*RollbackStmt) stmtNode() {}

// String implements Node.
func (s *RollbackStmt) String() string {
	if s.Chain {
		return "ROLLBACK AND CHAIN"
	}
	return "ROLLBACK"
}

// ---------- Streaming and Introspection Statements ----------

// PeekStmt is `PEEK name`.
type PeekStmt struct {
	Name ObjectName
}

func (*PeekStmt) stmtNode() {}

// String implements Node.
func (s *PeekStmt) String() string { return "PEEK " + s.Name.String() }

// TailStmt is `TAIL name`.
type TailStmt struct {
	Name ObjectName
}

func (*TailStmt) stmtNode() {}

// String implements Node.
func (s *TailStmt) String() string { return "TAIL " + s.Name.String() }

// ShowColumnsStmt is `SHOW COLUMNS FROM table`.
type ShowColumnsStmt struct {
	TableName ObjectName
}

func (*ShowColumnsStmt) stmtNode() {}

// String implements Node.
func (s *ShowColumnsStmt) String() string { return "SHOW COLUMNS FROM " + s.TableName.String() }

// ShowStmt is `SHOW TABLES`, `SHOW VIEWS`, `SHOW SOURCES` or `SHOW SINKS`.
type ShowStmt struct {
	ObjectType ObjectType
}

func (*ShowStmt) stmtNode() {}

// String implements Node.
func (s *ShowStmt) String() string { return "SHOW " + s.ObjectType.Plural() }
