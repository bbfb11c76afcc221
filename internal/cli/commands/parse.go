package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/spf13/cobra"
)

// StatementDoc is the structured form of a parsed statement.
type StatementDoc struct {
	Kind string    `json:"kind" yaml:"kind"`
	SQL  string    `json:"sql" yaml:"sql"`
	AST  core.Stmt `json:"ast" yaml:"ast"`
}

// FileDoc is the structured form of a parsed input.
type FileDoc struct {
	File       string         `json:"file" yaml:"file"`
	Statements []StatementDoc `json:"statements" yaml:"statements"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse SQL and print its canonical form",
		Long: `Parse SQL files (or stdin) and print each statement in canonical form.

Files are parsed concurrently. With --output json or yaml the syntax tree
of every statement is dumped as well.`,
		Example: `  # Canonicalize a file
  sqlfront parse query.sql

  # Dump the syntax tree as YAML
  echo "SELECT 1" | sqlfront parse -o yaml

  # Use another dialect
  sqlfront parse -d mssql report.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args)
		},
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if err := cc.parseSources(cmd.Context(), sources, false); err != nil {
		return err
	}
	if err := firstError(sources); err != nil {
		return err
	}

	r := cc.Renderer
	docs := make([]FileDoc, len(sources))
	for i, src := range sources {
		docs[i] = FileDoc{File: src.Name, Statements: statementDocs(src.Stmts)}
	}
	if ok, err := r.Structured(docs); ok {
		return err
	}

	for _, src := range sources {
		if len(sources) > 1 {
			r.Println(r.Muted("-- " + src.Name))
		}
		for _, stmt := range src.Stmts {
			r.Println(stmt.String() + ";")
		}
	}
	return nil
}

func statementDocs(stmts []core.Stmt) []StatementDoc {
	docs := make([]StatementDoc, len(stmts))
	for i, stmt := range stmts {
		docs[i] = StatementDoc{
			Kind: statementKind(stmt),
			SQL:  stmt.String(),
			AST:  stmt,
		}
	}
	return docs
}

// statementKind names the statement's node type, e.g. "Query".
func statementKind(stmt core.Stmt) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", stmt), "*core.")
}
