package commands

import (
	"os"

	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/spf13/cobra"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write    bool // rewrite files in place
	Comments bool // keep comments above the statements
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Pretty-print SQL",
		Long: `Parse SQL files (or stdin) and print them with one clause per line.

Queries and DML statements are laid out over several indented lines; other
statements are printed in canonical form.`,
		Example: `  # Format to stdout
  sqlfront fmt query.sql

  # Rewrite files in place, keeping comments
  sqlfront fmt -w --comments models/*.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to the source files instead of stdout")
	cmd.Flags().BoolVar(&opts.Comments, "comments", false, "Keep comments, hoisted above the statements")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if err := cc.parseSources(cmd.Context(), sources, opts.Comments); err != nil {
		return err
	}
	if err := firstError(sources); err != nil {
		return err
	}

	r := cc.Renderer
	for i, src := range sources {
		var formatted string
		if opts.Comments {
			formatted = format.WithComments(src.Stmts, src.Comments)
		} else {
			formatted = format.Statements(src.Stmts)
		}

		if opts.Write && src.Name != stdinName {
			if err := os.WriteFile(src.Name, []byte(formatted), 0o644); err != nil {
				return err
			}
			cc.Logger.Debug("formatted", "file", src.Name)
			continue
		}

		if len(sources) > 1 {
			if i > 0 {
				r.Println()
			}
			r.Println(r.Muted("-- " + src.Name))
		}
		r.Printf("%s", formatted)
	}
	return nil
}
