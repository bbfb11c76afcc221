package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/spf13/cobra"
)

// DialectDoc is the structured form of a registered dialect.
type DialectDoc struct {
	Name       string `json:"name" yaml:"name"`
	Delimiters string `json:"delimiters" yaml:"delimiters"`
	Active     bool   `json:"active" yaml:"active"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List available SQL dialects",
		Long: `List the registered SQL dialects with the characters that open a
delimited identifier in each. The active dialect is marked.`,
		Args: cobra.NoArgs,
		RunE: runDialects,
	}
}

func runDialects(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	names := dialect.List()
	docs := make([]DialectDoc, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		docs = append(docs, DialectDoc{
			Name:       d.Name(),
			Delimiters: delimiterList(d),
			Active:     d.Name() == cc.Dialect.Name(),
		})
	}

	r := cc.Renderer
	if ok, err := r.Structured(docs); ok {
		return err
	}

	t := newTable(r, "NAME", "DELIMITERS", "ACTIVE")
	for _, d := range docs {
		active := ""
		if d.Active {
			active = "*"
		}
		t.AppendRow(table.Row{d.Name, d.Delimiters, active})
	}
	t.Render()
	return nil
}

func delimiterList(d *dialect.Dialect) string {
	delims := d.Delimiters()
	parts := make([]string, len(delims))
	for i, q := range delims {
		parts[i] = string(q)
	}
	return strings.Join(parts, " ")
}
