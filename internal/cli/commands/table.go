package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
)

// newTable creates a table writer mirrored to the renderer. Table mode
// draws borders; text mode prints bare aligned columns.
func newTable(r *output.Renderer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	if r.EffectiveMode() == output.ModeTable {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleDefault)
		t.Style().Options = table.OptionsNoBordersAndSeparators
	}
	t.AppendHeader(table.Row(header))
	return t
}

var controlReplacer = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// displayText makes control characters visible in a table cell.
func displayText(s string) string {
	return controlReplacer.Replace(s)
}
