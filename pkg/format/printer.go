package format

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

const indentUnit = "  "

// Printer accumulates formatted SQL. Indentation is emitted lazily, when
// the first text of a line is written.
type Printer struct {
	buf     strings.Builder
	depth   int
	pending bool // at the start of a line, indentation not yet written
}

func newPrinter() *Printer {
	return &Printer{pending: true}
}

// String returns the formatted output ending in exactly one newline.
func (p *Printer) String() string {
	return strings.TrimRight(p.buf.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	if s == "" {
		return
	}
	if p.pending {
		p.buf.WriteString(strings.Repeat(indentUnit, p.depth))
		p.pending = false
	}
	p.buf.WriteString(s)
}

func (p *Printer) writeln() {
	p.buf.WriteByte('\n')
	p.pending = true
}

// keyword prints one or more keywords separated by spaces.
func (p *Printer) keyword(words ...string) {
	p.write(strings.Join(words, " "))
}

func (p *Printer) indent() { p.depth++ }

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.write(" ")
}

// formatComments prints each comment on its own line.
func (p *Printer) formatComments(comments []*token.Comment) {
	for _, c := range comments {
		for _, line := range strings.Split(strings.TrimRight(c.Text, "\n"), "\n") {
			p.write(line)
			p.writeln()
		}
	}
}

// formatList calls item for each index in [0, count), writing sep between
// items and, when multiline, a newline after each sep.
func (p *Printer) formatList(count int, item func(i int), sep string, multiline bool) {
	for i := range count {
		if i > 0 {
			p.write(sep)
			if multiline {
				p.writeln()
			}
		}
		item(i)
	}
}

// block prints a clause keyword followed by an indented body on the next
// line, e.g. WHERE or GROUP BY.
func (p *Printer) block(kw string, body func()) {
	p.keyword(kw)
	p.writeln()
	p.indent()
	body()
	p.writeln()
	p.dedent()
}
