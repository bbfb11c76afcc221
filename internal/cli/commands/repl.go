package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "sqlfront> "
	replContinuePrompt = "    ...> "
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL parser shell",
		Long: `Start an interactive shell that parses each statement as it is entered
and prints its canonical form.

Statements may span several lines and end with a semicolon. Lines that
start with a dot are shell commands; type .help to list them.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cc.Cfg.HistoryFile,
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cc.Renderer
	r.Printf("sqlfront shell (dialect: %s)\n", cc.Dialect.Name())
	r.Println(r.Muted("Type .help for commands, .quit to exit"))
	r.Println()

	session := &replSession{cc: cc}
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(session.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if session.handleLine(line) {
			return nil
		}
		rl.SetPrompt(session.prompt())
	}
}

// replSession is the line-handling state of the shell, independent of the
// terminal.
type replSession struct {
	cc  *CommandContext
	buf strings.Builder
}

func (s *replSession) prompt() string {
	if s.buf.Len() > 0 {
		return replContinuePrompt
	}
	return replPrompt
}

func (s *replSession) reset() {
	s.buf.Reset()
}

// handleLine processes one input line and reports whether the shell
// should exit.
func (s *replSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if s.buf.Len() == 0 && strings.HasPrefix(line, ".") {
		return s.handleDotCommand(line)
	}

	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.buf.WriteString("\n")
		return false
	}

	sql := s.buf.String()
	s.buf.Reset()
	s.evaluate(sql)
	return false
}

func (s *replSession) evaluate(sql string) {
	r := s.cc.Renderer
	stmts, err := s.cc.Parse(sql)
	if err != nil {
		r.Error(err.Error())
		return
	}
	for _, stmt := range stmts {
		r.Println(stmt.String() + ";")
	}
}

func (s *replSession) handleDotCommand(line string) bool {
	r := s.cc.Renderer
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(r.Writer())

	case ".dialect":
		if rest == "" {
			r.Println(s.cc.Dialect.Name())
			return false
		}
		d, err := dialect.Lookup(rest)
		if err != nil {
			r.Error(err.Error())
			return false
		}
		s.cc.Dialect = d
		r.Success("dialect set to " + d.Name())

	case ".tokens":
		if rest == "" {
			r.Error("usage: .tokens SQL")
			return false
		}
		tokens, err := parser.Tokenize(s.cc.Dialect, rest)
		if err != nil {
			r.Error(err.Error())
			return false
		}
		if err := renderTokens(s.cc, tokens, false); err != nil {
			r.Error(err.Error())
		}

	case ".comments":
		if rest == "" {
			r.Error("usage: .comments SQL")
			return false
		}
		tokens, err := parser.Tokenize(s.cc.Dialect, rest)
		if err != nil {
			r.Error(err.Error())
			return false
		}
		if err := renderComments(s.cc, token.Comments(tokens)); err != nil {
			r.Error(err.Error())
		}

	default:
		r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `Commands:
  .help             Show this help message
  .dialect [NAME]   Show or switch the active dialect
  .tokens SQL       Show the token stream of SQL
  .comments SQL     List the comments in SQL
  .quit / .exit     Exit the shell

Statements must end with a semicolon (;) and may span several lines.`
	_, _ = fmt.Fprintln(w, help)
}

// newReplCompleter completes dot-commands and dialect names.
func newReplCompleter() *readline.PrefixCompleter {
	dialects := make([]readline.PrefixCompleterInterface, 0, len(dialect.List()))
	for _, name := range dialect.List() {
		dialects = append(dialects, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".tokens"),
		readline.PcItem(".comments"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
