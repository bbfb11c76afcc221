package commands

import (
	"log/slog"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Dialect  *dialect.Dialect
	Renderer *output.Renderer
}

// NewCommandContext resolves the configured dialect and builds a renderer
// for the command's output streams.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	d, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Dialect:  d,
		Renderer: r,
	}, nil
}

// ParserOptions returns the parser options implied by the configuration.
func (c *CommandContext) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithLogger(c.Logger),
		parser.WithStrictIntervals(c.Cfg.StrictIntervals),
	}
}

// Parse parses sql with the configured dialect and options.
func (c *CommandContext) Parse(sql string) ([]core.Stmt, error) {
	return parser.Parse(c.Dialect, sql, c.ParserOptions()...)
}
