package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"golang.org/x/sync/errgroup"
)

const stdinName = "-"

// source is one SQL input and, once parsed, its statements.
type source struct {
	Name     string
	SQL      string
	Stmts    []core.Stmt
	Comments []*token.Comment
	Err      error
}

// readSources reads the named files. No names, or "-", reads stdin.
func readSources(stdin io.Reader, names []string) ([]*source, error) {
	if len(names) == 0 {
		names = []string{stdinName}
	}

	sources := make([]*source, 0, len(names))
	readStdin := false
	for _, name := range names {
		var data []byte
		var err error
		if name == stdinName {
			if readStdin {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			readStdin = true
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		sources = append(sources, &source{Name: name, SQL: string(data)})
	}
	return sources, nil
}

// parseSources parses every source concurrently, recording failures on
// the source itself. Sources not yet started are skipped once ctx is done.
func (c *CommandContext) parseSources(ctx context.Context, sources []*source, withComments bool) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.Logger.Debug("parsing", "source", src.Name, "dialect", c.Dialect.Name())
			src.Stmts, src.Err = c.Parse(src.SQL)
			if src.Err != nil || !withComments {
				return nil
			}
			tokens, err := parser.Tokenize(c.Dialect, src.SQL)
			if err != nil {
				src.Err = err
				return nil
			}
			src.Comments = token.Comments(tokens)
			return nil
		})
	}
	return g.Wait()
}

// firstError returns the first source failure, prefixed with its name.
func firstError(sources []*source) error {
	for _, src := range sources {
		if src.Err != nil {
			return fmt.Errorf("%s: %w", src.Name, src.Err)
		}
	}
	return nil
}
