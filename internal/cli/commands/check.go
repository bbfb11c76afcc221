package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Watch    bool
	Debounce time.Duration
}

// CheckResult is the structured form of a check.
type CheckResult struct {
	File       string `json:"file" yaml:"file"`
	OK         bool   `json:"ok" yaml:"ok"`
	Statements int    `json:"statements" yaml:"statements"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// errCheckFailed is returned when at least one input does not parse.
var errCheckFailed = errors.New("check failed")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{Debounce: 100 * time.Millisecond}
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check that SQL parses",
		Long: `Parse each file (or stdin) and report whether it is valid SQL for the
configured dialect. Exits non-zero when any input fails.

With --watch the files are re-checked whenever they change, until
interrupted.`,
		Example: `  # Check a set of files
  sqlfront check models/*.sql

  # Keep checking while editing
  sqlfront check --watch query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-check files when they change")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if opts.Watch {
		if len(args) == 0 {
			return fmt.Errorf("--watch needs at least one file")
		}
		return cc.watchAndCheck(cmd.Context(), args, opts.Debounce)
	}

	sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	return cc.checkSources(cmd.Context(), sources)
}

func (c *CommandContext) checkSources(ctx context.Context, sources []*source) error {
	if err := c.parseSources(ctx, sources, false); err != nil {
		return err
	}

	results := make([]CheckResult, len(sources))
	failed := 0
	for i, src := range sources {
		results[i] = CheckResult{File: src.Name, OK: src.Err == nil, Statements: len(src.Stmts)}
		if src.Err != nil {
			results[i].Error = src.Err.Error()
			failed++
		}
	}

	r := c.Renderer
	if ok, err := r.Structured(results); ok {
		if err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res.OK {
				r.StatusLine(res.File, true, fmt.Sprintf("(%d statements)", res.Statements))
			} else {
				r.StatusLine(res.File, false, res.Error)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", errCheckFailed, failed, len(sources))
	}
	return nil
}

// checkFile reads and checks a single file. Failures are reported, not
// returned, so watching continues.
func (c *CommandContext) checkFile(ctx context.Context, name string) {
	sources, err := readSources(nil, []string{name})
	if err != nil {
		c.Renderer.StatusLine(name, false, err.Error())
		return
	}
	if err := c.checkSources(ctx, sources); err != nil && !errors.Is(err, errCheckFailed) {
		c.Logger.Error("check failed", "file", name, "error", err)
	}
}

// watchAndCheck checks files once, then again on every write until ctx
// is cancelled.
func (c *CommandContext) watchAndCheck(ctx context.Context, files []string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files, so watch the directories.
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("failed to read %s: %w", f, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	for _, f := range files {
		c.checkFile(ctx, f)
	}

	// Timers fire on their own goroutines; checks write output one at a
	// time and all of them finish before watchAndCheck returns.
	var (
		mu      sync.Mutex
		pending sync.WaitGroup
	)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			if t.Stop() {
				pending.Done()
			}
		}
		pending.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}

			// Debounce
			if t, ok := timers[abs]; ok && t.Stop() {
				pending.Done()
			}
			name := event.Name
			pending.Add(1)
			timers[abs] = time.AfterFunc(debounce, func() {
				defer pending.Done()
				mu.Lock()
				defer mu.Unlock()
				if ctx.Err() != nil {
					return
				}
				c.Logger.Debug("file changed, re-checking", "file", name)
				c.checkFile(ctx, name)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Error("watcher error", "error", err)
		}
	}
}
