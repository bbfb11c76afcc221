package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/internal/cli/testutil"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/mssql"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cfgWith(dialectName, out string) *config.Config {
	cfg := config.Default()
	if dialectName != "" {
		cfg.Dialect = dialectName
	}
	if out != "" {
		cfg.Output = out
	}
	return cfg
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		stdin   string
		wantOut []string
	}{
		{
			name:    "canonical text",
			stdin:   "select a ,b from t where a=1",
			wantOut: []string{"SELECT a, b FROM t WHERE a = 1;"},
		},
		{
			name:    "multiple statements",
			stdin:   "SELECT 1; SELECT 2",
			wantOut: []string{"SELECT 1;\nSELECT 2;"},
		},
		{
			name:    "json",
			cfg:     cfgWith("", "json"),
			stdin:   "SELECT 1",
			wantOut: []string{`"file": "-"`, `"kind": "Query"`, `"sql": "SELECT 1"`},
		},
		{
			name:    "yaml",
			cfg:     cfgWith("", "yaml"),
			stdin:   "DELETE FROM t",
			wantOut: []string{"kind: DeleteStmt", "sql: DELETE FROM t"},
		},
		{
			name:    "mssql brackets",
			cfg:     cfgWith("mssql", ""),
			stdin:   "SELECT [a b] FROM [t]",
			wantOut: []string{"SELECT [a b] FROM [t];"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.Run(t, NewParseCommand(), tt.cfg, tt.stdin)
			require.NoError(t, res.Err)
			for _, want := range tt.wantOut {
				assert.Contains(t, res.Stdout, want)
			}
			testutil.AssertNoANSI(t, res.Stdout)
		})
	}
}

func TestParseCommandFiles(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteSQLFile(t, dir, "a.sql", "select 1")
	b := testutil.WriteSQLFile(t, dir, "b.sql", "select 2")

	res := testutil.Run(t, NewParseCommand(), nil, "", a, b)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "-- "+a+"\nSELECT 1;")
	assert.Contains(t, res.Stdout, "-- "+b+"\nSELECT 2;")
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		stdin   string
		args    []string
		wantErr string
	}{
		{
			name:    "syntax error",
			stdin:   "SELECT FROM",
			wantErr: "sql parser error",
		},
		{
			name:    "tokenizer error",
			stdin:   `SELECT "open`,
			wantErr: "Expected close delimiter",
		},
		{
			name:    "missing file",
			args:    []string{filepath.Join(t.TempDir(), "missing.sql")},
			wantErr: "failed to read",
		},
		{
			name:    "unknown dialect",
			cfg:     cfgWith("oracle", ""),
			stdin:   "SELECT 1",
			wantErr: "unknown dialect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.Run(t, NewParseCommand(), tt.cfg, tt.stdin, tt.args...)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tt.wantErr)
		})
	}
}

func TestTokensCommand(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *config.Config
		args       []string
		stdin      string
		wantOut    []string
		notWantOut []string
	}{
		{
			name:       "keywords and words",
			stdin:      "SELECT a FROM t",
			wantOut:    []string{"KEYWORD", "SELECT", "WORD", "1:1", "1:8"},
			notWantOut: []string{"WHITESPACE"},
		},
		{
			name:    "with whitespace",
			args:    []string{"--whitespace"},
			stdin:   "SELECT\n1",
			wantOut: []string{"WHITESPACE", `\n`},
		},
		{
			name:    "comments only",
			args:    []string{"--comments"},
			stdin:   "SELECT 1 -- one\n/* two */",
			wantOut: []string{"line", "-- one", "block", "/* two */"},
		},
		{
			name:    "no comments",
			args:    []string{"--comments"},
			stdin:   "SELECT 1",
			wantOut: []string{"(no comments)"},
		},
		{
			name:    "json",
			cfg:     cfgWith("", "json"),
			stdin:   "SELECT 1",
			wantOut: []string{`"kind": "KEYWORD"`, `"text": "SELECT"`, `"line": 1`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.Run(t, NewTokensCommand(), tt.cfg, tt.stdin, tt.args...)
			require.NoError(t, res.Err)
			for _, want := range tt.wantOut {
				assert.Contains(t, res.Stdout, want)
			}
			for _, unwanted := range tt.notWantOut {
				assert.NotContains(t, res.Stdout, unwanted)
			}
		})
	}
}

func TestTokensCommandTooManyArgs(t *testing.T) {
	res := testutil.Run(t, NewTokensCommand(), nil, "", "a.sql", "b.sql")
	require.Error(t, res.Err)
}

func TestFmtCommand(t *testing.T) {
	res := testutil.Run(t, NewFmtCommand(), nil, "select a, b from t where x = 1")
	require.NoError(t, res.Err)
	assert.Equal(t, "SELECT\n  a,\n  b\nFROM t\nWHERE\n  x = 1;\n", res.Stdout)
}

func TestFmtCommandComments(t *testing.T) {
	res := testutil.Run(t, NewFmtCommand(), nil, "-- lead\nSELECT 1", "--comments")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "-- lead\n")
	assert.Contains(t, res.Stdout, "SELECT\n  1;")
}

func TestFmtCommandWrite(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSQLFile(t, dir, "q.sql", "select a from t")

	res := testutil.Run(t, NewFmtCommand(), nil, "", "-w", path)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT\n  a\nFROM t;\n", string(data))
}

func TestFmtCommandLeavesFilesOnError(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteSQLFile(t, dir, "good.sql", "select 1")
	bad := testutil.WriteSQLFile(t, dir, "bad.sql", "select from")

	res := testutil.Run(t, NewFmtCommand(), nil, "", "-w", good, bad)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), bad)

	data, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "select 1", string(data))
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteSQLFile(t, dir, "good.sql", "SELECT 1; SELECT 2;")
	bad := testutil.WriteSQLFile(t, dir, "bad.sql", "SELECT FROM")

	t.Run("all pass", func(t *testing.T) {
		res := testutil.Run(t, NewCheckCommand(), nil, "", good)
		require.NoError(t, res.Err)
		assert.Contains(t, res.Stdout, "✓ "+good)
		assert.Contains(t, res.Stdout, "(2 statements)")
	})

	t.Run("one fails", func(t *testing.T) {
		res := testutil.Run(t, NewCheckCommand(), nil, "", good, bad)
		require.Error(t, res.Err)
		require.ErrorIs(t, res.Err, errCheckFailed)
		assert.Contains(t, res.Err.Error(), "1 of 2 inputs")
		assert.Contains(t, res.Stdout, "✗ "+bad)
		assert.Contains(t, res.Stdout, "sql parser error")
	})

	t.Run("json", func(t *testing.T) {
		res := testutil.Run(t, NewCheckCommand(), cfgWith("", "json"), "", good)
		require.NoError(t, res.Err)
		assert.Contains(t, res.Stdout, `"ok": true`)
		assert.Contains(t, res.Stdout, `"statements": 2`)
	})

	t.Run("watch needs files", func(t *testing.T) {
		res := testutil.Run(t, NewCheckCommand(), nil, "SELECT 1", "--watch")
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "--watch")
	})
}

// syncBuffer is a bytes.Buffer safe for the watcher's timer goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRechecksOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteSQLFile(t, dir, "query.sql", "SELECT 1;")

	var out syncBuffer
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   slog.New(slog.DiscardHandler),
		Dialect:  generic.Generic,
		Renderer: output.NewRendererWithTTY(&out, &out, false, output.ModeText),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- cc.watchAndCheck(ctx, []string{file}, 10*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "✓ "+file)
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(file, []byte("SELECT FROM"), 0o600))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "✗ "+file)
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchAndCheck did not return after cancel")
	}
	assert.Contains(t, out.String(), "sql parser error")
}

func TestWatchMissingFile(t *testing.T) {
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   slog.New(slog.DiscardHandler),
		Dialect:  generic.Generic,
		Renderer: output.NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, output.ModeText),
	}
	err := cc.watchAndCheck(context.Background(), []string{filepath.Join(t.TempDir(), "nope.sql")}, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.sql")
}

func TestDialectsCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		res := testutil.Run(t, NewDialectsCommand(), cfgWith("mssql", ""), "")
		require.NoError(t, res.Err)
		for _, name := range []string{"generic", "ansi", "postgres", "mssql", "mysql"} {
			assert.Contains(t, res.Stdout, name)
		}
		assert.Contains(t, res.Stdout, `" [`)
		assert.Contains(t, res.Stdout, "*")
	})

	t.Run("yaml", func(t *testing.T) {
		res := testutil.Run(t, NewDialectsCommand(), cfgWith("", "yaml"), "")
		require.NoError(t, res.Err)
		assert.Contains(t, res.Stdout, "- name: generic\n")
		assert.Contains(t, res.Stdout, "- name: mysql\n")
	})
}

func newTestSession(t *testing.T) (*replSession, *testutil.TestRenderer) {
	t.Helper()
	tr := testutil.NewTestRenderer(output.ModeText, false)
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   slog.New(slog.DiscardHandler),
		Dialect:  generic.Generic,
		Renderer: tr.Renderer,
	}
	return &replSession{cc: cc}, tr
}

func TestReplSession(t *testing.T) {
	t.Run("multi-line statement", func(t *testing.T) {
		s, tr := newTestSession(t)
		assert.False(t, s.handleLine("select a"))
		assert.Equal(t, replContinuePrompt, s.prompt())
		assert.Empty(t, tr.Output())

		assert.False(t, s.handleLine("from t;"))
		assert.Equal(t, replPrompt, s.prompt())
		assert.Equal(t, "SELECT a FROM t;\n", tr.Output())
	})

	t.Run("parse error keeps shell running", func(t *testing.T) {
		s, tr := newTestSession(t)
		assert.False(t, s.handleLine("SELECT FROM;"))
		assert.Contains(t, tr.ErrorOutput(), "sql parser error")
		assert.Equal(t, replPrompt, s.prompt())
	})

	t.Run("switch dialect", func(t *testing.T) {
		s, tr := newTestSession(t)
		assert.False(t, s.handleLine(".dialect mssql"))
		assert.Equal(t, "mssql", s.cc.Dialect.Name())
		assert.Contains(t, tr.Output(), "dialect set to mssql")

		tr.Reset()
		s.handleLine("SELECT [x];")
		assert.Equal(t, "SELECT [x];\n", tr.Output())
	})

	t.Run("show and reject dialect", func(t *testing.T) {
		s, tr := newTestSession(t)
		s.handleLine(".dialect")
		assert.Equal(t, "generic\n", tr.Output())

		s.handleLine(".dialect oracle")
		assert.Contains(t, tr.ErrorOutput(), "unknown dialect")
		assert.Equal(t, "generic", s.cc.Dialect.Name())
	})

	t.Run("tokens", func(t *testing.T) {
		s, tr := newTestSession(t)
		s.handleLine(".tokens SELECT 1")
		assert.Contains(t, tr.Output(), "KEYWORD")
		assert.Contains(t, tr.Output(), "NUMBER")
	})

	t.Run("help and unknown", func(t *testing.T) {
		s, tr := newTestSession(t)
		s.handleLine(".help")
		assert.Contains(t, tr.Output(), ".dialect [NAME]")

		s.handleLine(".frobnicate")
		assert.Contains(t, tr.ErrorOutput(), "unknown command: .frobnicate")
	})

	t.Run("quit", func(t *testing.T) {
		s, _ := newTestSession(t)
		assert.True(t, s.handleLine(".quit"))
		assert.True(t, s.handleLine(".EXIT"))
	})

	t.Run("reset drops pending input", func(t *testing.T) {
		s, tr := newTestSession(t)
		s.handleLine("SELECT")
		s.reset()
		assert.Equal(t, replPrompt, s.prompt())
		s.handleLine("SELECT 2;")
		assert.Equal(t, "SELECT 2;\n", tr.Output())
	})
}
