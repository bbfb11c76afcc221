// Package main provides tests for the sqlfront CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlfront/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "sqlfront v")
}

func TestHelpListsCommands(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	for _, name := range []string{"parse", "tokens", "fmt", "check", "repl", "dialects"} {
		assert.Contains(t, buf.String(), name)
	}
}

func TestFormatFromStdin(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("select a from t"))
	cmd.SetArgs([]string{"fmt"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "SELECT\n  a\nFROM t;\n", buf.String())
}
