package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/csstokens"
)

func stylesheetTree(t *testing.T, broken bool) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "base.css"),
		[]byte(`body { font-family: Inter; color: #3b82f6; padding: 16px; }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "button.scss"),
		[]byte(`.btn-primary { background: #3b82f6; }`), 0o644))
	if broken {
		require.NoError(t, os.WriteFile(filepath.Join(root, "broken.css"), []byte{0xff, 0xfe, 0x00}, 0o644))
	}
	return root
}

// runCLI executes the root command with args and returns what it printed.
// Every flag a test relies on must be passed explicitly since cobra keeps
// flag values between executions.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetKoanf()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExtractCommand_JSONToStdout(t *testing.T) {
	root := stylesheetTree(t, false)

	stdout, _, err := runCLI(t, "extract", "--source", root,
		"--format", "json", "--output", "", "--strict=false", "--progress=false")
	require.NoError(t, err)

	var out csstokens.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 2, out.Summary.FilesExtracted)
	require.NotEmpty(t, out.Tokens.Colors)
	assert.Equal(t, "#3b82f6", out.Tokens.Colors[0].Hex)
	assert.Equal(t, 2, out.Tokens.Colors[0].Usage)
}

func TestExtractCommand_WritesOutputFile(t *testing.T) {
	root := stylesheetTree(t, false)
	outPath := filepath.Join(t.TempDir(), "TOKENS.md")

	stdout, stderr, err := runCLI(t, "extract", "--source", root,
		"--format", "markdown", "--output", outPath, "--strict=false", "--progress=false")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Wrote "+outPath+" (2 stylesheets)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Design Tokens")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestExtractCommand_Strict(t *testing.T) {
	root := stylesheetTree(t, true)

	t.Run("soft gate by default", func(t *testing.T) {
		_, _, err := runCLI(t, "extract", "--source", root,
			"--format", "css", "--output", "", "--strict=false", "--progress=false")
		require.NoError(t, err)
	})

	t.Run("strict fails on unreadable files", func(t *testing.T) {
		stdout, _, err := runCLI(t, "extract", "--source", root,
			"--format", "css", "--output", "", "--strict", "--progress=false")
		require.ErrorIs(t, err, errFailed)
		assert.Equal(t, 1, exitCode(err))
		// The report is still written
		assert.Contains(t, stdout, "--color-primary-blue: #3b82f6;")
	})
}

func TestExtractCommand_MissingSource(t *testing.T) {
	_, _, err := runCLI(t, "extract", "--source", filepath.Join(t.TempDir(), "nope"),
		"--format", "json", "--output", "", "--strict=false", "--progress=false")
	require.ErrorIs(t, err, csstokens.ErrSourceNotFound)
	assert.Equal(t, 2, exitCode(err))
}

func TestExtractCommand_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "extract", "--source", t.TempDir(),
		"--format", "yaml", "--output", "", "--strict=false", "--progress=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRootCommand_DefaultsToExtract(t *testing.T) {
	root := stylesheetTree(t, false)

	stdout, _, err := runCLI(t, "--source", root, "--format", "css", "--output", "")
	require.NoError(t, err)
	assert.Contains(t, stdout, ":root {")
	assert.Contains(t, stdout, "--font-primary: Inter;")
}
