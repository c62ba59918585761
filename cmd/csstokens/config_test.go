package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/csstokens"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".csstokens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// newFlagCommand builds a throwaway command carrying the CLI's flags, parsed
// from args.
func newFlagCommand(t *testing.T, configPath string, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.BoolP("verbose", "v", false, "")
	f.BoolP("quiet", "q", false, "")
	f.String("log-format", "text", "")
	f.String("config", configPath, "")
	addDiscoveryFlags(f)
	addExtractFlags(f)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
source: web/styles
verbose: true
log:
  format: json

extract:
  include:
    - "components/**/*.scss"
  gitignore: false
  concurrency: 4
  format: markdown

watch:
  debounce: 500
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "web/styles", k.String("source"))
	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "json", k.String("log.format"))
	assert.Equal(t, []string{"components/**/*.scss"}, k.Strings("extract.include"))
	assert.False(t, k.Bool("extract.gitignore"))
	assert.Equal(t, 4, k.Int("extract.concurrency"))
	assert.Equal(t, "markdown", k.String("extract.format"))
	assert.Equal(t, 500, k.Int("watch.debounce"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.csstokens.yaml"))

	config := buildConfig(nil)
	assert.Equal(t, ".", config.SourceDir)
	assert.Nil(t, config.Includes)
	assert.Nil(t, config.Excludes)
	assert.True(t, config.RespectGitignore)
	assert.Equal(t, 0, config.Concurrency)
	assert.Equal(t, 256, config.CacheSize)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
source: from-file
extract:
  strict: false
  include:
    - "*.css"
`)

	// Set env vars that should override config file
	t.Setenv("CSSTOKENS_SOURCE", "from-env")
	t.Setenv("CSSTOKENS_EXTRACT_STRICT", "true")
	t.Setenv("CSSTOKENS_EXTRACT_INCLUDE", "a/**/*.css, b/*.scss,")
	t.Setenv("CSSTOKENS_LOG_FORMAT", "json")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env", k.String("source"))
	assert.True(t, k.Bool("extract.strict"))
	assert.Equal(t, []string{"a/**/*.css", "b/*.scss"}, k.Strings("extract.include"))
	assert.Equal(t, "json", k.String("log.format"))
}

func TestEnvVarNoColor(t *testing.T) {
	resetKoanf()
	t.Setenv("CSSTOKENS_NO_COLOR", "true")

	require.NoError(t, loadConfigFromPath("/nonexistent/.csstokens.yaml"))

	assert.True(t, k.Bool("no-color"))
	assert.False(t, k.Exists("no.color"))

	settings, err := buildOutputSettings()
	require.NoError(t, err)
	assert.True(t, settings.Options.NoColors)
}

func TestBuildConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
source: src/css
extract:
  include:
    - "**/*.css"
  exclude:
    - "legacy/**"
  gitignore: false
  concurrency: 2
  cache: 0
`)
	require.NoError(t, loadConfigFromPath(configPath))

	logger := slog.New(slog.DiscardHandler)
	config := buildConfig(logger)
	assert.Equal(t, "src/css", config.SourceDir)
	assert.Equal(t, []string{"**/*.css"}, config.Includes)
	assert.Equal(t, []string{"legacy/**"}, config.Excludes)
	assert.False(t, config.RespectGitignore)
	assert.Equal(t, 2, config.Concurrency)
	assert.Equal(t, 0, config.CacheSize)
	assert.Same(t, logger, config.Logger)
}

func TestBuildConfig_EmptyExcludeKeepsDefaults(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
extract:
  exclude: []
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Nil(t, buildConfig(nil).Excludes)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	configPath := writeConfig(t, `
source: from-file
extract:
  format: json
  include:
    - "themes/*.css"
  concurrency: 3
`)

	t.Run("file beats flag defaults", func(t *testing.T) {
		resetKoanf()
		require.NoError(t, loadConfig(newFlagCommand(t, configPath)))

		assert.Equal(t, "from-file", k.String("source"))
		assert.Equal(t, "json", k.String("extract.format"))
		assert.Equal(t, 3, k.Int("extract.concurrency"))
		assert.Equal(t, []string{"themes/*.css"}, buildConfig(nil).Includes)
	})

	t.Run("explicit flags beat file", func(t *testing.T) {
		resetKoanf()
		cmd := newFlagCommand(t, configPath,
			"--source", "from-flag",
			"--format", "css",
			"--include", "a.css,b.css",
			"--concurrency", "8")
		require.NoError(t, loadConfig(cmd))

		config := buildConfig(nil)
		assert.Equal(t, "from-flag", config.SourceDir)
		assert.Equal(t, []string{"a.css", "b.css"}, config.Includes)
		assert.Equal(t, 8, config.Concurrency)
		assert.Equal(t, "css", k.String("extract.format"))
	})

	t.Run("explicit flags beat env", func(t *testing.T) {
		resetKoanf()
		t.Setenv("CSSTOKENS_EXTRACT_FORMAT", "markdown")

		require.NoError(t, loadConfig(newFlagCommand(t, configPath)))
		assert.Equal(t, "markdown", k.String("extract.format"))

		resetKoanf()
		require.NoError(t, loadConfig(newFlagCommand(t, configPath, "-f", "text")))
		assert.Equal(t, "text", k.String("extract.format"))
	})

	t.Run("defaults fill unset keys", func(t *testing.T) {
		resetKoanf()
		require.NoError(t, loadConfig(newFlagCommand(t, "/nonexistent/.csstokens.yaml")))

		assert.Equal(t, ".", k.String("source"))
		assert.True(t, k.Bool("extract.gitignore"))
		assert.Equal(t, 256, k.Int("extract.cache"))
		assert.Nil(t, buildConfig(nil).Includes)
	})
}

func TestLoadConfig_BadConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, "extract: [unterminated")
	err := loadConfigFromPath(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestBuildOutputSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		resetKoanf()

		settings, err := buildOutputSettings()
		require.NoError(t, err)
		assert.Equal(t, csstokens.OutputText, settings.Format)
		assert.Empty(t, settings.Output)
		assert.False(t, settings.Progress)
		assert.False(t, settings.Strict)
		assert.Equal(t, csstokens.OutputOptions{}, settings.Options)
	})

	t.Run("quiet suppresses progress", func(t *testing.T) {
		resetKoanf()
		require.NoError(t, k.Set("quiet", true))
		require.NoError(t, k.Set("extract.progress", true))
		require.NoError(t, k.Set("extract.format", "md"))

		settings, err := buildOutputSettings()
		require.NoError(t, err)
		assert.Equal(t, csstokens.OutputMarkdown, settings.Format)
		assert.True(t, settings.Options.Quiet)
		assert.False(t, settings.Progress)
	})

	t.Run("unknown format", func(t *testing.T) {
		resetKoanf()
		require.NoError(t, k.Set("extract.format", "yaml"))

		_, err := buildOutputSettings()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown output format "yaml"`)
	})
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		settings  map[string]any
		enabled   slog.Level
		disabled  slog.Level
		wantJSONs bool
	}{
		{"default warns", nil, slog.LevelWarn, slog.LevelInfo, false},
		{"verbose debugs", map[string]any{"verbose": true}, slog.LevelDebug, slog.LevelDebug - 1, false},
		{"quiet errors only", map[string]any{"quiet": true}, slog.LevelError, slog.LevelWarn, false},
		{"json format", map[string]any{"log.format": "json"}, slog.LevelWarn, slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKoanf()
			for key, value := range tt.settings {
				require.NoError(t, k.Set(key, value))
			}

			var buf bytes.Buffer
			logger := newLogger(&buf)
			assert.True(t, logger.Enabled(ctx, tt.enabled))
			assert.False(t, logger.Enabled(ctx, tt.disabled))

			logger.Error("boom")
			if tt.wantJSONs {
				assert.Contains(t, buf.String(), `"msg":"boom"`)
			} else {
				assert.Contains(t, buf.String(), "msg=boom")
			}
		})
	}
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// The generated file must load cleanly and reproduce the defaults
	resetKoanf()
	require.NoError(t, loadConfigFromPath(defaultConfigPath))
	config := buildConfig(nil)
	assert.Equal(t, ".", config.SourceDir)
	assert.Equal(t, csstokens.DefaultIncludes, config.Includes)
	assert.Equal(t, csstokens.DefaultExcludes, config.Excludes)
	assert.True(t, config.RespectGitignore)
	assert.Equal(t, 200, k.Int("watch.debounce"))
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(defaultConfigPath, []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(defaultConfigPath, []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(defaultConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "extract:")
	assert.Contains(t, string(data), "watch:")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "csstokens dev\n", out.String())
}

func TestGetters(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getString("extract.format", "default"))
	assert.False(t, getBool("extract.strict", false))
	assert.True(t, getBool("extract.gitignore", true))
	assert.Equal(t, 42, getInt("extract.cache", 42))

	require.NoError(t, k.Set("extract.format", ""))
	require.NoError(t, k.Set("extract.gitignore", false))
	require.NoError(t, k.Set("extract.cache", 0))
	assert.Equal(t, "default", getString("extract.format", "default"))
	assert.False(t, getBool("extract.gitignore", true))
	assert.Equal(t, 0, getInt("extract.cache", 42))
}
