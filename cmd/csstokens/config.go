package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/csstokens"
)

const defaultConfigPath = ".csstokens.yaml"

var k = koanf.New(".")

// flagKeys maps CLI flag names onto config keys, so a flag and the file or
// environment setting it overrides share one koanf path.
var flagKeys = map[string]string{
	"verbose":     "verbose",
	"quiet":       "quiet",
	"color":       "color",
	"no-color":    "no-color",
	"log-format":  "log.format",
	"source":      "source",
	"include":     "extract.include",
	"exclude":     "extract.exclude",
	"gitignore":   "extract.gitignore",
	"concurrency": "extract.concurrency",
	"cache":       "extract.cache",
	"format":      "extract.format",
	"output":      "extract.output",
	"progress":    "extract.progress",
	"strict":      "extract.strict",
	"debounce":    "watch.debounce",
}

// envAliases maps env-derived keys back to top-level keys that contain a
// dash, which the underscore-to-dot mapping cannot produce.
var envAliases = map[string]string{
	"no.color": "no-color", // CSSTOKENS_NO_COLOR
}

// listKeys hold comma-separated lists when set from the environment.
var listKeys = map[string]bool{
	"extract.include": true,
	"extract.exclude": true,
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags. Explicitly set flags always win; flag defaults only
	// fill keys that no file or env var provided.
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(cmd.Flags(), f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSTOKENS_* prefix)
	if err := k.Load(env.ProviderWithValue("CSSTOKENS_", ".", func(key, value string) (string, any) {
		// CSSTOKENS_EXTRACT_FORMAT -> extract.format
		// CSSTOKENS_LOG_FORMAT -> log.format
		// CSSTOKENS_VERBOSE -> verbose
		key = strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(key, "CSSTOKENS_")),
			"_", ".",
		)
		if alias, ok := envAliases[key]; ok {
			key = alias
		}
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig(logger *slog.Logger) csstokens.Config {
	config := csstokens.Config{
		SourceDir:        getString("source", "."),
		RespectGitignore: getBool("extract.gitignore", true),
		Concurrency:      getInt("extract.concurrency", 0),
		CacheSize:        getInt("extract.cache", 256),
		Logger:           logger,
	}

	if includes := k.Strings("extract.include"); len(includes) > 0 {
		config.Includes = includes
	}
	if k.Exists("extract.exclude") {
		config.Excludes = k.Strings("extract.exclude")
	}
	// An unset exclude flag still loads as an empty list; keep the defaults
	if len(config.Excludes) == 0 {
		config.Excludes = nil
	}

	return config
}

// outputSettings holds the resolved presentation settings for extract.
type outputSettings struct {
	Format   csstokens.OutputFormat
	Output   string // File path; empty writes to stdout
	Options  csstokens.OutputOptions
	Progress bool
	Strict   bool
}

// buildOutputSettings resolves presentation settings from koanf state.
func buildOutputSettings() (outputSettings, error) {
	format, err := csstokens.ParseOutputFormat(getString("extract.format", "text"))
	if err != nil {
		return outputSettings{}, err
	}

	quiet := getBool("quiet", false)
	return outputSettings{
		Format: format,
		Output: getString("extract.output", ""),
		Options: csstokens.OutputOptions{
			UseColors: getBool("color", false),
			NoColors:  getBool("no-color", false),
			Quiet:     quiet,
		},
		Progress: getBool("extract.progress", false) && !quiet,
		Strict:   getBool("extract.strict", false),
	}, nil
}

// newLogger builds the CLI's structured logger. Logs always go to w
// (stderr) so they never mix with report output.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if getBool("verbose", false) {
		level = slog.LevelDebug
	}
	if getBool("quiet", false) {
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch getString("log.format", "text") {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// getString returns the string at key, or defaultVal when unset or empty.
func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBool returns the bool at key, or defaultVal when unset.
func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getInt returns the int at key, or defaultVal when unset.
func getInt(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}
