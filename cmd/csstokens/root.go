package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "csstokens",
	Short: "Design token extractor for CSS, SCSS and Sass",
	Long: `Mine the design system a codebase actually uses.
Scans stylesheets for colors, typography, spacing and component styles
and reports them as a terminal summary, JSON, Markdown or CSS variables.`,
	// Default behavior: run extract when no subcommand is given.
	// We must call loadConfig here because PreRunE of extractCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runExtract(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.BoolP("quiet", "q", false, "Only print warnings (exit code signals failures)")
	pf.Bool("color", false, "Force color output")
	pf.Bool("no-color", false, "Disable color output")
	pf.String("log-format", "text", "Log format: text|json")
	pf.String("config", ".csstokens.yaml", "Config file path")
	addDiscoveryFlags(pf)

	// The root command runs extract, so it accepts extract's flags too
	addExtractFlags(rootCmd.Flags())

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// addDiscoveryFlags registers the flags that control which stylesheets are
// read. Shared by extract, watch and serve.
func addDiscoveryFlags(f *pflag.FlagSet) {
	f.StringP("source", "s", ".", "Stylesheet root directory")
	f.StringSlice("include", nil, "Glob patterns (relative to source) for stylesheets to include")
	f.StringSlice("exclude", nil, "Glob patterns (relative to source) to exclude")
	f.Bool("gitignore", true, "Skip files matched by <source>/.gitignore")
	f.Int("concurrency", 0, "Files extracted in parallel (0 = GOMAXPROCS)")
	f.Int("cache", 256, "Per-file extraction cache entries (0 disables)")
}

// errFailed signals a non-zero exit after output was already written.
var errFailed = errors.New("extraction reported warnings")

func exitCode(err error) int {
	if errors.Is(err, errFailed) {
		return 1
	}
	return 2
}
