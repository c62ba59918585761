package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/csstokens"
)

var extractCmd = &cobra.Command{
	Use:     "extract",
	Aliases: []string{"scan"},
	Short:   "Extract design tokens from stylesheets",
	Long: `Scan .css, .scss and .sass files under --source and report the color palette,
typography, spacing scale and component styles they use.

Unreadable files are reported as warnings and never abort the run.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runExtract,
}

func init() {
	addExtractFlags(extractCmd.Flags())
}

// addExtractFlags registers the presentation flags of extract.
func addExtractFlags(f *pflag.FlagSet) {
	f.StringP("format", "f", "text", "Output format: text|json|markdown|css")
	f.StringP("output", "o", "", "Write the report to a file instead of stdout")
	f.Bool("progress", false, "Show a progress bar on stderr")
	f.Bool("strict", false, "Exit 1 when any stylesheet could not be read (CI mode)")
}

func runExtract(cmd *cobra.Command, _ []string) (err error) {
	settings, err := buildOutputSettings()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	config := buildConfig(logger)
	if settings.Progress {
		config.Progress = newProgressReporter(cmd.ErrOrStderr())
	}

	result, err := csstokens.Extract(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if settings.Output != "" {
		f, err := os.Create(settings.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
		// Never write escape codes into files
		settings.Options.NoColors = true
	}

	if err := csstokens.WriteOutput(w, result, settings.Format, settings.Options); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if settings.Output != "" && !settings.Options.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d stylesheets)\n", settings.Output, len(result.Files))
	}

	// Exit code logic - "Soft Gate" approach: unreadable files only fail
	// the run in strict mode
	if settings.Strict && len(result.Diagnostics) > 0 {
		return errFailed
	}

	return nil
}
