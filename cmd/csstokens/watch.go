package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yacobolo/csstokens"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-extract design tokens whenever a stylesheet changes",
	Long: `Watch --source for stylesheet changes and re-run the full extraction after
each burst of edits. With --output the report file is rewritten on every change;
otherwise the report is printed to stdout.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringP("format", "f", "text", "Output format: text|json|markdown|css")
	f.StringP("output", "o", "", "Rewrite this file on every change instead of printing")
	f.Int("debounce", int(csstokens.DefaultDebounce/time.Millisecond), "Quiet period in milliseconds before re-extracting")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	settings, err := buildOutputSettings()
	if err != nil {
		return err
	}
	configureColor(settings.Options)

	logger := newLogger(cmd.ErrOrStderr())
	config := buildConfig(logger)
	status := newStatusPrinter(cmd.ErrOrStderr())

	watcher, err := csstokens.NewWatcher(csstokens.NewExtractor(config), csstokens.WatchOptions{
		Debounce: time.Duration(getInt("watch.debounce", 200)) * time.Millisecond,
		OnResult: func(result *csstokens.ExtractResult) {
			if err := publish(cmd.OutOrStdout(), result, settings); err != nil {
				status.failed(err)
				return
			}
			status.updated(result)
		},
		OnError: status.failed,
	})
	if err != nil {
		return err
	}

	if err := watcher.Start(cmd.Context()); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	status.watching(config.SourceDir)

	<-cmd.Context().Done()
	return watcher.Stop()
}

// publish writes one result to the output file or stdout.
func publish(stdout io.Writer, result *csstokens.ExtractResult, settings outputSettings) error {
	if settings.Output == "" {
		return csstokens.WriteOutput(stdout, result, settings.Format, settings.Options)
	}

	opts := settings.Options
	opts.NoColors = true

	tmp := settings.Output + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := csstokens.WriteOutput(f, result, settings.Format, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return os.Rename(tmp, settings.Output)
}

// configureColor applies --color/--no-color to fatih/color's global switch.
func configureColor(opts csstokens.OutputOptions) {
	switch {
	case opts.NoColors:
		color.NoColor = true
	case opts.UseColors:
		color.NoColor = false
	}
}

// statusPrinter writes one-line watch status updates.
type statusPrinter struct {
	w      io.Writer
	cyan   *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	now    func() time.Time
}

func newStatusPrinter(w io.Writer) *statusPrinter {
	return &statusPrinter{
		w:      w,
		cyan:   color.New(color.FgCyan, color.Bold),
		green:  color.New(color.FgGreen, color.Bold),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed, color.Bold),
		now:    time.Now,
	}
}

func (s *statusPrinter) stamp() string {
	return s.now().Format("15:04:05")
}

func (s *statusPrinter) watching(root string) {
	s.cyan.Fprintf(s.w, "👀 Watching %s for stylesheet changes (Ctrl+C to stop)\n", root)
}

func (s *statusPrinter) updated(result *csstokens.ExtractResult) {
	sum := result.Summary
	s.green.Fprintf(s.w, "✓ [%s] #%d: %d colors, %d fonts, %d spacing steps, %d components from %d stylesheet(s)\n",
		s.stamp(), result.Generation,
		len(sum.Colors), len(sum.Typography), len(sum.Spacing), len(sum.Components), len(result.Files))
	for _, d := range result.Diagnostics {
		s.yellow.Fprintf(s.w, "  ⚠ %s: %v\n", d.Path, d.Err)
	}
}

func (s *statusPrinter) failed(err error) {
	s.red.Fprintf(s.w, "✗ [%s] %v\n", s.stamp(), err)
}
