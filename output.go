package csstokens

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputFormat selects how an ExtractResult is rendered
type OutputFormat string

// Supported output formats
const (
	OutputText     OutputFormat = "text"
	OutputJSON     OutputFormat = "json"
	OutputMarkdown OutputFormat = "markdown"
	OutputCSS      OutputFormat = "css"
)

// OutputOptions controls presentation details
type OutputOptions struct {
	UseColors bool // Force colors in the text report
	NoColors  bool // Disable colors even on a terminal
	Quiet     bool // Text report prints warnings only
}

// ParseOutputFormat resolves a format name. The empty string selects text.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	case "markdown", "md":
		return OutputMarkdown, nil
	case "css":
		return OutputCSS, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, markdown or css)", name)
	}
}

// DetermineOutputFormat selects the output format from the flag value,
// falling back to the text report for unknown names.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	format, err := ParseOutputFormat(formatFlag)
	if err != nil {
		return OutputText
	}
	return format
}

// WriteOutput writes the extraction result in the specified format
func WriteOutput(w io.Writer, result *ExtractResult, format OutputFormat, opts OutputOptions) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, result)
	case OutputMarkdown:
		return WriteMarkdown(w, result)
	case OutputCSS:
		return WriteCSS(w, result)
	default:
		reporter := NewReporter(w, shouldUseColors(opts))
		if opts.Quiet {
			reporter.PrintDiagnostics(result.Diagnostics)
			return reporter.Err()
		}
		reporter.PrintReport(result)
		return reporter.Err()
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(opts OutputOptions) bool {
	// Explicit flags win
	if opts.NoColors {
		return false
	}
	if opts.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}
