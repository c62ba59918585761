package csstokens

import (
	"fmt"
	"io"
	"strings"
)

// Reporter renders an ExtractResult as a human-readable terminal report
type Reporter struct {
	w         io.Writer
	useColors bool
	err       error
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// Err returns the first write error, if any.
func (r *Reporter) Err() error {
	return r.err
}

func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) header(title string) {
	r.printf("\n%s\n", RenderStyle(StyleCyan, title, r.useColors))
}

func (r *Reporter) gray(text string) string {
	return RenderStyle(StyleGray, text, r.useColors)
}

// PrintReport prints every token section, diagnostics and a summary line
func (r *Reporter) PrintReport(result *ExtractResult) {
	s := result.Summary

	if s.IsEmpty() {
		r.printf("No design tokens found.\n")
	}

	if len(s.Colors) > 0 {
		r.header(fmt.Sprintf("Colors (%d)", len(s.Colors)))
		for _, c := range s.Colors {
			r.printf("  %s %s  %-16s %4d uses  %s\n",
				Swatch(c.Hex, r.useColors), c.Hex, c.Name, c.Usage, r.gray(filesLabel(c.Files)))
		}
	}

	if len(s.RawColors) > 0 {
		r.header(fmt.Sprintf("Other color values (%d)", len(s.RawColors)))
		for _, c := range s.RawColors {
			r.printf("  %-28s %4d uses  %s\n", c.Value, c.Usage, r.gray(filesLabel(c.Files)))
		}
	}

	if len(s.Typography) > 0 {
		r.header(fmt.Sprintf("Typography (%d)", len(s.Typography)))
		for _, t := range s.Typography {
			r.printf("  %-16s %-24s %-8s %s\n", t.Name, t.Family, t.Weight, r.gray(t.Usage))
		}
		if len(result.Fonts.Families) > 0 {
			r.printf("  %s\n", r.gray("observed: "+strings.Join(result.Fonts.Families, ", ")))
		}
	}

	if len(s.Spacing) > 0 {
		r.header(fmt.Sprintf("Spacing (%d)", len(s.Spacing)))
		for _, sp := range s.Spacing {
			r.printf("  %-8s %-16s %s\n", sp.Size, spacingBar(sp.Pixels), r.gray(sp.Usage))
		}
	}

	if len(s.Components) > 0 {
		r.header(fmt.Sprintf("Components (%d)", len(s.Components)))
		for _, c := range s.Components {
			r.printf("  %-16s %2d variant(s)  %s\n", c.Name, c.Variants, r.gray(c.Usage))
		}
	}

	r.PrintDiagnostics(result.Diagnostics)
	r.PrintSummary(result)
}

// PrintDiagnostics prints files that could not be read
func (r *Reporter) PrintDiagnostics(diagnostics []FileReadError) {
	if len(diagnostics) == 0 {
		return
	}
	r.printf("\n%s\n", RenderStyle(StyleYellow, fmt.Sprintf("Warnings (%d)", len(diagnostics)), r.useColors))
	for _, d := range diagnostics {
		r.printf("  %s: %v\n", d.Path, d.Err)
	}
}

// PrintSummary prints the one-line completion summary
func (r *Reporter) PrintSummary(result *ExtractResult) {
	var lines, rules, decls int
	for _, f := range result.Files {
		lines += f.Lines
		rules += f.Rules
		decls += f.Declarations
	}

	line := fmt.Sprintf("✓ %d stylesheet(s), %d lines, %d rules, %d declarations",
		len(result.Files), lines, rules, decls)
	if result.Scan.FilesSkipped > 0 {
		line += fmt.Sprintf(" (skipped %d)", result.Scan.FilesSkipped)
	}
	r.printf("\n%s\n", RenderStyle(StyleGreen, line, r.useColors))
}

// filesLabel summarizes a file list, naming at most two files.
func filesLabel(files []string) string {
	switch {
	case len(files) == 0:
		return ""
	case len(files) <= 2:
		return strings.Join(files, ", ")
	default:
		return fmt.Sprintf("%s, %s +%d more", files[0], files[1], len(files)-2)
	}
}

// spacingBar draws one block per 4px step, capped at 16 blocks.
func spacingBar(pixels int) string {
	n := min(max(pixels/4, 1), 16)
	return strings.Repeat("▪", n)
}
