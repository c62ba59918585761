package csstokens

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown writes the extraction result as a Markdown report
func WriteMarkdown(w io.Writer, result *ExtractResult) error {
	_, err := io.WriteString(w, buildMarkdown(result))
	return err
}

func buildMarkdown(result *ExtractResult) string {
	var sb strings.Builder
	s := result.Summary

	sb.WriteString("# Design Tokens\n\n")
	fmt.Fprintf(&sb, "Extracted from %d stylesheet(s).\n\n", len(result.Files))

	if s.IsEmpty() {
		sb.WriteString("No design tokens found.\n\n")
	}

	if len(s.Colors) > 0 {
		sb.WriteString("## Colors\n\n")
		sb.WriteString("| Name | Hex | Usage | Files |\n")
		sb.WriteString("|------|-----|------:|-------|\n")
		for _, c := range s.Colors {
			fmt.Fprintf(&sb, "| %s | `%s` | %d | %s |\n", c.Name, c.Hex, c.Usage, strings.Join(c.Files, ", "))
		}
		sb.WriteString("\n")
	}

	if len(s.RawColors) > 0 {
		sb.WriteString("## Other Color Values\n\n")
		sb.WriteString("| Value | Usage | Files |\n")
		sb.WriteString("|-------|------:|-------|\n")
		for _, c := range s.RawColors {
			fmt.Fprintf(&sb, "| `%s` | %d | %s |\n", c.Value, c.Usage, strings.Join(c.Files, ", "))
		}
		sb.WriteString("\n")
	}

	if len(s.Typography) > 0 {
		sb.WriteString("## Typography\n\n")
		sb.WriteString("| Name | Family | Weight | Usage |\n")
		sb.WriteString("|------|--------|--------|-------|\n")
		for _, t := range s.Typography {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", t.Name, t.Family, t.Weight, t.Usage)
		}
		sb.WriteString("\n")
		if len(result.Fonts.Families) > 0 {
			fmt.Fprintf(&sb, "Observed families: %s\n\n", strings.Join(result.Fonts.Families, ", "))
		}
		if len(result.Fonts.Weights) > 0 {
			fmt.Fprintf(&sb, "Observed weights: %s\n\n", strings.Join(result.Fonts.Weights, ", "))
		}
	}

	if len(s.Spacing) > 0 {
		sb.WriteString("## Spacing\n\n")
		sb.WriteString("| Size | Pixels | Usage |\n")
		sb.WriteString("|------|-------:|-------|\n")
		for _, sp := range s.Spacing {
			fmt.Fprintf(&sb, "| `%s` | %d | %s |\n", sp.Size, sp.Pixels, sp.Usage)
		}
		sb.WriteString("\n")
	}

	if len(s.Components) > 0 {
		sb.WriteString("## Components\n\n")
		sb.WriteString("| Name | Variants | Usage |\n")
		sb.WriteString("|------|---------:|-------|\n")
		for _, c := range s.Components {
			fmt.Fprintf(&sb, "| %s | %d | %s |\n", c.Name, c.Variants, c.Usage)
		}
		sb.WriteString("\n")
	}

	if len(result.Files) > 0 {
		sb.WriteString("## Stylesheets\n\n")
		sb.WriteString("| File | Lines | Rules | Declarations | Comments |\n")
		sb.WriteString("|------|------:|------:|-------------:|---------:|\n")
		for _, f := range result.Files {
			fmt.Fprintf(&sb, "| %s | %d | %d | %d | %d |\n", f.Path, f.Lines, f.Rules, f.Declarations, f.Comments)
		}
		sb.WriteString("\n")
	}

	if len(result.Diagnostics) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, d := range result.Diagnostics {
			fmt.Fprintf(&sb, "- `%s`: %v\n", d.Path, d.Err)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
