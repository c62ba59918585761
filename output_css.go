package csstokens

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteCSS writes the tokens as a :root custom-property sheet
func WriteCSS(w io.Writer, result *ExtractResult) error {
	_, err := io.WriteString(w, buildCSS(result))
	return err
}

func buildCSS(result *ExtractResult) string {
	s := result.Summary
	names := make(map[string]int)
	var sections []string

	if len(s.Colors) > 0 {
		var sb strings.Builder
		sb.WriteString("  /* Colors */\n")
		for _, c := range s.Colors {
			name := uniqueName(names, "--color-"+toKebabCase(c.Name))
			fmt.Fprintf(&sb, "  %s: %s; /* %d uses */\n", name, c.Hex, c.Usage)
		}
		sections = append(sections, sb.String())
	}

	if len(s.Typography) > 0 {
		var sb strings.Builder
		sb.WriteString("  /* Typography */\n")
		for _, t := range s.Typography {
			base := "--font-" + toKebabCase(strings.TrimSuffix(t.Name, " Font"))
			fmt.Fprintf(&sb, "  %s: %s;\n", uniqueName(names, base), t.Family)
			fmt.Fprintf(&sb, "  %s: %s;\n", uniqueName(names, base+"-weight"), t.Weight)
		}
		sections = append(sections, sb.String())
	}

	if len(s.Spacing) > 0 {
		var sb strings.Builder
		sb.WriteString("  /* Spacing */\n")
		for _, sp := range s.Spacing {
			name := uniqueName(names, "--space-"+strconv.Itoa(sp.Pixels))
			fmt.Fprintf(&sb, "  %s: %s;\n", name, sp.Size)
		}
		sections = append(sections, sb.String())
	}

	return ":root {\n" + strings.Join(sections, "\n") + "}\n"
}

// uniqueName returns base, or base-N when base was already used.
func uniqueName(seen map[string]int, base string) string {
	seen[base]++
	if n := seen[base]; n > 1 {
		return fmt.Sprintf("%s-%d", base, n)
	}
	return base
}

func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	// Remove any non-alphanumeric characters except hyphens
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
