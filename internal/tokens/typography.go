package tokens

import (
	"regexp"
	"strings"
)

var (
	fontFamilyPattern = regexp.MustCompile(`(?i)font-family\s*:\s*([^;{}]+)`)
	fontWeightPattern = regexp.MustCompile(`(?i)font-weight\s*:\s*([^;{}]+)`)
)

// fontSignature classifies a file by the presence of any of its markers.
type fontSignature struct {
	markers []string
	token   TypographyToken
}

var fontSignatures = []fontSignature{
	{
		markers: []string{"Inter"},
		token:   TypographyToken{Name: "Primary Font", Family: "Inter", Weight: "400-700", Usage: "Body text and headings"},
	},
	{
		markers: []string{"system-ui"},
		token:   TypographyToken{Name: "System Font", Family: "system-ui", Weight: "400-600", Usage: "Interface controls and labels"},
	},
	{
		markers: []string{"monospace", "Fira Code"},
		token:   TypographyToken{Name: "Monospace Font", Family: "Fira Code, monospace", Weight: "400", Usage: "Code blocks and technical content"},
	},
}

var defaultFont = TypographyToken{
	Name:   "Default Font",
	Family: "system-ui, sans-serif",
	Weight: "400-600",
	Usage:  "Fallback body text",
}

// FileTypography holds the font declarations of a single file. Families and
// weights are collected independently and never paired per rule.
type FileTypography struct {
	Families []string
	Weights  []string
	Tokens   []TypographyToken
}

// ExtractTypography collects font-family and font-weight values and
// classifies the text against the known family signatures.
func ExtractTypography(text string) FileTypography {
	ft := FileTypography{}

	families := make(map[string]bool)
	for _, m := range fontFamilyPattern.FindAllStringSubmatch(text, -1) {
		for _, name := range strings.Split(cleanValue(m[1]), ",") {
			name = strings.Trim(strings.TrimSpace(name), `"'`)
			if name == "" || families[name] {
				continue
			}
			families[name] = true
			ft.Families = append(ft.Families, name)
		}
	}

	weights := make(map[string]bool)
	for _, m := range fontWeightPattern.FindAllStringSubmatch(text, -1) {
		weight := cleanValue(m[1])
		if weight == "" || weights[weight] {
			continue
		}
		weights[weight] = true
		ft.Weights = append(ft.Weights, weight)
	}

	for _, sig := range fontSignatures {
		if sig.matches(families, text) {
			ft.Tokens = append(ft.Tokens, sig.token)
		}
	}
	if len(ft.Tokens) == 0 {
		ft.Tokens = append(ft.Tokens, defaultFont)
	}

	return ft
}

func (s fontSignature) matches(families map[string]bool, text string) bool {
	for _, marker := range s.markers {
		if families[marker] || strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// cleanValue trims a declaration value and drops a trailing !important.
func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, "!important")
	return strings.TrimSpace(value)
}
