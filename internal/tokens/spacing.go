package tokens

import (
	"regexp"
	"strconv"
	"strings"
)

var spacingPattern = regexp.MustCompile(`\b(?:margin|padding|gap|top|right|bottom|left|width|height)\s*:\s*(\d+)px`)

// spacingScale is the canonical pixel scale values are bucketed into.
var spacingScale = []SpacingToken{
	{Size: "4px", Pixels: 4, Usage: "Hairline gaps and icon padding"},
	{Size: "8px", Pixels: 8, Usage: "Tight spacing between related elements"},
	{Size: "12px", Pixels: 12, Usage: "Compact component padding"},
	{Size: "16px", Pixels: 16, Usage: "Default component padding"},
	{Size: "20px", Pixels: 20, Usage: "Comfortable inline spacing"},
	{Size: "24px", Pixels: 24, Usage: "Section padding"},
	{Size: "32px", Pixels: 32, Usage: "Spacing between content groups"},
	{Size: "40px", Pixels: 40, Usage: "Large layout gaps"},
	{Size: "48px", Pixels: 48, Usage: "Section separation"},
	{Size: "64px", Pixels: 64, Usage: "Page-level whitespace"},
}

// remScale is appended whenever a file uses rem units or Tailwind.
var remScale = []SpacingToken{
	{Size: "0.25rem", Pixels: 4, Usage: "Tailwind spacing 1"},
	{Size: "0.5rem", Pixels: 8, Usage: "Tailwind spacing 2"},
	{Size: "1rem", Pixels: 16, Usage: "Tailwind spacing 4"},
	{Size: "1.5rem", Pixels: 24, Usage: "Tailwind spacing 6"},
	{Size: "2rem", Pixels: 32, Usage: "Tailwind spacing 8"},
}

var tailwindMarkers = []string{"@tailwind", "tailwindcss"}

// FileSpacing holds the spacing data of a single file.
type FileSpacing struct {
	Histogram map[int]int // pixel value -> occurrences
	Tokens    []SpacingToken
}

// ExtractSpacing measures pixel values of layout properties and maps them
// onto the canonical scale.
func ExtractSpacing(text string) FileSpacing {
	fs := FileSpacing{Histogram: make(map[int]int)}

	for _, m := range spacingPattern.FindAllStringSubmatch(text, -1) {
		px, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		fs.Histogram[px]++
	}

	// A scale step counts when measured or when "<n>px" appears anywhere
	for _, step := range spacingScale {
		if fs.Histogram[step.Pixels] > 0 || strings.Contains(text, step.Size) {
			fs.Tokens = append(fs.Tokens, step)
		}
	}

	if usesRemScale(text) {
		fs.Tokens = append(fs.Tokens, remScale...)
	}

	return fs
}

func usesRemScale(text string) bool {
	if strings.Contains(text, "rem") {
		return true
	}
	for _, marker := range tailwindMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func isRemToken(t SpacingToken) bool {
	return strings.HasSuffix(t.Size, "rem")
}
