package csstokens

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *ExtractResult {
	return &ExtractResult{
		Summary: DesignSystemSummary{
			Colors: []ColorToken{
				{Hex: "#3b82f6", Name: "Primary Blue", Usage: 5, Files: []string{"a.css", "b.css", "c.css"}},
				{Hex: "#f5f5f5", Name: "Light Color", Usage: 2, Files: []string{"a.css"}},
				{Hex: "#fafafa", Name: "Light Color", Usage: 1, Files: []string{"b.css"}},
			},
			RawColors: []RawColorToken{
				{Value: "rgba(0, 0, 0, 0.5)", Usage: 1, Files: []string{"a.css"}},
			},
			Typography: []TypographyToken{
				{Name: "Primary Font", Family: "Inter", Weight: "400-700", Usage: "Body text and headings"},
			},
			Spacing: []SpacingToken{
				{Size: "8px", Pixels: 8, Usage: "Small gaps"},
				{Size: "1rem", Pixels: 16, Usage: "Tailwind spacing 4"},
			},
			Components: []ComponentStyleToken{
				{Name: "Button Styles", Variants: 3, Usage: "Interactive actions and calls to action"},
			},
		},
		Fonts: FontInventory{Families: []string{"Inter"}, Weights: []string{"400"}},
		Diagnostics: []FileReadError{
			{Path: "broken.css", Err: errors.New("permission denied")},
		},
		Files: []FileStats{
			{Path: "a.css", Lines: 10, Chars: 200, Rules: 3, Declarations: 7, Comments: 1},
		},
		Scan: ScanStats{FilesDiscovered: 4, FilesScanned: 3, FilesSkipped: 1},
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"md", OutputMarkdown, false},
		{"markdown", OutputMarkdown, false},
		{"css", OutputCSS, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, OutputText, DetermineOutputFormat(tt.in))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputJSON, OutputOptions{}))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)
	assert.Equal(t, JSONSummary{
		FilesDiscovered: 4,
		FilesScanned:    3,
		FilesSkipped:    1,
		FilesExtracted:  1,
		Colors:          3,
		RawColors:       1,
		Typography:      1,
		Spacing:         2,
		Components:      1,
		Diagnostics:     1,
	}, output.Summary)
	assert.Equal(t, "#3b82f6", output.Tokens.Colors[0].Hex)
	assert.Equal(t, []JSONDiagnostic{{File: "broken.css", Message: "permission denied"}}, output.Diagnostics)

	// Field names are part of the schema
	assert.Contains(t, buf.String(), `"raw_colors"`)
	assert.Contains(t, buf.String(), `"declarations": 7`)
}

func TestWriteJSON_EmptyCollectionsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &ExtractResult{}))

	assert.Contains(t, buf.String(), `"files": []`)
	assert.Contains(t, buf.String(), `"diagnostics": []`)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputMarkdown, OutputOptions{}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Design Tokens\n"))
	for _, want := range []string{
		"## Colors",
		"| Primary Blue | `#3b82f6` | 5 | a.css, b.css, c.css |",
		"## Other Color Values",
		"| Primary Font | Inter | 400-700 | Body text and headings |",
		"| `1rem` | 16 | Tailwind spacing 4 |",
		"| Button Styles | 3 | Interactive actions and calls to action |",
		"| a.css | 10 | 3 | 7 | 1 |",
		"## Warnings",
		"- `broken.css`: permission denied",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteMarkdown_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, &ExtractResult{}))
	assert.Contains(t, buf.String(), "No design tokens found.")
	assert.NotContains(t, buf.String(), "## Colors")
}

func TestWriteCSS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputCSS, OutputOptions{}))

	want := `:root {
  /* Colors */
  --color-primary-blue: #3b82f6; /* 5 uses */
  --color-light-color: #f5f5f5; /* 2 uses */
  --color-light-color-2: #fafafa; /* 1 uses */

  /* Typography */
  --font-primary: Inter;
  --font-primary-weight: 400-700;

  /* Spacing */
  --space-8: 8px;
  --space-16: 1rem;
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteCSS_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSS(&buf, &ExtractResult{}))
	assert.Equal(t, ":root {\n}\n", buf.String())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputText, OutputOptions{NoColors: true}))
	out := buf.String()

	for _, want := range []string{
		"Colors (3)",
		"#3b82f6  Primary Blue",
		"a.css, b.css +1 more",
		"Other color values (1)",
		"Typography (1)",
		"observed: Inter",
		"Spacing (2)",
		"8px      ▪▪",
		"Components (1)",
		"Warnings (1)",
		"broken.css: permission denied",
		"✓ 1 stylesheet(s), 10 lines, 3 rules, 7 declarations (skipped 1)",
	} {
		assert.Contains(t, out, want)
	}
	// No ANSI escapes without colors
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteText_Quiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputText, OutputOptions{NoColors: true, Quiet: true}))

	assert.Contains(t, buf.String(), "broken.css: permission denied")
	assert.NotContains(t, buf.String(), "Colors")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteOutput_PropagatesWriteErrors(t *testing.T) {
	for _, format := range []OutputFormat{OutputText, OutputJSON, OutputMarkdown, OutputCSS} {
		t.Run(string(format), func(t *testing.T) {
			err := WriteOutput(failingWriter{}, sampleResult(), format, OutputOptions{NoColors: true})
			require.Error(t, err)
		})
	}
}

func TestToKebabCase(t *testing.T) {
	assert.Equal(t, "primary-blue", toKebabCase("Primary Blue"))
	assert.Equal(t, "near-black", toKebabCase("Near_Black!"))
}
