// Package tokens mines design-system tokens (colors, typography, spacing and
// component styles) out of raw stylesheet text.
package tokens

import (
	"errors"
	"fmt"
)

// ColorToken is one palette entry keyed by its canonical hex value.
type ColorToken struct {
	Hex   string   `json:"hex"`   // "#3b82f6" (lowercase, always 7 chars)
	Name  string   `json:"name"`  // "Primary Blue"
	Usage int      `json:"usage"` // Occurrences across all files
	Files []string `json:"files"` // Source paths, first-seen order
}

// RawColorToken is a functional color notation that was not normalized to hex
// (rgba, hsl, hsla). The literal text is the key.
type RawColorToken struct {
	Value string   `json:"value"` // "rgba(0, 0, 0, 0.5)"
	Usage int      `json:"usage"`
	Files []string `json:"files"`
}

// TypographyToken describes a font family signature found in the corpus.
type TypographyToken struct {
	Name   string `json:"name"`   // "Primary Font"
	Family string `json:"family"` // "Inter"
	Weight string `json:"weight"` // "400-700"
	Usage  string `json:"usage"`  // Fixed description
}

// SpacingToken is one step of the spacing scale.
type SpacingToken struct {
	Size   string `json:"size"`   // "16px" or "1rem"
	Pixels int    `json:"pixels"` // 16
	Usage  string `json:"usage"`
}

// ComponentStyleToken is a detected component family.
type ComponentStyleToken struct {
	Name     string `json:"name"`     // "Button Styles"
	Variants int    `json:"variants"` // Always >= 1
	Usage    string `json:"usage"`
}

// DesignSystemSummary is the merged, ranked result of one extraction run.
type DesignSystemSummary struct {
	Colors     []ColorToken          `json:"colors"`
	Typography []TypographyToken     `json:"typography"`
	Spacing    []SpacingToken        `json:"spacing"`
	Components []ComponentStyleToken `json:"components"`
	RawColors  []RawColorToken       `json:"raw_colors"`
}

// IsEmpty reports whether no token of any kind was found.
func (s DesignSystemSummary) IsEmpty() bool {
	return len(s.Colors) == 0 && len(s.Typography) == 0 && len(s.Spacing) == 0 &&
		len(s.Components) == 0 && len(s.RawColors) == 0
}

// FontInventory lists the distinct font-family names and font-weight values
// observed in the corpus, in input order.
type FontInventory struct {
	Families []string `json:"families"`
	Weights  []string `json:"weights"`
}

// File is one (path, content) pair handed to the engine. Err is set by the
// loader when the content could not be obtained.
type File struct {
	Path    string
	Content []byte
	Err     error
}

// Result is the outcome of one Aggregate call.
type Result struct {
	Summary     DesignSystemSummary
	Fonts       FontInventory
	Diagnostics []FileReadError
	Files       []string // Stylesheets that were extracted, input order
}

// ErrUndecodable marks stylesheet content that is not valid UTF-8.
var ErrUndecodable = errors.New("content is not valid UTF-8")

// FileReadError is recorded when a stylesheet's content could not be read or
// decoded. It never aborts a run.
type FileReadError struct {
	Path string
	Err  error
}

func (e FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e FileReadError) Unwrap() error {
	return e.Err
}
