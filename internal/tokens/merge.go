package tokens

import (
	"slices"
	"sort"
)

const (
	maxColors  = 12
	maxSpacing = 8
)

// tally accumulates occurrence counts and file sets per key, remembering the
// order in which keys were first seen.
type tally[K comparable] struct {
	order  []K
	counts map[K]int
	files  map[K][]string
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{
		counts: make(map[K]int),
		files:  make(map[K][]string),
	}
}

func (t *tally[K]) add(key K, n int, path string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
	if !slices.Contains(t.files[key], path) {
		t.files[key] = append(t.files[key], path)
	}
}

// ranked returns keys by descending count; ties keep first-seen order.
func (t *tally[K]) ranked(limit int) []K {
	keys := slices.Clone(t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// fontKey is the dedupe key for typography tokens.
type fontKey struct {
	family string
	weight string
}

// extracted pairs a file path with its extraction output.
type extracted struct {
	path   string
	tokens *fileTokens
}

// merge reduces per-file results into one summary. Files must be given in
// input order: typography and component dedupes keep the first occurrence.
func merge(files []extracted) (DesignSystemSummary, FontInventory) {
	hexes := newTally[string]()
	raws := newTally[string]()

	var typography []TypographyToken
	seenFonts := make(map[fontKey]bool)

	spacing := make(map[int]SpacingToken)

	var components []ComponentStyleToken
	seenComponents := make(map[string]bool)

	var fonts FontInventory
	seenFamilies := make(map[string]bool)
	seenWeights := make(map[string]bool)

	for _, f := range files {
		ft := f.tokens

		for _, hex := range ft.colors.HexOrder {
			hexes.add(hex, ft.colors.Hex[hex], f.path)
		}
		for _, raw := range ft.colors.RawOrder {
			raws.add(raw, ft.colors.Raw[raw], f.path)
		}

		for _, t := range ft.typography.Tokens {
			key := fontKey{family: t.Family, weight: t.Weight}
			if seenFonts[key] {
				continue
			}
			seenFonts[key] = true
			typography = append(typography, t)
		}
		for _, family := range ft.typography.Families {
			if !seenFamilies[family] {
				seenFamilies[family] = true
				fonts.Families = append(fonts.Families, family)
			}
		}
		for _, weight := range ft.typography.Weights {
			if !seenWeights[weight] {
				seenWeights[weight] = true
				fonts.Weights = append(fonts.Weights, weight)
			}
		}

		for _, t := range ft.spacing.Tokens {
			// Measured px steps win over injected rem steps
			if existing, ok := spacing[t.Pixels]; ok && (!isRemToken(existing) || isRemToken(t)) {
				continue
			}
			spacing[t.Pixels] = t
		}

		for _, t := range ft.components.Tokens {
			if seenComponents[t.Name] {
				continue
			}
			seenComponents[t.Name] = true
			components = append(components, t)
		}
	}

	summary := DesignSystemSummary{
		Colors:     make([]ColorToken, 0, maxColors),
		Typography: make([]TypographyToken, 0, len(typography)),
		Spacing:    make([]SpacingToken, 0, maxSpacing),
		Components: make([]ComponentStyleToken, 0, len(components)),
		RawColors:  make([]RawColorToken, 0),
	}

	for _, hex := range hexes.ranked(maxColors) {
		summary.Colors = append(summary.Colors, ColorToken{
			Hex:   hex,
			Name:  ColorName(hex),
			Usage: hexes.counts[hex],
			Files: hexes.files[hex],
		})
	}
	for _, raw := range raws.ranked(maxColors) {
		summary.RawColors = append(summary.RawColors, RawColorToken{
			Value: raw,
			Usage: raws.counts[raw],
			Files: raws.files[raw],
		})
	}

	summary.Typography = append(summary.Typography, typography...)

	pixels := make([]int, 0, len(spacing))
	for px := range spacing {
		pixels = append(pixels, px)
	}
	sort.Ints(pixels)
	if len(pixels) > maxSpacing {
		pixels = pixels[:maxSpacing]
	}
	for _, px := range pixels {
		summary.Spacing = append(summary.Spacing, spacing[px])
	}

	summary.Components = append(summary.Components, components...)

	if fonts.Families == nil {
		fonts.Families = []string{}
	}
	if fonts.Weights == nil {
		fonts.Weights = []string{}
	}

	return summary, fonts
}
