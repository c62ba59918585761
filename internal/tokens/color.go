package tokens

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// #rgb or #rrggbb; longer hex runs (#rrggbbaa) fail the word boundary and are skipped
	hexColorPattern = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

	// rgb(), rgba(), hsl(), hsla() with a flat argument list
	colorFuncPattern = regexp.MustCompile(`(?i)\b(rgba|rgb|hsla|hsl)\(([^()]*)\)`)

	// Arguments of rgb() that can be converted to hex
	rgbArgsPattern = regexp.MustCompile(`^\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*$`)
)

// FileColors holds the color occurrences of a single file. Keys are kept in
// the order they were first discovered in the text.
type FileColors struct {
	Hex      map[string]int // canonical #rrggbb -> occurrences
	HexOrder []string
	Raw      map[string]int // literal rgba()/hsl()/hsla() -> occurrences
	RawOrder []string
}

// colorMatch is one color literal found in the text.
type colorMatch struct {
	pos int
	key string
	raw bool
}

// ExtractColors scans text for hex literals and color functions.
func ExtractColors(text string) FileColors {
	var matches []colorMatch

	for _, m := range hexColorPattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, colorMatch{
			pos: m[0],
			key: NormalizeHex(text[m[0]:m[1]]),
		})
	}

	for _, m := range colorFuncPattern.FindAllStringSubmatchIndex(text, -1) {
		literal := text[m[0]:m[1]]
		fn := strings.ToLower(text[m[2]:m[3]])
		args := text[m[4]:m[5]]

		if fn == "rgb" {
			if hex, ok := rgbToHex(args); ok {
				matches = append(matches, colorMatch{pos: m[0], key: hex})
				continue
			}
		}

		// Not numerically normalized: the literal is its own key
		matches = append(matches, colorMatch{pos: m[0], key: literal, raw: true})
	}

	// Discovery order is text order, regardless of which pattern matched
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].pos < matches[j].pos
	})

	fc := FileColors{
		Hex: make(map[string]int),
		Raw: make(map[string]int),
	}
	for _, m := range matches {
		if m.raw {
			if _, seen := fc.Raw[m.key]; !seen {
				fc.RawOrder = append(fc.RawOrder, m.key)
			}
			fc.Raw[m.key]++
			continue
		}
		if _, seen := fc.Hex[m.key]; !seen {
			fc.HexOrder = append(fc.HexOrder, m.key)
		}
		fc.Hex[m.key]++
	}

	return fc
}

// NormalizeHex lower-cases a hex literal and expands the 3-digit form
// (#abc -> #aabbcc).
func NormalizeHex(hex string) string {
	hex = strings.ToLower(hex)
	if len(hex) == 4 {
		return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	return hex
}

// rgbToHex converts "r, g, b" arguments to #rrggbb. Channels above 255 are
// clamped so the result is always 7 characters.
func rgbToHex(args string) (string, bool) {
	m := rgbArgsPattern.FindStringSubmatch(args)
	if m == nil {
		return "", false
	}

	var sb strings.Builder
	sb.WriteByte('#')
	for _, channel := range m[1:] {
		v, err := strconv.Atoi(channel)
		if err != nil {
			return "", false
		}
		fmt.Fprintf(&sb, "%02x", min(v, 255))
	}
	return sb.String(), true
}

// hexChannels splits a canonical #rrggbb into its channel values.
func hexChannels(hex string) (r, g, b int) {
	parse := func(s string) int {
		v, _ := strconv.ParseUint(s, 16, 8)
		return int(v)
	}
	return parse(hex[1:3]), parse(hex[3:5]), parse(hex[5:7])
}

// ColorName returns the semantic name of a canonical hex color: the fixed
// table first, then a rule over the channel values.
func ColorName(hex string) string {
	if name, ok := namedColors[hex]; ok {
		return name
	}

	r, g, b := hexChannels(hex)
	switch {
	case r > 200 && g > 200 && b > 200:
		return "Light Color"
	case r < 50 && g < 50 && b < 50:
		return "Dark Color"
	case r > g && r > b:
		return "Red Tone"
	case g > r && g > b:
		return "Green Tone"
	case b > r && b > g:
		return "Blue Tone"
	default:
		return "Custom Color"
	}
}
