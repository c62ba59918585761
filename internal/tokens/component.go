package tokens

import (
	"regexp"
	"strings"
)

// componentDetector recognizes one component family by its selector
// conventions.
type componentDetector struct {
	name     string
	usage    string
	presence *regexp.Regexp
	variants *regexp.Regexp // first group is the variant suffix
}

var componentDetectors = []componentDetector{
	{
		name:     "Button Styles",
		usage:    "Interactive actions and calls to action",
		presence: regexp.MustCompile(`(?m)\.(?:btn|button)\b|(?:^|[\s,}])button\s*\{`),
		variants: regexp.MustCompile(`\.(?:btn|button)--?([a-zA-Z][a-zA-Z0-9]*)`),
	},
	{
		name:     "Card Styles",
		usage:    "Content containers and panels",
		presence: regexp.MustCompile(`\.(?:card|panel)\b`),
		variants: regexp.MustCompile(`\.(?:card|panel)--?([a-zA-Z][a-zA-Z0-9]*)`),
	},
	{
		name:     "Form Styles",
		usage:    "Inputs, fields and form layout",
		presence: regexp.MustCompile(`(?m)\.(?:form|input|field)\b|(?:^|[\s,}])(?:input|select|textarea)\s*[{\[:]`),
		variants: regexp.MustCompile(`\.(?:form|input|field)--?([a-zA-Z][a-zA-Z0-9]*)`),
	},
	{
		name:     "Modal Styles",
		usage:    "Overlays, dialogs and popups",
		presence: regexp.MustCompile(`\.(?:modal|dialog)\b`),
		variants: regexp.MustCompile(`\.(?:modal|dialog)--?([a-zA-Z][a-zA-Z0-9]*)`),
	},
}

// FileComponents holds the component families detected in a single file.
type FileComponents struct {
	Tokens []ComponentStyleToken
}

// ExtractComponents runs every detector over text. A family with no suffixed
// selectors still reports one variant.
func ExtractComponents(text string) FileComponents {
	fc := FileComponents{}

	for _, d := range componentDetectors {
		if !d.presence.MatchString(text) {
			continue
		}

		variants := make(map[string]bool)
		for _, m := range d.variants.FindAllStringSubmatch(text, -1) {
			variants[strings.ToLower(m[1])] = true
		}

		fc.Tokens = append(fc.Tokens, ComponentStyleToken{
			Name:     d.name,
			Variants: max(1, len(variants)),
			Usage:    d.usage,
		})
	}

	return fc
}
