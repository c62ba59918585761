// Package csstokens extracts design-system tokens from stylesheet sources.
//
// csstokens scans a directory of .css, .scss and .sass files and mines the
// color palette, typography signatures, spacing scale and component-style
// inventory the stylesheets use. It is a heuristic pattern miner over raw
// text, not a CSS parser.
//
// # Extraction
//
// Extract tokens from a stylesheet directory:
//
//	config := csstokens.Config{
//		SourceDir: "web/styles",
//		Includes:  []string{"**/*.{css,scss,sass}"},
//	}
//	result, err := csstokens.Extract(ctx, config)
//
// In-memory content can be analyzed without touching the filesystem:
//
//	result, err := csstokens.Analyze(ctx, []csstokens.File{
//		{Path: "theme.css", Content: []byte(`.btn { color: #3b82f6; }`)},
//	})
//
// # Output
//
// Results are rendered with WriteOutput as a terminal report, JSON, Markdown
// or a CSS custom-property sheet.
//
// # CLI Tool
//
// csstokens also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/csstokens/cmd/csstokens@latest
package csstokens
