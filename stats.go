package csstokens

import (
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ComputeFileStats measures a stylesheet with the CSS lexer. Rules counts
// every block (including at-rule blocks); Declarations counts `name: value`
// statements that end in `;` or `}`, so nested selectors such as `a:hover {`
// are not mistaken for declarations.
func ComputeFileStats(path, content string) FileStats {
	stats := FileStats{
		Path:  path,
		Lines: countLines(content),
		Chars: utf8.RuneCountInString(content),
	}

	lexer := css.NewLexer(parse.NewInputString(content))

	depth := 0
	atStart := true // next significant token begins a statement
	afterName := false
	pending := false // saw `name:` and waiting for the statement to end

	for {
		tt, _ := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal - just break
			break
		}

		switch tt {
		case css.WhitespaceToken:
			continue
		case css.CommentToken:
			stats.Comments++
			continue
		case css.LeftBraceToken:
			stats.Rules++
			depth++
			atStart, afterName, pending = true, false, false
			continue
		case css.RightBraceToken:
			if pending {
				stats.Declarations++
			}
			if depth > 0 {
				depth--
			}
			atStart, afterName, pending = true, false, false
			continue
		case css.SemicolonToken:
			if pending {
				stats.Declarations++
			}
			atStart, afterName, pending = true, false, false
			continue
		}

		switch {
		case afterName && tt == css.ColonToken:
			pending = true
		case atStart && depth > 0 && (tt == css.IdentToken || tt == css.CustomPropertyNameToken):
			afterName = true
			atStart = false
			continue
		}
		afterName = false
		atStart = false
	}

	return stats
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
