// internal/buffer/sanitize.go
package buffer

import (
	"strings"
	"unicode"
)

// Sanitize prepares ingested text for storage: every line-break variant
// becomes a single '\n', non-printable characters other than newline
// and tab are stripped, and tabs are optionally expanded to the given
// stop width.
func Sanitize(text string, expandTabs bool, tabWidth int) string {
	text = NormalizeLineEndings(text)
	text = stripNonPrintable(text)
	if expandTabs {
		text = ExpandTabs(text, tabWidth)
	}
	return text
}

// NormalizeLineEndings folds CRLF, CR, vertical tab, form feed, NEL,
// LINE SEPARATOR and PARAGRAPH SEPARATOR into a single newline.
func NormalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
			sb.WriteByte('\n')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func stripNonPrintable(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == unicode.ReplacementChar || unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// ExpandTabs replaces each tab with spaces up to the next tab stop,
// measured per line.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	var sb strings.Builder
	sb.Grow(len(text))
	col := 0
	for _, r := range text {
		switch r {
		case '\n':
			sb.WriteByte('\n')
			col = 0
		case '\t':
			spaces := tabWidth - (col % tabWidth)
			for i := 0; i < spaces; i++ {
				sb.WriteByte(' ')
			}
			col += spaces
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

// SplitLines splits sanitized text into line texts. Unlike
// strings.Split on an empty string, an empty input yields one empty
// line, matching the document's at-least-one-line convention.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}
