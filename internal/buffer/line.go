// internal/buffer/line.go
package buffer

import "unicode/utf8"

// Line is one row of the document. It owns its text and the derived
// vertical metrics the rendering collaborator maps positions with.
// Lines are created on split or document load and destroyed on merge;
// they are owned exclusively by the Document.
type Line struct {
	text    string
	index   int     // 0-based position within the document
	offsetY float64 // sum of the heights of all preceding lines
	height  float64
	indent  int // leading indent depth in tab stops
}

// Text returns the line's full text.
func (l *Line) Text() string { return l.text }

// Index returns the line's 0-based index within the document.
func (l *Line) Index() int { return l.index }

// OffsetY returns the vertical offset derived from preceding line
// heights.
func (l *Line) OffsetY() float64 { return l.offsetY }

// Height returns the line's own height.
func (l *Line) Height() float64 { return l.height }

// Indent returns the line's leading indent depth, counted in tab stops.
func (l *Line) Indent() int { return l.indent }

// RuneCount returns the number of runes in the line's text, which is
// also the maximum valid column index on the line.
func (l *Line) RuneCount() int { return utf8.RuneCountInString(l.text) }

// measureIndent counts leading indentation in tab-stop units: one per
// tab, one per run of tabWidth spaces.
func measureIndent(text string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	depth := 0
	spaces := 0
	for _, r := range text {
		switch r {
		case '\t':
			depth++
			spaces = 0
		case ' ':
			spaces++
			if spaces == tabWidth {
				depth++
				spaces = 0
			}
		default:
			return depth
		}
	}
	return depth
}
