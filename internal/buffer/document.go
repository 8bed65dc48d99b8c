// internal/buffer/document.go
package buffer

import (
	"fmt"
	"strings"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/utils"
)

// HeightFunc derives a line's height from its text. The rendering
// collaborator supplies it; the engine only propagates the results into
// per-line vertical offsets.
type HeightFunc func(text string) float64

// DefaultHeight gives every line a height of one row.
func DefaultHeight(string) float64 { return 1 }

// Document is the ordered sequence of lines making up the edited text.
// Indexing outside [0, LineCount) is a programming error and panics;
// clamping is the caller's responsibility (done in the position model
// and in movement operations).
type Document struct {
	lines    []*Line
	height   HeightFunc
	tabWidth int
}

// New creates a Document holding a single empty line.
func New(height HeightFunc, tabWidth int) *Document {
	if height == nil {
		height = DefaultHeight
	}
	if tabWidth <= 0 {
		tabWidth = 4
	}
	d := &Document{
		lines:    []*Line{{}},
		height:   height,
		tabWidth: tabWidth,
	}
	d.ReflowFrom(0)
	return d
}

// LineCount returns the number of lines. A document never has fewer
// than one line.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the line at index i.
func (d *Document) Line(i int) *Line {
	d.mustContain(i)
	return d.lines[i]
}

// LineText returns the text of line i.
func (d *Document) LineText(i int) string {
	d.mustContain(i)
	return d.lines[i].text
}

// SetLineText replaces the text of line i and re-derives vertical
// metrics from i downward.
func (d *Document) SetLineText(i int, text string) {
	d.mustContain(i)
	d.lines[i].text = text
	d.ReflowFrom(i)
}

// InsertLine inserts a new line at index i, shifting subsequent lines
// down. i may equal LineCount to append.
func (d *Document) InsertLine(i int, text string) {
	if i < 0 || i > len(d.lines) {
		panic(fmt.Sprintf("buffer: insert index %d out of bounds (0-%d)", i, len(d.lines)))
	}
	line := &Line{text: text}
	d.lines = append(d.lines, nil)
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = line
	d.ReflowFrom(i)
}

// RemoveLine deletes the line at index i. Removing the only line leaves
// a single empty line, preserving the at-least-one-line convention.
func (d *Document) RemoveLine(i int) {
	d.mustContain(i)
	if len(d.lines) == 1 {
		d.lines[0].text = ""
		d.ReflowFrom(0)
		return
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	if i >= len(d.lines) {
		i = len(d.lines) - 1
	}
	d.ReflowFrom(i)
}

// Text joins all lines with a newline separator.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, line := range d.lines {
		sb.WriteString(line.text)
		if i < len(d.lines)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// LongestLineWidth returns the visual width of the widest line, used by
// the host for horizontal-scroll sizing.
func (d *Document) LongestLineWidth() int {
	widest := 0
	for _, line := range d.lines {
		w := utils.VisualWidth(line.text, -1, d.tabWidth)
		if w > widest {
			widest = w
		}
	}
	return widest
}

// TotalHeight returns the vertical extent of the whole document.
func (d *Document) TotalHeight() float64 {
	last := d.lines[len(d.lines)-1]
	return last.offsetY + last.height
}

// TabWidth returns the configured tab stop width.
func (d *Document) TabWidth() int { return d.tabWidth }

// SetHeightFunc replaces the pluggable height function. The caller is
// expected to trigger a rebuild so offsets are re-derived.
func (d *Document) SetHeightFunc(height HeightFunc) {
	if height != nil {
		d.height = height
	}
}

// ReflowFrom re-derives indices, heights, vertical offsets and indent
// depth from line i downward. Every text mutation funnels through here
// so position-to-screen mapping stays correct.
func (d *Document) ReflowFrom(i int) {
	if i < 0 {
		i = 0
	}
	offset := 0.0
	if i > 0 {
		prev := d.lines[i-1]
		offset = prev.offsetY + prev.height
	}
	for ; i < len(d.lines); i++ {
		line := d.lines[i]
		line.index = i
		line.offsetY = offset
		line.height = d.height(line.text)
		line.indent = measureIndent(line.text, d.tabWidth)
		offset += line.height
	}
}

// ReflowLine re-derives metrics for line i from its predecessor only,
// letting incremental rebuilds walk the document one line at a time.
func (d *Document) ReflowLine(i int) {
	d.mustContain(i)
	offset := 0.0
	if i > 0 {
		prev := d.lines[i-1]
		offset = prev.offsetY + prev.height
	}
	line := d.lines[i]
	line.index = i
	line.offsetY = offset
	line.height = d.height(line.text)
	line.indent = measureIndent(line.text, d.tabWidth)
}

// ValidPosition reports whether p references an existing line and a
// column within [0, line rune count].
func (d *Document) ValidPosition(p types.TextPosition) bool {
	if p.Line < 0 || p.Line >= len(d.lines) {
		return false
	}
	return p.Col >= 0 && p.Col <= d.lines[p.Line].RuneCount()
}

// ValidSelection reports whether both selection endpoints reference
// existing lines and columns.
func (d *Document) ValidSelection(s types.Selection) bool {
	return d.ValidPosition(s.Start) && d.ValidPosition(s.End)
}

// ClampPosition bounds p to the nearest valid position.
func (d *Document) ClampPosition(p types.TextPosition) types.TextPosition {
	p.Line = utils.Clamp(p.Line, 0, len(d.lines)-1)
	p.Col = utils.Clamp(p.Col, 0, d.lines[p.Line].RuneCount())
	return p
}

// TextInRange extracts the text covered by a normalized selection.
func (d *Document) TextInRange(s types.Selection) string {
	s = s.Normalized()
	if !d.ValidSelection(s) || s.IsEmpty() {
		return ""
	}
	start, end := s.Start, s.End
	if start.Line == end.Line {
		text := d.lines[start.Line].text
		from := utils.RuneIndexToByteOffset(text, start.Col)
		to := utils.RuneIndexToByteOffset(text, end.Col)
		return text[from:to]
	}

	var sb strings.Builder
	startText := d.lines[start.Line].text
	sb.WriteString(startText[utils.RuneIndexToByteOffset(startText, start.Col):])
	sb.WriteByte('\n')
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteString(d.lines[i].text)
		sb.WriteByte('\n')
	}
	endText := d.lines[end.Line].text
	sb.WriteString(endText[:utils.RuneIndexToByteOffset(endText, end.Col)])
	return sb.String()
}

func (d *Document) mustContain(i int) {
	if i < 0 || i >= len(d.lines) {
		panic(fmt.Sprintf("buffer: line index %d out of bounds (0-%d)", i, len(d.lines)-1))
	}
}
