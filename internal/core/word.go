// internal/core/word.go
package core

import (
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

// Word boundaries come from the configured delimiter set; scanning
// never crosses a line edge.

func (s *Session) isDelim(r rune) bool { return s.delims[r] }

// nextWordBoundary finds the column after the word run starting at or
// after col: delimiters are skipped first, then word runes.
func (s *Session) nextWordBoundary(lineIdx, col int) int {
	runes := []rune(s.doc.LineText(lineIdx))
	i := col
	for i < len(runes) && s.isDelim(runes[i]) {
		i++
	}
	for i < len(runes) && !s.isDelim(runes[i]) {
		i++
	}
	return i
}

// prevWordBoundary mirrors nextWordBoundary going left.
func (s *Session) prevWordBoundary(lineIdx, col int) int {
	runes := []rune(s.doc.LineText(lineIdx))
	if col > len(runes) {
		col = len(runes)
	}
	i := col
	for i > 0 && s.isDelim(runes[i-1]) {
		i--
	}
	for i > 0 && !s.isDelim(runes[i-1]) {
		i--
	}
	return i
}

// WordAt returns the word region enclosing pos. On a delimiter it
// returns just that character, so double-clicking punctuation still
// selects something.
func (s *Session) WordAt(pos types.TextPosition) types.Selection {
	pos = s.doc.ClampPosition(pos)
	runes := []rune(s.doc.LineText(pos.Line))
	col := pos.Col
	if col >= len(runes) && col > 0 {
		col = len(runes) - 1
	}
	if len(runes) == 0 {
		return types.Selection{Start: pos, End: pos}
	}
	if s.isDelim(runes[col]) {
		return types.Selection{
			Start: types.TextPosition{Line: pos.Line, Col: col},
			End:   types.TextPosition{Line: pos.Line, Col: col + 1},
		}
	}
	start := col
	for start > 0 && !s.isDelim(runes[start-1]) {
		start--
	}
	end := col
	for end < len(runes) && !s.isDelim(runes[end]) {
		end++
	}
	return types.Selection{
		Start: types.TextPosition{Line: pos.Line, Col: start},
		End:   types.TextPosition{Line: pos.Line, Col: end},
	}
}

// lineRegion returns the whole-line region used by triple-click.
func (s *Session) lineRegion(lineIdx int) types.Selection {
	return types.Selection{
		Start: types.TextPosition{Line: lineIdx},
		End:   types.TextPosition{Line: lineIdx, Col: s.doc.Line(lineIdx).RuneCount()},
	}
}
