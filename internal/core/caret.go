// internal/core/caret.go
package core

import (
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/utils"
)

// Move performs one caret movement. In select mode the move extends (or
// creates) a selection anchored at the caret's previous resting point;
// otherwise any selection is dropped. Vertical movement aims at the
// remembered visual column so the caret tracks a ragged right edge.
func (s *Session) Move(dir types.MoveDirection, selecting, entireWord bool) {
	anchor := s.caret
	if selecting && s.selActive {
		anchor = s.sel.Start
	}

	target := s.target(dir, entireWord)

	switch dir {
	case types.MoveUp, types.MoveDown:
		// preferredX was primed by target(); keep it across rows.
		s.placeCaret(target)
	default:
		s.preferredX = -1
		s.placeCaret(target)
	}

	if !selecting {
		s.ClearSelection()
		return
	}
	if anchor.SamePlace(target) {
		s.ClearSelection()
		return
	}
	s.SetSelection(types.Selection{Start: anchor, End: target})
}

// target computes where one movement lands, clamped to the document.
func (s *Session) target(dir types.MoveDirection, entireWord bool) types.TextPosition {
	doc := s.doc
	pos := doc.ClampPosition(s.caret)
	lineLen := doc.Line(pos.Line).RuneCount()

	switch dir {
	case types.MoveLeft:
		if entireWord && pos.Col > 0 {
			return types.TextPosition{Line: pos.Line, Col: s.prevWordBoundary(pos.Line, pos.Col)}
		}
		if pos.Col > 0 {
			return types.TextPosition{Line: pos.Line, Col: pos.Col - 1}
		}
		if pos.Line > 0 {
			return types.TextPosition{Line: pos.Line - 1, Col: doc.Line(pos.Line - 1).RuneCount()}
		}
		return pos

	case types.MoveRight:
		if entireWord && pos.Col < lineLen {
			return types.TextPosition{Line: pos.Line, Col: s.nextWordBoundary(pos.Line, pos.Col)}
		}
		if pos.Col < lineLen {
			return types.TextPosition{Line: pos.Line, Col: pos.Col + 1}
		}
		if pos.Line < doc.LineCount()-1 {
			return types.TextPosition{Line: pos.Line + 1, Col: 0}
		}
		return pos

	case types.MoveUp:
		if pos.Line == 0 {
			return types.TextPosition{Line: 0, Col: 0}
		}
		return s.verticalTarget(pos, pos.Line-1)

	case types.MoveDown:
		if pos.Line == doc.LineCount()-1 {
			return types.TextPosition{Line: pos.Line, Col: lineLen}
		}
		return s.verticalTarget(pos, pos.Line+1)

	case types.MoveStartOfLine:
		return types.TextPosition{Line: pos.Line, Col: 0}

	case types.MoveEndOfLine:
		return types.TextPosition{Line: pos.Line, Col: lineLen}
	}
	return pos
}

// verticalTarget lands on toLine at the remembered visual column,
// priming it from the current caret when unset. Landing short on the
// target line marks the wrap-boundary preference so rendering keeps the
// caret visually at the row's end.
func (s *Session) verticalTarget(pos types.TextPosition, toLine int) types.TextPosition {
	if s.preferredX < 0 {
		s.preferredX = utils.VisualWidth(s.doc.LineText(pos.Line), pos.Col, s.cfg.TabWidth)
	}
	line := s.doc.LineText(toLine)
	col := s.colAtVisualX(line, s.preferredX)
	clamped := col == s.doc.Line(toLine).RuneCount() &&
		utils.VisualWidth(line, -1, s.cfg.TabWidth) < s.preferredX
	return types.TextPosition{Line: toLine, Col: col, PreferNextLine: clamped}
}

// colAtVisualX finds the rune index whose visual offset reaches x,
// clamping to the line end.
func (s *Session) colAtVisualX(line string, x int) int {
	count := len([]rune(line))
	for col := 0; col <= count; col++ {
		if utils.VisualWidth(line, col, s.cfg.TabWidth) >= x {
			return col
		}
	}
	return count
}
