// internal/core/mouse.go
package core

import (
	"time"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

// dragKind is the granularity a drag extends at, fixed by the click
// count that started it.
type dragKind int

const (
	dragNone dragKind = iota
	dragChar
	dragWord
	dragLine
)

// multiClickWindow is the maximum gap between clicks at the same
// position that still counts as a double/triple click.
const multiClickWindow = 500 * time.Millisecond

// MouseDown handles a press at a document position (already translated
// from screen coordinates by the host). Single click places the caret,
// double-click selects the enclosing word, triple-click the whole line;
// each anchors a drag region at the matching granularity.
func (s *Session) MouseDown(pos types.TextPosition, at time.Time) {
	pos = s.doc.ClampPosition(pos)
	s.completion.Dismiss()

	if at.Sub(s.lastClickAt) <= multiClickWindow && pos.SamePlace(s.lastClickPos) {
		s.clickCount++
	} else {
		s.clickCount = 1
	}
	s.lastClickAt = at
	s.lastClickPos = pos

	switch ((s.clickCount - 1) % 3) + 1 {
	case 1:
		s.SetCaret(pos)
		s.ClearSelection()
		s.dragKind = dragChar
		s.dragAnchor = types.Selection{Start: pos, End: pos}
	case 2:
		region := s.WordAt(pos)
		s.dragKind = dragWord
		s.dragAnchor = region
		s.applyRegion(region)
	default:
		region := s.lineRegion(pos.Line)
		s.dragKind = dragLine
		s.dragAnchor = region
		s.applyRegion(region)
	}
}

// MouseDrag extends the active drag to a new position at the drag's
// granularity.
func (s *Session) MouseDrag(pos types.TextPosition) {
	if s.dragKind == dragNone {
		return
	}
	pos = s.doc.ClampPosition(pos)

	switch s.dragKind {
	case dragChar:
		anchor := s.dragAnchor.Start
		if anchor.SamePlace(pos) {
			s.SetCaret(pos)
			s.ClearSelection()
			return
		}
		s.SetSelection(types.Selection{Start: anchor, End: pos})
		s.SetCaret(pos)

	case dragWord:
		s.extendRegion(s.WordAt(pos))

	case dragLine:
		s.extendRegion(s.lineRegion(pos.Line))
	}
}

// MouseUp ends the drag.
func (s *Session) MouseUp() {
	s.dragKind = dragNone
}

// MouseActive reports whether a drag is in progress.
func (s *Session) MouseActive() bool {
	return s.dragKind != dragNone
}

// applyRegion selects a region with the caret at its active edge.
func (s *Session) applyRegion(region types.Selection) {
	if region.IsEmpty() {
		s.SetCaret(region.Start)
		s.ClearSelection()
		return
	}
	s.SetSelection(region)
	s.SetCaret(region.End)
}

// extendRegion grows the selection to cover both the drag anchor region
// and the region under the pointer, keeping the caret on the moving
// side.
func (s *Session) extendRegion(region types.Selection) {
	if region.Start.Before(s.dragAnchor.Start) {
		s.SetSelection(types.Selection{Start: s.dragAnchor.End, End: region.Start})
		s.SetCaret(region.Start)
		return
	}
	s.SetSelection(types.Selection{Start: s.dragAnchor.Start, End: region.End})
	s.SetCaret(region.End)
}
