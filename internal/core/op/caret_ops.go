// internal/core/op/caret_ops.go
//
// Caret and selection operations. These complete in a single step but
// run through the same queue as edits so a click cannot land in the
// middle of a partially applied paste.
package op

import (
	"fmt"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

// PlaceCaret moves the caret to a clamped position and drops any
// active selection.
type PlaceCaret struct {
	Pos types.TextPosition
}

// NewPlaceCaret creates a caret placement.
func NewPlaceCaret(pos types.TextPosition) *PlaceCaret {
	return &PlaceCaret{Pos: pos}
}

func (o *PlaceCaret) Name() string { return "PlaceCaret" }

func (o *PlaceCaret) step(ed EditorInterface) (Result, error) {
	ed.SetCaret(ed.Document().ClampPosition(o.Pos))
	ed.ClearSelection()
	return Done, nil
}

// SetSelection activates an explicit selection, leaving the caret at
// the selection's moving end.
type SetSelection struct {
	Sel types.Selection
}

// NewSetSelection creates a selection activation.
func NewSetSelection(sel types.Selection) *SetSelection {
	return &SetSelection{Sel: sel}
}

func (o *SetSelection) Name() string { return "SetSelection" }

func (o *SetSelection) step(ed EditorInterface) (Result, error) {
	if !ed.Document().ValidSelection(o.Sel) {
		return Done, fmt.Errorf("%w: %v", ErrInvalidSelection, o.Sel)
	}
	ed.SetSelection(o.Sel)
	ed.SetCaret(o.Sel.End)
	return Done, nil
}

// SelectAll selects the whole document with the caret at its end.
type SelectAll struct{}

// NewSelectAll creates a whole-document selection.
func NewSelectAll() *SelectAll { return &SelectAll{} }

func (o *SelectAll) Name() string { return "SelectAll" }

func (o *SelectAll) step(ed EditorInterface) (Result, error) {
	doc := ed.Document()
	last := doc.LineCount() - 1
	sel := types.Selection{
		End: types.TextPosition{Line: last, Col: doc.Line(last).RuneCount()},
	}
	ed.SetSelection(sel)
	ed.SetCaret(sel.End)
	return Done, nil
}

// MoveCaret performs one directional movement, optionally extending the
// selection or jumping whole words.
type MoveCaret struct {
	Dir        types.MoveDirection
	Selecting  bool
	EntireWord bool
}

// NewMoveCaret creates a caret movement.
func NewMoveCaret(dir types.MoveDirection, selecting, entireWord bool) *MoveCaret {
	return &MoveCaret{Dir: dir, Selecting: selecting, EntireWord: entireWord}
}

func (o *MoveCaret) Name() string { return "MoveCaret" }

func (o *MoveCaret) step(ed EditorInterface) (Result, error) {
	ed.Move(o.Dir, o.Selecting, o.EntireWord)
	return Done, nil
}
