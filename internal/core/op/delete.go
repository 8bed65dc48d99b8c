// internal/core/op/delete.go
package op

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/buffer"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core/history"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/utils"
)

// deleteMode selects the removal geometry. User-facing range deletes
// treat the end line's break as its first unit, so an end column of c
// removes the break plus the first c-1 characters of that line. The
// exact and spliced modes reverse a recorded insert instead and derive
// the geometry from the inserted text.
type deleteMode int

const (
	deleteRange deleteMode = iota
	deleteExact
	deleteSpliced
)

const (
	delPrepare = iota
	delInterior
	delFinalLine
)

// DeleteText removes a text range, one line per step. Interior lines of
// a multi-line range are dropped one at a time so the operation stays
// within the per-step work bound.
type DeleteText struct {
	Sel          types.Selection
	AddToHistory bool
	// Bracket wraps the recorded action in milestones so it undoes as
	// its own unit. Composites that manage their own grouping leave it
	// off.
	Bracket bool

	mode     deleteMode
	segs     []string // exact/spliced: the inserted segments to peel off
	phase    int
	norm     types.Selection
	endCol   int // characters to drop from the end line
	removed  []string
	interior int
	before   types.EditorState
}

// NewDeleteText creates a range delete. History recording also brackets
// the action in milestones.
func NewDeleteText(sel types.Selection, addToHistory bool) *DeleteText {
	return &DeleteText{Sel: sel, AddToHistory: addToHistory, Bracket: addToHistory}
}

// deleteForInsert builds the inverse of a recorded insert action.
func deleteForInsert(n history.Node) *DeleteText {
	mode := deleteExact
	if n.Spliced {
		mode = deleteSpliced
	}
	return &DeleteText{
		Sel:  types.Selection{Start: n.Start, End: n.Start},
		mode: mode,
		segs: buffer.SplitLines(n.Text),
	}
}

func (o *DeleteText) Name() string { return "DeleteText" }

func (o *DeleteText) step(ed EditorInterface) (Result, error) {
	switch o.phase {
	case delPrepare:
		return o.prepare(ed)
	case delInterior:
		return o.removeInterior(ed)
	default:
		return o.removeFinalLine(ed)
	}
}

func (o *DeleteText) prepare(ed EditorInterface) (Result, error) {
	doc := ed.Document()

	switch o.mode {
	case deleteRange:
		if !doc.ValidSelection(o.Sel) {
			return Done, fmt.Errorf("%w: %v", ErrInvalidSelection, o.Sel)
		}
		o.norm = o.Sel.Normalized()
		if o.norm.IsEmpty() {
			return Done, nil
		}
		// The end line's leading break counts as unit zero.
		o.endCol = o.norm.End.Col - 1
		if o.endCol < 0 {
			o.endCol = 0
		}
	case deleteExact, deleteSpliced:
		o.norm = types.Selection{
			Start: o.Sel.Start,
			End:   insertEnd(o.Sel.Start, o.segs),
		}
		o.endCol = utf8.RuneCountInString(o.segs[len(o.segs)-1])
	}

	o.before = ed.CaptureState()
	if o.Bracket {
		ed.History().Boundary()
	}
	start, end := o.norm.Start, o.norm.End

	if start.Line == end.Line {
		line := doc.LineText(start.Line)
		from := utils.RuneIndexToByteOffset(line, start.Col)
		to := utils.RuneIndexToByteOffset(line, end.Col)
		o.removed = []string{line[from:to]}
		doc.SetLineText(start.Line, line[:from]+line[to:])
		return o.finalize(ed)
	}

	line := doc.LineText(start.Line)
	cut := utils.RuneIndexToByteOffset(line, start.Col)
	o.removed = []string{line[cut:]}
	doc.SetLineText(start.Line, line[:cut])
	o.interior = end.Line - start.Line - 1
	o.phase = delInterior
	return Pending, nil
}

func (o *DeleteText) removeInterior(ed EditorInterface) (Result, error) {
	doc := ed.Document()
	if o.interior > 0 {
		at := o.norm.Start.Line + 1
		o.removed = append(o.removed, doc.LineText(at))
		doc.RemoveLine(at)
		o.interior--
		return Pending, nil
	}
	o.phase = delFinalLine
	return Pending, nil
}

// removeFinalLine peels the leading endCol characters off what is now
// the line after the truncated start line, then joins the remainder
// back onto the start line. The spliced inverse keeps the line break.
func (o *DeleteText) removeFinalLine(ed EditorInterface) (Result, error) {
	doc := ed.Document()
	start := o.norm.Start
	at := start.Line + 1
	line := doc.LineText(at)
	cut := utils.RuneIndexToByteOffset(line, o.endCol)
	o.removed = append(o.removed, line[:cut])

	if o.mode == deleteSpliced {
		doc.SetLineText(at, line[cut:])
	} else {
		doc.SetLineText(start.Line, doc.LineText(start.Line)+line[cut:])
		doc.RemoveLine(at)
	}
	return o.finalize(ed)
}

func (o *DeleteText) finalize(ed EditorInterface) (Result, error) {
	start := o.norm.Start
	ed.SetCaret(start)
	ed.ClearSelection()
	if o.AddToHistory {
		// End keeps the requested geometry so a redo replays the exact
		// same removal.
		after := ed.CaptureState()
		ed.History().Append(history.Node{
			Kind:   history.KindDelete,
			Text:   strings.Join(o.removed, "\n"),
			Start:  start,
			End:    o.norm.End,
			Before: o.before,
			After:  after,
		})
		if o.Bracket {
			ed.History().Boundary()
		}
	}
	ed.NotifyChanged(start.Line)
	return Done, nil
}

// Delete removes one unit next to the caret, or the active selection
// when one exists. Direction picks backspace (left) versus forward
// delete (right); EntireWord extends the unit to a word jump.
type Delete struct {
	Dir        types.MoveDirection
	EntireWord bool

	phase int
	sub   *DeleteText
}

// NewDelete creates a directional delete at the caret.
func NewDelete(dir types.MoveDirection, entireWord bool) *Delete {
	return &Delete{Dir: dir, EntireWord: entireWord}
}

func (o *Delete) Name() string { return "Delete" }

func (o *Delete) step(ed EditorInterface) (Result, error) {
	if o.phase == 1 {
		return step(o.sub, ed)
	}
	o.phase = 1

	if sel, ok := ed.Selection(); ok && !sel.IsEmpty() {
		o.sub = NewDeleteText(sel, true)
		return Pending, nil
	}

	origin := ed.Caret()
	ed.Move(o.Dir, false, o.EntireWord)
	target := ed.Caret()
	if origin.SamePlace(target) {
		// Document edge; nothing to remove.
		return Done, nil
	}
	o.sub = NewDeleteText(types.Selection{Start: origin, End: target}, true)
	return Pending, nil
}
