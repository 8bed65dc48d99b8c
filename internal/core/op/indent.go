// internal/core/op/indent.go
package op

import (
	"strings"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core/history"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

const (
	indPrepare = iota
	indLines
	indFinalize
)

// ModifyIndent shifts the indentation of every line touched by the
// selection (or the caret line) by one unit, one line per step. All
// per-line actions land in a single milestone group so the whole shift
// undoes at once.
type ModifyIndent struct {
	Increase bool

	phase     int
	startLine int
	endLine   int
	cur       int
	changed   bool
}

// NewModifyIndent creates an indent shift; increase selects direction.
func NewModifyIndent(increase bool) *ModifyIndent {
	return &ModifyIndent{Increase: increase}
}

func (o *ModifyIndent) Name() string { return "ModifyIndent" }

func (o *ModifyIndent) step(ed EditorInterface) (Result, error) {
	switch o.phase {
	case indPrepare:
		if sel, ok := ed.Selection(); ok && !sel.IsEmpty() {
			norm := sel.Normalized()
			o.startLine, o.endLine = norm.Start.Line, norm.End.Line
		} else {
			caret := ed.Caret()
			o.startLine, o.endLine = caret.Line, caret.Line
		}
		o.cur = o.startLine
		ed.History().Boundary()
		o.phase = indLines
		return Pending, nil

	case indLines:
		o.shiftLine(ed)
		o.cur++
		if o.cur > o.endLine {
			o.phase = indFinalize
		}
		return Pending, nil

	default:
		ed.History().Boundary()
		doc := ed.Document()
		ed.SetCaret(doc.ClampPosition(ed.Caret()))
		if sel, ok := ed.Selection(); ok {
			sel.Start = doc.ClampPosition(sel.Start)
			sel.End = doc.ClampPosition(sel.End)
			ed.SetSelection(sel)
		}
		if o.changed {
			ed.NotifyChanged(o.startLine)
		}
		return Done, nil
	}
}

func (o *ModifyIndent) shiftLine(ed EditorInterface) {
	doc := ed.Document()
	cfg := ed.Config()
	line := doc.LineText(o.cur)

	width := cfg.TabWidth
	if width <= 0 {
		width = 1
	}
	unit := "\t"
	if cfg.ExpandTabs {
		unit = strings.Repeat(" ", width)
	}

	if o.Increase {
		// Blank lines inside a multi-line span keep their indentation.
		if line == "" && o.startLine != o.endLine {
			return
		}
		before := ed.CaptureState()
		doc.SetLineText(o.cur, unit+line)
		ed.History().Append(history.Node{
			Kind:   history.KindInsert,
			Text:   unit,
			Start:  types.TextPosition{Line: o.cur},
			End:    types.TextPosition{Line: o.cur, Col: len(unit)},
			Before: before,
			After:  ed.CaptureState(),
		})
		o.changed = true
		return
	}

	var removed string
	switch {
	case strings.HasPrefix(line, "\t"):
		removed = "\t"
	default:
		n := 0
		for n < len(line) && n < width && line[n] == ' ' {
			n++
		}
		removed = line[:n]
	}
	if removed == "" {
		return
	}
	before := ed.CaptureState()
	doc.SetLineText(o.cur, line[len(removed):])
	ed.History().Append(history.Node{
		Kind:   history.KindDelete,
		Text:   removed,
		Start:  types.TextPosition{Line: o.cur},
		End:    types.TextPosition{Line: o.cur, Col: len(removed)},
		Before: before,
		After:  ed.CaptureState(),
	})
	o.changed = true
}
