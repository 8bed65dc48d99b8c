// internal/core/op/settext.go
package op

import (
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/buffer"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

const (
	setPrepare = iota
	setApply
	setTrim
	setFinalize
)

// SetText replaces the entire document, one line per step. Loading a
// new document discards the edit history; there is nothing meaningful
// to undo across a wholesale replacement.
type SetText struct {
	Text string

	phase int
	lines []string
	next  int
}

// NewSetText creates a whole-document replacement.
func NewSetText(text string) *SetText {
	return &SetText{Text: text}
}

func (o *SetText) Name() string { return "SetText" }

func (o *SetText) step(ed EditorInterface) (Result, error) {
	doc := ed.Document()
	switch o.phase {
	case setPrepare:
		cfg := ed.Config()
		o.lines = buffer.SplitLines(buffer.Sanitize(o.Text, cfg.ExpandTabs, cfg.TabWidth))
		o.phase = setApply
		return Pending, nil

	case setApply:
		if o.next < len(o.lines) {
			if o.next < doc.LineCount() {
				doc.SetLineText(o.next, o.lines[o.next])
			} else {
				doc.InsertLine(doc.LineCount(), o.lines[o.next])
			}
			o.next++
			return Pending, nil
		}
		o.phase = setTrim
		return Pending, nil

	case setTrim:
		if doc.LineCount() > len(o.lines) {
			doc.RemoveLine(doc.LineCount() - 1)
			return Pending, nil
		}
		o.phase = setFinalize
		return Pending, nil

	default:
		ed.SetCaret(types.TextPosition{})
		ed.ClearSelection()
		ed.History().Clear()
		ed.NotifyChanged(0)
		return Done, nil
	}
}

// RebuildLines re-derives every line's vertical metrics, one line per
// step. The host enqueues it after viewport or height-function changes.
type RebuildLines struct {
	next int
}

// NewRebuildLines creates a full metric rebuild.
func NewRebuildLines() *RebuildLines { return &RebuildLines{} }

func (o *RebuildLines) Name() string { return "RebuildLines" }

func (o *RebuildLines) step(ed EditorInterface) (Result, error) {
	doc := ed.Document()
	if o.next >= doc.LineCount() {
		ed.NotifyChanged(0)
		return Done, nil
	}
	doc.ReflowLine(o.next)
	o.next++
	if o.next >= doc.LineCount() {
		ed.NotifyChanged(0)
		return Done, nil
	}
	return Pending, nil
}
