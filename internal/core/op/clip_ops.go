// internal/core/op/clip_ops.go
package op

import (
	"fmt"
)

// Copy places the selected text on the clipboard. The selection stays
// active.
type Copy struct{}

// NewCopy creates a copy of the active selection.
func NewCopy() *Copy { return &Copy{} }

func (o *Copy) Name() string { return "Copy" }

func (o *Copy) step(ed EditorInterface) (Result, error) {
	sel, ok := ed.Selection()
	if !ok || sel.IsEmpty() {
		return Done, nil
	}
	text := ed.Document().TextInRange(sel)
	if err := ed.Clipboard().Set(text); err != nil {
		return Done, fmt.Errorf("copy to clipboard: %w", err)
	}
	return Done, nil
}

// Cut copies the selection and then drives an embedded delete of it.
type Cut struct {
	phase int
	sub   *DeleteText
}

// NewCut creates a cut of the active selection.
func NewCut() *Cut { return &Cut{} }

func (o *Cut) Name() string { return "Cut" }

func (o *Cut) step(ed EditorInterface) (Result, error) {
	if o.phase == 1 {
		return step(o.sub, ed)
	}
	o.phase = 1

	sel, ok := ed.Selection()
	if !ok || sel.IsEmpty() {
		return Done, nil
	}
	text := ed.Document().TextInRange(sel)
	if err := ed.Clipboard().Set(text); err != nil {
		return Done, fmt.Errorf("cut to clipboard: %w", err)
	}
	o.sub = NewDeleteText(sel, true)
	return Pending, nil
}

const (
	pastePrepare = iota
	pasteClearing
	pasteInserting
	pasteFinalize
)

// Paste inserts clipboard text at the caret, first deleting any active
// selection. Both embedded actions share one milestone group so a
// paste-over-selection undoes as a unit.
type Paste struct {
	phase int
	text  string
	del   *DeleteText
	ins   *InsertText
}

// NewPaste creates a clipboard paste.
func NewPaste() *Paste { return &Paste{} }

func (o *Paste) Name() string { return "Paste" }

func (o *Paste) step(ed EditorInterface) (Result, error) {
	switch o.phase {
	case pastePrepare:
		text, err := ed.Clipboard().Get()
		if err != nil {
			return Done, fmt.Errorf("paste from clipboard: %w", err)
		}
		if text == "" {
			return Done, nil
		}
		o.text = text
		ed.History().Boundary()
		if sel, ok := ed.Selection(); ok && !sel.IsEmpty() {
			o.del = NewDeleteText(sel, true)
			o.del.Bracket = false
			o.phase = pasteClearing
		} else {
			o.phase = pasteInserting
		}
		return Pending, nil

	case pasteClearing:
		r, err := step(o.del, ed)
		if err != nil {
			return Done, err
		}
		if r == Done {
			o.phase = pasteInserting
		}
		return Pending, nil

	case pasteInserting:
		if o.ins == nil {
			o.ins = NewInsertText(ed.Caret(), o.text, true)
		}
		r, err := step(o.ins, ed)
		if err != nil {
			return Done, err
		}
		if r == Done {
			o.phase = pasteFinalize
		}
		return Pending, nil

	default:
		ed.History().Boundary()
		return Done, nil
	}
}
