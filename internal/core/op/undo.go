// internal/core/op/undo.go
package op

import (
	"fmt"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core/history"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

// Undo walks the history backward to the previous milestone, reverting
// one action per embedded inverse operation. Each inverse is itself a
// resumable operation, so undoing a giant paste stays within the
// per-step bound. After every reverted action the editor state snapshot
// taken before that action is restored.
type Undo struct {
	sub      Operation
	restore  types.EditorState
	reverted int
}

// NewUndo creates an undo of one milestone group.
func NewUndo() *Undo { return &Undo{} }

func (o *Undo) Name() string { return "Undo" }

func (o *Undo) step(ed EditorInterface) (Result, error) {
	if o.sub != nil {
		r, err := step(o.sub, ed)
		if err != nil {
			return Done, err
		}
		if r == Done {
			ed.RestoreState(o.restore)
			o.sub = nil
			o.reverted++
		}
		return Pending, nil
	}

	h := ed.History()
	cur := h.Current()
	if cur == history.None {
		return o.finish(ed)
	}
	node := h.At(cur)

	switch node.Kind {
	case history.KindMilestone:
		if o.reverted > 0 {
			// The group boundary: the walk rests on this milestone so
			// the next undo peels off the previous group.
			return o.finish(ed)
		}
		h.StepBack()
		return Pending, nil
	case history.KindInsert:
		o.sub = deleteForInsert(node)
	case history.KindDelete:
		ins := NewInsertText(node.Start, node.Text, false)
		ins.splice = spliceNever
		o.sub = ins
	default:
		return Done, fmt.Errorf("%w: kind %v", ErrInvalidHistoryNode, node.Kind)
	}
	o.restore = node.Before
	h.StepBack()
	return Pending, nil
}

func (o *Undo) finish(ed EditorInterface) (Result, error) {
	if o.reverted > 0 {
		ed.NotifyHistoryApplied(false, o.reverted)
	}
	return Done, nil
}

// Redo walks the history forward to the next milestone, re-applying one
// action per embedded operation and restoring each action's after
// snapshot.
type Redo struct {
	sub     Operation
	restore types.EditorState
	applied int
}

// NewRedo creates a redo of one milestone group.
func NewRedo() *Redo { return &Redo{} }

func (o *Redo) Name() string { return "Redo" }

func (o *Redo) step(ed EditorInterface) (Result, error) {
	if o.sub != nil {
		r, err := step(o.sub, ed)
		if err != nil {
			return Done, err
		}
		if r == Done {
			ed.RestoreState(o.restore)
			o.sub = nil
			o.applied++
		}
		return Pending, nil
	}

	h := ed.History()
	next := h.Next(h.Current())
	if next == history.None {
		return o.finish(ed)
	}
	node := h.At(next)

	switch node.Kind {
	case history.KindMilestone:
		h.StepForward()
		if o.applied > 0 {
			return o.finish(ed)
		}
		return Pending, nil
	case history.KindInsert:
		o.sub = NewInsertText(node.Start, node.Text, false)
	case history.KindDelete:
		o.sub = &DeleteText{Sel: types.Selection{Start: node.Start, End: node.End}}
	default:
		return Done, fmt.Errorf("%w: kind %v", ErrInvalidHistoryNode, node.Kind)
	}
	o.restore = node.After
	h.StepForward()
	return Pending, nil
}

func (o *Redo) finish(ed EditorInterface) (Result, error) {
	if o.applied > 0 {
		ed.NotifyHistoryApplied(true, o.applied)
	}
	return Done, nil
}
