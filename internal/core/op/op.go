// Package op holds the operation queue and the resumable operations
// that mutate the editor. Every operation is a small state machine:
// one step performs a bounded unit of work (at most one line of a
// multi-line edit) so even huge pastes stay interruptible between
// lines.
package op

import (
	"errors"
	"time"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/buffer"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/clipboard"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/config"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core/history"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

var (
	// ErrInvalidSelection reports a malformed or out-of-range selection
	// passed to SetSelection or DeleteText. The operation aborts
	// without mutating state.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrUnsupportedOperation reports a dispatch failure on an
	// unrecognized operation type. It indicates a construction defect
	// and is never expected at runtime.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidHistoryNode reports an undo/redo walk encountering a
	// node that is neither an action nor a milestone.
	ErrInvalidHistoryNode = errors.New("invalid history node")
)

// Result tells the executor whether an operation needs further steps.
type Result int

const (
	// Pending means the operation has more work and must be stepped again.
	Pending Result = iota
	// Done means the operation reached its terminal state.
	Done
)

// Operation is a resumable edit command. Concrete operations live in
// this package; dispatch happens once per advance in step().
type Operation interface {
	Name() string
}

// EditorInterface defines what operations need from the editor session.
// The session implements it; operations never see the concrete type.
type EditorInterface interface {
	Document() *buffer.Document
	Config() config.EditorConfig

	Caret() types.TextPosition
	SetCaret(pos types.TextPosition)
	Selection() (types.Selection, bool)
	SetSelection(sel types.Selection)
	ClearSelection()

	CaptureState() types.EditorState
	RestoreState(state types.EditorState)

	History() *history.History
	Clipboard() clipboard.Provider

	// Move performs one caret movement with optional selection
	// extension and word jumps.
	Move(dir types.MoveDirection, selecting, entireWord bool)

	// NotifyChanged reports the lowest changed line index after an edit.
	NotifyChanged(firstLine int)
	// NotifyHistoryApplied reports a finished undo/redo walk.
	NotifyHistoryApplied(redo bool, actions int)
	// CharTyped lets the session feed the completion engine after an
	// InsertCharacter operation.
	CharTyped(r rune)
	// SetLastFind retains the query so the host can repeat a search.
	SetLastFind(query string, forward bool)
}

// Clock is the per-tick time source used for budget checks.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// step advances an operation by exactly one state transition. The
// dispatch is resolved once per call; an operation type with no case
// here is a construction bug.
func step(o Operation, ed EditorInterface) (Result, error) {
	switch o := o.(type) {
	case *SetText:
		return o.step(ed)
	case *InsertText:
		return o.step(ed)
	case *InsertCharacter:
		return o.step(ed)
	case *DeleteText:
		return o.step(ed)
	case *Delete:
		return o.step(ed)
	case *ModifyIndent:
		return o.step(ed)
	case *RebuildLines:
		return o.step(ed)
	case *PlaceCaret:
		return o.step(ed)
	case *SetSelection:
		return o.step(ed)
	case *SelectAll:
		return o.step(ed)
	case *MoveCaret:
		return o.step(ed)
	case *Copy:
		return o.step(ed)
	case *Cut:
		return o.step(ed)
	case *Paste:
		return o.step(ed)
	case *Undo:
		return o.step(ed)
	case *Redo:
		return o.step(ed)
	case *Find:
		return o.step(ed)
	default:
		return Done, ErrUnsupportedOperation
	}
}
