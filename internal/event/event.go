// internal/event/event.go
package event

import (
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// TypeDocumentChanged fires after any edit, carrying the lowest
	// changed line index so the rendering collaborator can invalidate
	// cached layout from that line onward.
	TypeDocumentChanged

	// TypeCaretMoved fires when the caret position changes.
	TypeCaretMoved

	// TypeSelectionChanged fires when the selection is created, moved
	// or cleared.
	TypeSelectionChanged

	// TypeCompletionChanged fires when the completion popup opens,
	// refilters or dismisses.
	TypeCompletionChanged

	// TypeHistoryApplied fires after an undo or redo finished walking
	// its milestone group.
	TypeHistoryApplied
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentChangedData carries the lowest line index affected by an edit.
type DocumentChangedData struct {
	FirstLine int
}

// CaretMovedData contains the new caret position.
type CaretMovedData struct {
	NewPosition types.TextPosition
}

// SelectionChangedData contains the new selection, if any.
type SelectionChangedData struct {
	Sel    types.Selection
	Active bool
}

// HistoryAppliedData reports how many actions an undo/redo reverted.
type HistoryAppliedData struct {
	Redo    bool
	Actions int
}

// CompletionChangedData reports the popup's state after a trigger,
// refilter or dismissal.
type CompletionChangedData struct {
	Visible bool
	Count   int
}
