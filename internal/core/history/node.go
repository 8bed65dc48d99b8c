// Package history keeps a bounded, linked record of reversible edits
// grouped into milestones for coarse-grained undo. Nodes live in an
// arena and reference each other by index, so there are no ownership
// cycles while truncate-on-new-edit and bounded eviction still work.
package history

import "github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"

// None marks the absence of a node index.
const None = -1

// Kind discriminates history node variants.
type Kind int

const (
	// KindMilestone is a boundary marker grouping the preceding
	// actions into one undo/redo unit. It carries no payload.
	KindMilestone Kind = iota
	// KindInsert records text that was inserted.
	KindInsert
	// KindDelete records text that was deleted.
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindMilestone:
		return "milestone"
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	}
	return "invalid"
}

// Node is one history entry. Insert/Delete nodes carry the affected
// range, the affected text, and the editor state captured before and
// after the edit.
type Node struct {
	Kind   Kind
	Text   string
	Start  types.TextPosition // where the change began
	End    types.TextPosition // position after inserted text / end of deleted range
	Before types.EditorState
	After  types.EditorState

	// Spliced marks an insert whose trailing segment was joined onto
	// the line that already followed the insertion point, so no new
	// line break was created. Undo must not merge lines back.
	Spliced bool

	prev int
	next int
}
