// internal/types/state.go
package types

// EditorState is an immutable snapshot of the caret and selection,
// captured before and after a history-worthy edit so undo/redo can
// restore exactly what the user saw.
type EditorState struct {
	Caret        TextPosition
	Sel          Selection
	HasSelection bool
}

// MoveDirection enumerates caret movement requests.
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveStartOfLine
	MoveEndOfLine
)

func (d MoveDirection) String() string {
	switch d {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveStartOfLine:
		return "start-of-line"
	case MoveEndOfLine:
		return "end-of-line"
	}
	return "unknown"
}
