// internal/input/action.go
package input

// Action represents a command to be performed by the editor host.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit
	ActionSave
	ActionCancel // Esc: dismiss popup / leave find mode

	// --- Caret Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// --- Text Manipulation ---
	ActionInsertRune // carries Rune
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionIndent
	ActionOutdent

	// --- Clipboard ---
	ActionCopy
	ActionCut
	ActionPaste

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Selection / Search ---
	ActionSelectAll
	ActionEnterFindMode
	ActionFindNext
	ActionFindPrev
)

// ActionEvent is a decoded input event. Select and Word carry the
// shift/ctrl movement variants.
type ActionEvent struct {
	Action Action
	Rune   rune
	Select bool
	Word   bool
}
