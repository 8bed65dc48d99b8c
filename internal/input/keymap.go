// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap Keymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{keymap: make(Keymap)}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionIndent
	p.keymap[tcell.KeyBacktab] = ActionOutdent
	p.keymap[tcell.KeyEscape] = ActionCancel
	p.keymap[tcell.KeyF3] = ActionFindNext

	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyCtrlS] = ActionSave
	p.keymap[tcell.KeyCtrlC] = ActionCopy
	p.keymap[tcell.KeyCtrlX] = ActionCut
	p.keymap[tcell.KeyCtrlV] = ActionPaste
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo
	p.keymap[tcell.KeyCtrlA] = ActionSelectAll
	p.keymap[tcell.KeyCtrlF] = ActionEnterFindMode
}

// ProcessEvent takes a tcell key event and returns the corresponding
// ActionEvent. Shift turns movement into selection extension; Ctrl/Alt
// on horizontal movement and deletion selects word granularity.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// Keys in the CtrlA-CtrlZ range already encode Ctrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	selecting := mod&tcell.ModShift != 0
	word := mod&(tcell.ModCtrl|tcell.ModAlt) != 0

	if key == tcell.KeyF3 && selecting {
		return ActionEvent{Action: ActionFindPrev}
	}

	if action, ok := p.keymap[key]; ok {
		switch action {
		case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
			ActionMoveHome, ActionMoveEnd, ActionMovePageUp, ActionMovePageDown:
			return ActionEvent{Action: action, Select: selecting, Word: word}
		case ActionDeleteCharForward, ActionDeleteCharBackward:
			return ActionEvent{Action: action, Word: word}
		default:
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	return ActionEvent{Action: ActionUnknown}
}
