// internal/input/keymap_test.go
package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func key(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mod)
}

func TestProcessEventMovement(t *testing.T) {
	p := NewInputProcessor()

	ev := p.ProcessEvent(key(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, ActionEvent{Action: ActionMoveLeft}, ev)

	ev = p.ProcessEvent(key(tcell.KeyLeft, 0, tcell.ModShift))
	assert.Equal(t, ActionEvent{Action: ActionMoveLeft, Select: true}, ev)

	ev = p.ProcessEvent(key(tcell.KeyRight, 0, tcell.ModCtrl))
	assert.Equal(t, ActionEvent{Action: ActionMoveRight, Word: true}, ev)

	ev = p.ProcessEvent(key(tcell.KeyUp, 0, tcell.ModShift|tcell.ModAlt))
	assert.Equal(t, ActionEvent{Action: ActionMoveUp, Select: true, Word: true}, ev)
}

func TestProcessEventDeletes(t *testing.T) {
	p := NewInputProcessor()

	ev := p.ProcessEvent(key(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, ActionEvent{Action: ActionDeleteCharBackward}, ev)

	ev = p.ProcessEvent(key(tcell.KeyDelete, 0, tcell.ModCtrl))
	assert.Equal(t, ActionEvent{Action: ActionDeleteCharForward, Word: true}, ev)
}

func TestProcessEventControlChords(t *testing.T) {
	p := NewInputProcessor()

	// Ctrl chords arrive with the modifier already folded into the key.
	assert.Equal(t, ActionUndo, p.ProcessEvent(key(tcell.KeyCtrlZ, 0, tcell.ModCtrl)).Action)
	assert.Equal(t, ActionRedo, p.ProcessEvent(key(tcell.KeyCtrlY, 0, tcell.ModCtrl)).Action)
	assert.Equal(t, ActionSave, p.ProcessEvent(key(tcell.KeyCtrlS, 0, tcell.ModCtrl)).Action)
	assert.Equal(t, ActionSelectAll, p.ProcessEvent(key(tcell.KeyCtrlA, 0, tcell.ModCtrl)).Action)
}

func TestProcessEventFindChords(t *testing.T) {
	p := NewInputProcessor()

	assert.Equal(t, ActionEnterFindMode, p.ProcessEvent(key(tcell.KeyCtrlF, 0, tcell.ModCtrl)).Action)
	assert.Equal(t, ActionFindNext, p.ProcessEvent(key(tcell.KeyF3, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionFindPrev, p.ProcessEvent(key(tcell.KeyF3, 0, tcell.ModShift)).Action)
}

func TestProcessEventRunes(t *testing.T) {
	p := NewInputProcessor()

	ev := p.ProcessEvent(key(tcell.KeyRune, 'x', tcell.ModNone))
	assert.Equal(t, ActionEvent{Action: ActionInsertRune, Rune: 'x'}, ev)

	// Modified runes are chords, not text.
	ev = p.ProcessEvent(key(tcell.KeyRune, 'x', tcell.ModAlt))
	assert.Equal(t, ActionUnknown, ev.Action)
}

func TestProcessEventEditingKeys(t *testing.T) {
	p := NewInputProcessor()

	assert.Equal(t, ActionInsertNewLine, p.ProcessEvent(key(tcell.KeyEnter, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionIndent, p.ProcessEvent(key(tcell.KeyTab, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionOutdent, p.ProcessEvent(key(tcell.KeyBacktab, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionCancel, p.ProcessEvent(key(tcell.KeyEscape, 0, tcell.ModNone)).Action)
}
