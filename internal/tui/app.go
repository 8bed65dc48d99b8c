// internal/tui/app.go
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/config"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/event"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/input"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/statusbar"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/utils"
)

// tickInterval paces the executor: one Tick per frame, so long edits
// stay responsive instead of blocking the event loop.
const tickInterval = 16 * time.Millisecond

// App wires the session, input processor and screen into the main
// event loop.
type App struct {
	tuiManager *TUI
	session    *core.Session
	statusBar  *statusbar.StatusBar
	inputProc  *input.InputProcessor
	events     *event.Manager

	filePath string
	modified bool

	// Viewport origin, in visual columns and lines.
	viewX, viewY int

	findMode  bool
	findInput []rune

	quitWarned bool
	quit       chan struct{}
}

// NewApp creates the application, loading filePath into the session.
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	tuiManager, err := New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	events := event.NewManager()
	session := core.NewSession(cfg.Editor, events, nil)

	if filePath != "" {
		data, readErr := os.ReadFile(filePath)
		if readErr != nil && !os.IsNotExist(readErr) {
			tuiManager.Close()
			return nil, fmt.Errorf("failed to read '%s': %w", filePath, readErr)
		}
		if readErr == nil {
			if err := session.SetText(string(data), true); err != nil {
				tuiManager.Close()
				return nil, fmt.Errorf("failed to load '%s': %w", filePath, err)
			}
		}
	}

	a := &App{
		tuiManager: tuiManager,
		session:    session,
		statusBar:  statusbar.New(statusbar.DefaultConfig()),
		inputProc:  input.NewInputProcessor(),
		events:     events,
		filePath:   filePath,
		quit:       make(chan struct{}),
	}

	events.Subscribe(event.TypeDocumentChanged, a.handleDocumentChanged)
	events.Subscribe(event.TypeCaretMoved, a.handleCaretMoved)

	a.statusBar.SetFileInfo(filePath, false)
	a.statusBar.SetCaretInfo(session.Caret())
	return a, nil
}

// Run drives the main loop until quit. All session access happens on
// this goroutine; the ticker only wakes it.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-a.quit:
				return
			case <-ticker.C:
				a.tuiManager.PostInterrupt()
			}
		}
	}()

	a.statusBar.SetTemporaryMessage("Ctrl+S Save | Ctrl+Q Quit | Ctrl+F Find")
	a.draw()

	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}

		switch tev := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			if err := a.session.RebuildLines(false); err != nil {
				logger.Warnf("App: rebuild failed: %v", err)
			}

		case *tcell.EventKey:
			if a.handleKey(tev) {
				close(a.quit)
				if a.modified {
					logger.Warnf("App: exited with unsaved changes")
				}
				return nil
			}

		case *tcell.EventMouse:
			a.handleMouse(tev)

		case *tcell.EventInterrupt:
			if err := a.session.Tick(); err != nil {
				a.statusBar.SetTemporaryMessage("Error: %v", err)
				logger.Errorf("App: operation failed: %v", err)
			}
		}

		a.draw()
	}
}

// handleKey processes one key event; returns true to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.findMode {
		a.handleFindModeKey(ev)
		return false
	}

	// An open completion popup owns the navigation keys.
	if a.session.Completion().Visible() {
		switch ev.Key() {
		case tcell.KeyUp:
			a.session.Completion().Prev()
			return false
		case tcell.KeyDown:
			a.session.Completion().Next()
			return false
		case tcell.KeyEnter, tcell.KeyTab:
			if err := a.session.CommitCompletion(false); err != nil {
				logger.Warnf("App: completion commit failed: %v", err)
			}
			return false
		case tcell.KeyEscape:
			a.session.Completion().Dismiss()
			return false
		}
	}

	action := a.inputProc.ProcessEvent(ev)
	var err error

	switch action.Action {
	case input.ActionQuit:
		if a.modified && !a.quitWarned {
			a.quitWarned = true
			a.statusBar.SetTemporaryMessage("Unsaved changes. Ctrl+Q again to quit, Ctrl+S to save.")
			return false
		}
		return true
	case input.ActionForceQuit:
		return true
	case input.ActionSave:
		a.save()

	case input.ActionCancel:
		a.session.ClearSelection()

	case input.ActionMoveUp:
		err = a.session.MoveCaret(types.MoveUp, action.Select, false, false)
	case input.ActionMoveDown:
		err = a.session.MoveCaret(types.MoveDown, action.Select, false, false)
	case input.ActionMoveLeft:
		err = a.session.MoveCaret(types.MoveLeft, action.Select, action.Word, false)
	case input.ActionMoveRight:
		err = a.session.MoveCaret(types.MoveRight, action.Select, action.Word, false)
	case input.ActionMoveHome:
		err = a.session.MoveCaret(types.MoveStartOfLine, action.Select, false, false)
	case input.ActionMoveEnd:
		err = a.session.MoveCaret(types.MoveEndOfLine, action.Select, false, false)
	case input.ActionMovePageUp:
		err = a.movePage(types.MoveUp, action.Select)
	case input.ActionMovePageDown:
		err = a.movePage(types.MoveDown, action.Select)

	case input.ActionInsertRune:
		err = a.session.InsertCharacter(action.Rune, false)
	case input.ActionInsertNewLine:
		err = a.session.InsertCharacter('\n', false)
	case input.ActionDeleteCharBackward:
		err = a.session.Delete(types.MoveLeft, action.Word, false)
	case input.ActionDeleteCharForward:
		err = a.session.Delete(types.MoveRight, action.Word, false)
	case input.ActionIndent:
		if _, active := a.session.Selection(); active {
			err = a.session.ModifyIndent(true, false)
		} else {
			err = a.session.InsertCharacter('\t', false)
		}
	case input.ActionOutdent:
		err = a.session.ModifyIndent(false, false)

	case input.ActionCopy:
		err = a.session.Copy(false)
	case input.ActionCut:
		err = a.session.Cut(false)
	case input.ActionPaste:
		err = a.session.Paste(false)

	case input.ActionUndo:
		err = a.session.Undo(false)
	case input.ActionRedo:
		err = a.session.Redo(false)

	case input.ActionSelectAll:
		err = a.session.SelectAll(false)
	case input.ActionEnterFindMode:
		a.findMode = true
		a.findInput = a.findInput[:0]
		a.statusBar.SetPrompt("Find: ", "")
	case input.ActionFindNext:
		err = a.session.FindNext(false)
	case input.ActionFindPrev:
		err = a.session.FindPrev(false)
	}

	if err != nil {
		a.statusBar.SetTemporaryMessage("Error: %v", err)
		logger.Warnf("App: action failed: %v", err)
	}
	return false
}

// handleFindModeKey edits the find prompt.
func (a *App) handleFindModeKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.leaveFindMode()
	case tcell.KeyEnter:
		query := string(a.findInput)
		a.leaveFindMode()
		if query != "" {
			if err := a.session.Find(query, true, false); err != nil {
				logger.Warnf("App: find failed: %v", err)
			}
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.findInput) > 0 {
			a.findInput = a.findInput[:len(a.findInput)-1]
		}
		a.statusBar.SetPrompt("Find: ", string(a.findInput))
	case tcell.KeyRune:
		a.findInput = append(a.findInput, ev.Rune())
		a.statusBar.SetPrompt("Find: ", string(a.findInput))
	}
}

func (a *App) leaveFindMode() {
	a.findMode = false
	a.statusBar.SetPrompt("", "")
}

// handleMouse translates screen coordinates to a document position and
// forwards clicks, drags and wheel scrolling.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.viewY -= 3
		if a.viewY < 0 {
			a.viewY = 0
		}
		return
	case buttons&tcell.WheelDown != 0:
		max := a.session.Document().LineCount() - 1
		a.viewY += 3
		if a.viewY > max {
			a.viewY = max
		}
		return
	}

	pos := a.screenToDocument(x, y)
	switch {
	case buttons&tcell.Button1 != 0:
		if a.session.MouseActive() {
			a.session.MouseDrag(pos)
		} else {
			a.session.MouseDown(pos, time.Now())
		}
	default:
		a.session.MouseUp()
	}
}

// screenToDocument converts screen cell coordinates into a clamped
// document position, accounting for the gutter, viewport and tabs.
func (a *App) screenToDocument(x, y int) types.TextPosition {
	doc := a.session.Document()
	width, _ := a.tuiManager.Size()
	gutter := gutterWidth(doc.LineCount(), width)

	line := y + a.viewY
	if line < 0 {
		line = 0
	}
	if line >= doc.LineCount() {
		line = doc.LineCount() - 1
	}

	visualX := (x - gutter) + a.viewX
	if visualX < 0 {
		visualX = 0
	}
	col := columnForVisualX(doc.LineText(line), visualX, a.session.Config().TabWidth)
	return types.TextPosition{Line: line, Col: col}
}

// movePage repeats a vertical move over one viewport height, keeping
// the preferred column across the jump.
func (a *App) movePage(dir types.MoveDirection, selecting bool) error {
	_, height := a.tuiManager.Size()
	viewHeight := height - 1
	if viewHeight < 1 {
		viewHeight = 1
	}
	for i := 0; i < viewHeight; i++ {
		if err := a.session.MoveCaret(dir, selecting, false, true); err != nil {
			return err
		}
	}
	return nil
}

// save writes the document back to the file path.
func (a *App) save() {
	if a.filePath == "" {
		a.statusBar.SetTemporaryMessage("No file path to save to")
		return
	}
	if err := os.WriteFile(a.filePath, []byte(a.session.Text()), 0644); err != nil {
		a.statusBar.SetTemporaryMessage("Save failed: %v", err)
		logger.Errorf("App: save failed: %v", err)
		return
	}
	a.modified = false
	a.quitWarned = false
	a.statusBar.SetFileInfo(a.filePath, false)
	a.statusBar.SetTemporaryMessage("Saved %s", a.filePath)
	logger.Infof("App: saved %s", a.filePath)
}

// ensureCaretVisible scrolls the viewport so the caret stays on screen.
func (a *App) ensureCaretVisible(viewHeight int) {
	doc := a.session.Document()
	caret := a.session.Caret()
	width, _ := a.tuiManager.Size()
	gutter := gutterWidth(doc.LineCount(), width)
	textAreaWidth := width - gutter
	if textAreaWidth < 1 {
		textAreaWidth = 1
	}

	if caret.Line < a.viewY {
		a.viewY = caret.Line
	}
	if caret.Line >= a.viewY+viewHeight {
		a.viewY = caret.Line - viewHeight + 1
	}
	if a.viewY < 0 {
		a.viewY = 0
	}

	visualCol := 0
	if caret.Line < doc.LineCount() {
		visualCol = utils.VisualWidth(doc.LineText(caret.Line), caret.Col, a.session.Config().TabWidth)
	}
	if visualCol < a.viewX {
		a.viewX = visualCol
	}
	if visualCol >= a.viewX+textAreaWidth {
		a.viewX = visualCol - textAreaWidth + 1
	}
	if a.viewX < 0 {
		a.viewX = 0
	}
}

// draw repaints the whole screen.
func (a *App) draw() {
	width, height := a.tuiManager.Size()
	viewHeight := height - 1 // bottom row is the status bar
	if viewHeight < 0 {
		viewHeight = 0
	}

	a.ensureCaretVisible(viewHeight)
	a.statusBar.SetPending(a.session.PendingOperations())

	a.tuiManager.Clear()
	DrawBuffer(a.tuiManager, a.session, a.viewY, a.viewX, viewHeight)
	DrawCompletion(a.tuiManager, a.session, a.viewY, a.viewX, viewHeight)
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height)
	DrawCursor(a.tuiManager, a.session, a.viewY, a.viewX, viewHeight)
	a.tuiManager.Show()
}

// --- Event handlers ---

func (a *App) handleDocumentChanged(e event.Event) bool {
	a.modified = true
	a.quitWarned = false
	a.statusBar.SetFileInfo(a.filePath, true)
	return false
}

func (a *App) handleCaretMoved(e event.Event) bool {
	if data, ok := e.Data.(event.CaretMovedData); ok {
		a.statusBar.SetCaretInfo(data.NewPosition)
	}
	return false
}
