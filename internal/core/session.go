// Package core owns the editing session: the document, caret and
// selection, history, operation queue and completion engine, glued
// together behind the operation interface. All mutation happens on the
// host's tick thread; there is no internal locking.
package core

import (
	"time"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/buffer"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/clipboard"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/complete"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/config"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core/history"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core/op"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/event"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

// Session is one open document with its full editing state.
type Session struct {
	cfg    config.EditorConfig
	events *event.Manager

	doc        *buffer.Document
	hist       *history.History
	clip       clipboard.Provider
	exec       *op.Executor
	completion *complete.Engine

	caret     types.TextPosition
	sel       types.Selection
	selActive bool
	// preferredX remembers the visual target column across vertical
	// movement; -1 means "derive from the caret on next use".
	preferredX int

	delims map[rune]bool

	lastFindQuery   string
	lastFindForward bool

	dragKind      dragKind
	dragAnchor    types.Selection
	lastClickAt   time.Time
	lastClickPos  types.TextPosition
	clickCount    int
}

var _ op.EditorInterface = (*Session)(nil)

// NewSession creates a session with an empty document. A nil clock
// selects the system clock.
func NewSession(cfg config.EditorConfig, events *event.Manager, clock op.Clock) *Session {
	if events == nil {
		events = event.NewManager()
	}
	s := &Session{
		cfg:        cfg,
		events:     events,
		doc:        buffer.New(nil, cfg.TabWidth),
		hist:       history.New(cfg.MaxHistoryMilestones),
		clip:       clipboard.New(cfg.SystemClipboard),
		completion: complete.NewEngine(complete.LoadOrDefault(cfg.CompletionDataPath), events),
		preferredX: -1,
		delims:     make(map[rune]bool),
	}
	for _, r := range cfg.WordDelimiters {
		s.delims[r] = true
	}
	s.exec = op.NewExecutor(s, clock, time.Duration(cfg.FrameBudgetMS)*time.Millisecond)
	return s
}

// Tick advances queued operations within the frame budget. The host
// calls it once per frame.
func (s *Session) Tick() error { return s.exec.Tick() }

// PendingOperations returns the queued operation count.
func (s *Session) PendingOperations() int { return s.exec.Pending() }

// run either enqueues an operation or drives it to completion now.
func (s *Session) run(o op.Operation, immediate bool) error {
	if immediate {
		return s.exec.RunImmediate(o)
	}
	s.exec.Enqueue(o)
	return nil
}

// SetText replaces the whole document.
func (s *Session) SetText(text string, immediate bool) error {
	return s.run(op.NewSetText(text), immediate)
}

// InsertText inserts text at a position.
func (s *Session) InsertText(pos types.TextPosition, text string, addToHistory, immediate bool) error {
	return s.run(op.NewInsertText(pos, text, addToHistory), immediate)
}

// InsertCharacter types one rune at the caret, replacing any active
// selection.
func (s *Session) InsertCharacter(r rune, immediate bool) error {
	return s.run(op.NewInsertCharacter(r), immediate)
}

// DeleteText removes a text range.
func (s *Session) DeleteText(sel types.Selection, addToHistory, immediate bool) error {
	return s.run(op.NewDeleteText(sel, addToHistory), immediate)
}

// Delete removes one unit (or word) next to the caret, or the active
// selection.
func (s *Session) Delete(dir types.MoveDirection, entireWord, immediate bool) error {
	return s.run(op.NewDelete(dir, entireWord), immediate)
}

// ModifyIndent shifts the indentation of the selected lines.
func (s *Session) ModifyIndent(increase, immediate bool) error {
	return s.run(op.NewModifyIndent(increase), immediate)
}

// RebuildLines re-derives every line's vertical metrics.
func (s *Session) RebuildLines(immediate bool) error {
	return s.run(op.NewRebuildLines(), immediate)
}

// PlaceCaret moves the caret and clears the selection.
func (s *Session) PlaceCaret(pos types.TextPosition, immediate bool) error {
	return s.run(op.NewPlaceCaret(pos), immediate)
}

// Select activates an explicit selection.
func (s *Session) Select(sel types.Selection, immediate bool) error {
	return s.run(op.NewSetSelection(sel), immediate)
}

// SelectAll selects the whole document.
func (s *Session) SelectAll(immediate bool) error {
	return s.run(op.NewSelectAll(), immediate)
}

// MoveCaret performs one directional movement.
func (s *Session) MoveCaret(dir types.MoveDirection, selecting, entireWord, immediate bool) error {
	return s.run(op.NewMoveCaret(dir, selecting, entireWord), immediate)
}

// Copy puts the selection on the clipboard.
func (s *Session) Copy(immediate bool) error { return s.run(op.NewCopy(), immediate) }

// Cut copies and removes the selection.
func (s *Session) Cut(immediate bool) error { return s.run(op.NewCut(), immediate) }

// Paste inserts clipboard text at the caret.
func (s *Session) Paste(immediate bool) error { return s.run(op.NewPaste(), immediate) }

// Undo reverts the most recent milestone group.
func (s *Session) Undo(immediate bool) error { return s.run(op.NewUndo(), immediate) }

// Redo re-applies the next milestone group.
func (s *Session) Redo(immediate bool) error { return s.run(op.NewRedo(), immediate) }

// Find searches for a literal, case-insensitive match, wrapping
// circularly around the document.
func (s *Session) Find(query string, forward, immediate bool) error {
	return s.run(op.NewFind(query, forward), immediate)
}

// FindNext repeats the previous search, if any.
func (s *Session) FindNext(immediate bool) error {
	if s.lastFindQuery == "" {
		return nil
	}
	return s.Find(s.lastFindQuery, s.lastFindForward, immediate)
}

// FindPrev repeats the previous search in the opposite direction.
func (s *Session) FindPrev(immediate bool) error {
	if s.lastFindQuery == "" {
		return nil
	}
	o := op.NewFind(s.lastFindQuery, !s.lastFindForward)
	o.Transient = true
	return s.run(o, immediate)
}

// CommitCompletion inserts the highlighted candidate's remaining
// suffix at the caret.
func (s *Session) CommitCompletion(immediate bool) error {
	suffix, ok := s.completion.Commit()
	if !ok || suffix == "" {
		return nil
	}
	return s.InsertText(s.caret, suffix, true, immediate)
}

// Text returns the whole document text.
func (s *Session) Text() string { return s.doc.Text() }

// Document exposes the line store to operations and the host.
func (s *Session) Document() *buffer.Document { return s.doc }

// Config returns the session's editor settings.
func (s *Session) Config() config.EditorConfig { return s.cfg }

// History exposes the undo chain.
func (s *Session) History() *history.History { return s.hist }

// Clipboard exposes the clipboard provider.
func (s *Session) Clipboard() clipboard.Provider { return s.clip }

// Completion exposes the completion engine.
func (s *Session) Completion() *complete.Engine { return s.completion }

// Events exposes the session's event bus.
func (s *Session) Events() *event.Manager { return s.events }

// Caret returns the caret position.
func (s *Session) Caret() types.TextPosition { return s.caret }

// SetCaret moves the caret, resetting the remembered vertical target
// column.
func (s *Session) SetCaret(pos types.TextPosition) {
	pos = s.doc.ClampPosition(pos)
	s.preferredX = -1
	s.placeCaret(pos)
}

// placeCaret moves the caret without touching preferredX.
func (s *Session) placeCaret(pos types.TextPosition) {
	if pos == s.caret {
		return
	}
	s.caret = pos
	s.events.Dispatch(event.TypeCaretMoved, event.CaretMovedData{NewPosition: pos})
}

// Selection returns the active selection, if any.
func (s *Session) Selection() (types.Selection, bool) {
	return s.sel, s.selActive
}

// SetSelection activates a selection.
func (s *Session) SetSelection(sel types.Selection) {
	if s.selActive && sel == s.sel {
		return
	}
	s.sel = sel
	s.selActive = true
	s.events.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Sel: sel, Active: true})
}

// ClearSelection drops the active selection.
func (s *Session) ClearSelection() {
	if !s.selActive {
		return
	}
	s.selActive = false
	s.sel = types.Selection{}
	s.events.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Active: false})
}

// CaptureState snapshots the caret and selection.
func (s *Session) CaptureState() types.EditorState {
	return types.EditorState{Caret: s.caret, Sel: s.sel, HasSelection: s.selActive}
}

// RestoreState reinstates a snapshot taken by CaptureState.
func (s *Session) RestoreState(state types.EditorState) {
	s.preferredX = -1
	s.placeCaret(s.doc.ClampPosition(state.Caret))
	if state.HasSelection {
		s.SetSelection(state.Sel)
	} else {
		s.ClearSelection()
	}
}

// NotifyChanged publishes the lowest changed line index after an edit.
func (s *Session) NotifyChanged(firstLine int) {
	s.events.Dispatch(event.TypeDocumentChanged, event.DocumentChangedData{FirstLine: firstLine})
}

// NotifyHistoryApplied publishes a finished undo/redo walk.
func (s *Session) NotifyHistoryApplied(redo bool, actions int) {
	s.events.Dispatch(event.TypeHistoryApplied, event.HistoryAppliedData{Redo: redo, Actions: actions})
}

// CharTyped feeds the completion engine after a typed character.
func (s *Session) CharTyped(r rune) {
	s.completion.HandleChar(s.doc, s.caret, r)
}

// SetLastFind retains the query for FindNext.
func (s *Session) SetLastFind(query string, forward bool) {
	s.lastFindQuery = query
	s.lastFindForward = forward
}
