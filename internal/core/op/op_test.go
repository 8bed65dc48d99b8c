// internal/core/op/op_test.go
package op_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/config"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core/op"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

func testConfig() config.EditorConfig {
	return config.EditorConfig{
		TabWidth:             4,
		ExpandTabs:           true,
		FrameBudgetMS:        4,
		MaxHistoryMilestones: 100,
		WordDelimiters:       config.DefaultWordDelimiters,
		SystemClipboard:      false,
	}
}

func newSession(t *testing.T, text string) *core.Session {
	t.Helper()
	s := core.NewSession(testConfig(), nil, nil)
	require.NoError(t, s.SetText(text, true))
	return s
}

func pos(line, col int) types.TextPosition {
	return types.TextPosition{Line: line, Col: col}
}

func sel(sl, sc, el, ec int) types.Selection {
	return types.Selection{Start: pos(sl, sc), End: pos(el, ec)}
}

func typeString(t *testing.T, s *core.Session, text string) {
	t.Helper()
	for _, r := range text {
		require.NoError(t, s.InsertCharacter(r, true))
	}
}

// --- InsertText ---

func TestInsertTextSingleLine(t *testing.T) {
	s := newSession(t, "abc")
	require.NoError(t, s.InsertText(pos(0, 1), "XY", true, true))
	assert.Equal(t, "aXYbc", s.Text())
	assert.Equal(t, pos(0, 3), s.Caret())
}

func TestInsertTextMultiLineSplitsTail(t *testing.T) {
	s := newSession(t, "abc\ndef")
	require.NoError(t, s.InsertText(pos(0, 1), "X\nY", true, true))
	assert.Equal(t, "aX\nYbc\ndef", s.Text())
	assert.Equal(t, pos(1, 1), s.Caret())
}

func TestInsertTextSplicesOntoFollowingLine(t *testing.T) {
	// Inserting at a line's end with an empty final segment reuses the
	// existing break: the last segment lands on the next line instead of
	// opening a new one.
	s := newSession(t, "abc\ndef")
	require.NoError(t, s.InsertText(pos(0, 3), "X\nY", true, true))
	assert.Equal(t, "abcX\nYdef", s.Text())
	assert.Equal(t, pos(1, 1), s.Caret())
}

func TestInsertTextNoSpliceOnLastLine(t *testing.T) {
	s := newSession(t, "abc")
	require.NoError(t, s.InsertText(pos(0, 3), "X\nY", true, true))
	assert.Equal(t, "abcX\nY", s.Text())
	assert.Equal(t, pos(1, 1), s.Caret())
}

func TestInsertTextEmptyIsNoop(t *testing.T) {
	s := newSession(t, "abc")
	require.NoError(t, s.InsertText(pos(0, 1), "", true, true))
	assert.Equal(t, "abc", s.Text())
	assert.False(t, s.History().CanUndo())
}

func TestUndoSplicedInsertKeepsLineBreak(t *testing.T) {
	s := newSession(t, "abc\ndef")
	require.NoError(t, s.InsertText(pos(0, 3), "X\nY", true, true))
	require.Equal(t, "abcX\nYdef", s.Text())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "abc\ndef", s.Text())
	assert.Equal(t, pos(0, 0), s.Caret())

	require.NoError(t, s.Redo(true))
	assert.Equal(t, "abcX\nYdef", s.Text())
	assert.Equal(t, pos(1, 1), s.Caret())
}

func TestUndoPlainInsertMergesSplit(t *testing.T) {
	s := newSession(t, "abc\ndef")
	require.NoError(t, s.InsertText(pos(0, 1), "X\nY", true, true))
	require.Equal(t, "aX\nYbc\ndef", s.Text())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "abc\ndef", s.Text())

	require.NoError(t, s.Redo(true))
	assert.Equal(t, "aX\nYbc\ndef", s.Text())
}

// --- DeleteText ---

func TestDeleteTextSingleLineEndExclusive(t *testing.T) {
	s := newSession(t, "abcdef")
	require.NoError(t, s.DeleteText(sel(0, 1, 0, 4), true, true))
	assert.Equal(t, "aef", s.Text())
	assert.Equal(t, pos(0, 1), s.Caret())
}

func TestDeleteTextMultiLineCountsBreakFirst(t *testing.T) {
	// Across lines the end line's leading break is the first deleted
	// unit, so End.Col counts it plus End.Col-1 characters.
	s := newSession(t, "abc\ndef")
	require.NoError(t, s.DeleteText(sel(0, 1, 1, 1), true, true))
	assert.Equal(t, "adef", s.Text())
	assert.Equal(t, pos(0, 1), s.Caret())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "abc\ndef", s.Text())

	require.NoError(t, s.Redo(true))
	assert.Equal(t, "adef", s.Text())
}

func TestDeleteTextJoinAtLineBoundary(t *testing.T) {
	// End.Col of zero removes only the break, joining the lines.
	s := newSession(t, "ab\ncd")
	require.NoError(t, s.DeleteText(sel(0, 2, 1, 0), true, true))
	assert.Equal(t, "abcd", s.Text())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "ab\ncd", s.Text())
}

func TestDeleteTextThreeLinesRoundTrip(t *testing.T) {
	s := newSession(t, "ab\ncd\nef")
	require.NoError(t, s.DeleteText(sel(0, 1, 2, 2), true, true))
	assert.Equal(t, "af", s.Text())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "ab\ncd\nef", s.Text())

	require.NoError(t, s.Redo(true))
	assert.Equal(t, "af", s.Text())
}

func TestDeleteTextReversedSelectionNormalizes(t *testing.T) {
	s := newSession(t, "abcdef")
	require.NoError(t, s.DeleteText(sel(0, 4, 0, 1), true, true))
	assert.Equal(t, "aef", s.Text())
}

func TestDeleteTextInvalidSelection(t *testing.T) {
	s := newSession(t, "abc")
	err := s.DeleteText(sel(0, 0, 5, 0), true, true)
	assert.ErrorIs(t, err, op.ErrInvalidSelection)
	assert.Equal(t, "abc", s.Text())
}

func TestDeleteBackwardAtLineStartJoins(t *testing.T) {
	s := newSession(t, "ab\ncd")
	require.NoError(t, s.PlaceCaret(pos(1, 0), true))
	require.NoError(t, s.Delete(types.MoveLeft, false, true))
	assert.Equal(t, "abcd", s.Text())
	assert.Equal(t, pos(0, 2), s.Caret())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "ab\ncd", s.Text())
}

func TestDeleteForwardAtDocumentEnd(t *testing.T) {
	s := newSession(t, "ab")
	require.NoError(t, s.PlaceCaret(pos(0, 2), true))
	require.NoError(t, s.Delete(types.MoveRight, false, true))
	assert.Equal(t, "ab", s.Text())
	assert.False(t, s.History().CanUndo())
}

func TestDeleteWordBackward(t *testing.T) {
	s := newSession(t, "one two")
	require.NoError(t, s.PlaceCaret(pos(0, 7), true))
	require.NoError(t, s.Delete(types.MoveLeft, true, true))
	assert.Equal(t, "one ", s.Text())
}

func TestDeleteRemovesActiveSelection(t *testing.T) {
	s := newSession(t, "abcdef")
	require.NoError(t, s.Select(sel(0, 2, 0, 5), true))
	require.NoError(t, s.Delete(types.MoveRight, false, true))
	assert.Equal(t, "abf", s.Text())
	assert.Equal(t, pos(0, 2), s.Caret())
}

// --- InsertCharacter ---

func TestInsertCharacterNewlineSplitsLine(t *testing.T) {
	s := newSession(t, "abcd")
	require.NoError(t, s.PlaceCaret(pos(0, 2), true))
	require.NoError(t, s.InsertCharacter('\n', true))
	assert.Equal(t, "ab\ncd", s.Text())
	assert.Equal(t, pos(1, 0), s.Caret())
}

func TestInsertCharacterTabExpands(t *testing.T) {
	s := newSession(t, "abcd")
	require.NoError(t, s.PlaceCaret(pos(0, 2), true))
	require.NoError(t, s.InsertCharacter('\t', true))
	assert.Equal(t, "ab  cd", s.Text())
	assert.Equal(t, pos(0, 4), s.Caret())
}

func TestInsertCharacterIgnoresControlRunes(t *testing.T) {
	s := newSession(t, "ab")
	require.NoError(t, s.PlaceCaret(pos(0, 1), true))
	require.NoError(t, s.InsertCharacter('\x07', true))
	assert.Equal(t, "ab", s.Text())
}

func TestTypingGroupsUndoByWords(t *testing.T) {
	s := newSession(t, "")
	typeString(t, s, "go on")
	require.Equal(t, "go on", s.Text())

	// Undo peels the word typed after the last break.
	require.NoError(t, s.Undo(true))
	assert.Equal(t, "go ", s.Text())
	assert.Equal(t, pos(0, 3), s.Caret())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "", s.Text())
	assert.Equal(t, pos(0, 0), s.Caret())

	require.NoError(t, s.Redo(true))
	assert.Equal(t, "go ", s.Text())

	require.NoError(t, s.Redo(true))
	assert.Equal(t, "go on", s.Text())
	assert.Equal(t, pos(0, 5), s.Caret())
}

func TestInsertCharacterReplacesSelection(t *testing.T) {
	s := newSession(t, "hello")
	require.NoError(t, s.SelectAll(true))
	require.NoError(t, s.InsertCharacter('x', true))
	assert.Equal(t, "x", s.Text())
	assert.Equal(t, pos(0, 1), s.Caret())

	// The replacement undoes as one unit, restoring the selection.
	require.NoError(t, s.Undo(true))
	assert.Equal(t, "hello", s.Text())
	got, active := s.Selection()
	require.True(t, active)
	assert.Equal(t, sel(0, 0, 0, 5), got)
}

func TestRedoDiscardedByNewEdit(t *testing.T) {
	s := newSession(t, "")
	typeString(t, s, "ab ")
	require.NoError(t, s.Undo(true))
	require.Equal(t, "", s.Text())
	require.True(t, s.History().CanRedo())

	typeString(t, s, "c")
	assert.False(t, s.History().CanRedo())
	require.NoError(t, s.Redo(true))
	assert.Equal(t, "c", s.Text())
}

// --- SetText ---

func TestSetTextReplacesAndResets(t *testing.T) {
	s := newSession(t, "old\ntext\nhere")
	typeString(t, s, "x")
	require.NoError(t, s.SetText("new", true))
	assert.Equal(t, "new", s.Text())
	assert.Equal(t, pos(0, 0), s.Caret())
	assert.False(t, s.History().CanUndo())
	_, active := s.Selection()
	assert.False(t, active)
}

func TestSetTextNormalizesLineEndings(t *testing.T) {
	s := newSession(t, "a\r\nb\rc")
	assert.Equal(t, "a\nb\nc", s.Text())
	assert.Equal(t, 3, s.Document().LineCount())
}

func TestSetTextShrinksDocument(t *testing.T) {
	s := newSession(t, "a\nb\nc\nd")
	require.NoError(t, s.SetText("x\ny", true))
	assert.Equal(t, "x\ny", s.Text())
	assert.Equal(t, 2, s.Document().LineCount())
}

// --- Clipboard ---

func TestCopyKeepsSelection(t *testing.T) {
	s := newSession(t, "hello world")
	require.NoError(t, s.Select(sel(0, 0, 0, 5), true))
	require.NoError(t, s.Copy(true))

	text, err := s.Clipboard().Get()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	_, active := s.Selection()
	assert.True(t, active)
	assert.Equal(t, "hello world", s.Text())
}

func TestCutRemovesSelection(t *testing.T) {
	s := newSession(t, "hello world")
	require.NoError(t, s.Select(sel(0, 5, 0, 11), true))
	require.NoError(t, s.Cut(true))

	text, err := s.Clipboard().Get()
	require.NoError(t, err)
	assert.Equal(t, " world", text)
	assert.Equal(t, "hello", s.Text())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "hello world", s.Text())
}

func TestPasteAtCaret(t *testing.T) {
	s := newSession(t, "ad")
	require.NoError(t, s.Clipboard().Set("bc"))
	require.NoError(t, s.PlaceCaret(pos(0, 1), true))
	require.NoError(t, s.Paste(true))
	assert.Equal(t, "abcd", s.Text())
	assert.Equal(t, pos(0, 3), s.Caret())
}

func TestPasteOverSelectionUndoesAsUnit(t *testing.T) {
	s := newSession(t, "abc")
	require.NoError(t, s.Clipboard().Set("XY"))
	require.NoError(t, s.SelectAll(true))
	require.NoError(t, s.Paste(true))
	assert.Equal(t, "XY", s.Text())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "abc", s.Text())
}

func TestPasteMultiLine(t *testing.T) {
	s := newSession(t, "headtail")
	require.NoError(t, s.Clipboard().Set("one\ntwo"))
	require.NoError(t, s.PlaceCaret(pos(0, 4), true))
	require.NoError(t, s.Paste(true))
	assert.Equal(t, "headone\ntwotail", s.Text())
	assert.Equal(t, pos(1, 3), s.Caret())
}

func TestPasteEmptyClipboardIsNoop(t *testing.T) {
	s := newSession(t, "abc")
	require.NoError(t, s.Paste(true))
	assert.Equal(t, "abc", s.Text())
	assert.False(t, s.History().CanUndo())
}

// --- Indent ---

func TestIndentSelectionSpan(t *testing.T) {
	s := newSession(t, "one\ntwo")
	require.NoError(t, s.Select(sel(0, 0, 1, 3), true))
	require.NoError(t, s.ModifyIndent(true, true))
	assert.Equal(t, "    one\n    two", s.Text())

	require.NoError(t, s.ModifyIndent(false, true))
	assert.Equal(t, "one\ntwo", s.Text())
}

func TestIndentSkipsBlankLinesInSpan(t *testing.T) {
	s := newSession(t, "a\n\nb")
	require.NoError(t, s.Select(sel(0, 0, 2, 1), true))
	require.NoError(t, s.ModifyIndent(true, true))
	assert.Equal(t, "    a\n\n    b", s.Text())
}

func TestIndentUndoesAsOneGroup(t *testing.T) {
	s := newSession(t, "one\ntwo\nthree")
	require.NoError(t, s.Select(sel(0, 0, 2, 5), true))
	require.NoError(t, s.ModifyIndent(true, true))
	require.Equal(t, "    one\n    two\n    three", s.Text())

	require.NoError(t, s.Undo(true))
	assert.Equal(t, "one\ntwo\nthree", s.Text())
}

func TestOutdentWithoutIndentIsNoop(t *testing.T) {
	s := newSession(t, "one")
	require.NoError(t, s.ModifyIndent(false, true))
	assert.Equal(t, "one", s.Text())
}

func TestIndentCaretLineOnly(t *testing.T) {
	s := newSession(t, "a\nb")
	require.NoError(t, s.PlaceCaret(pos(1, 0), true))
	require.NoError(t, s.ModifyIndent(true, true))
	assert.Equal(t, "a\n    b", s.Text())
}

// --- Find ---

func TestFindIsCaseInsensitiveAndWraps(t *testing.T) {
	s := newSession(t, "Alpha\nbeta\nALPHA")
	require.NoError(t, s.Find("alpha", true, true))
	got, active := s.Selection()
	require.True(t, active)
	assert.Equal(t, sel(0, 0, 0, 5), got)
	assert.Equal(t, pos(0, 5), s.Caret())

	require.NoError(t, s.FindNext(true))
	got, _ = s.Selection()
	assert.Equal(t, sel(2, 0, 2, 5), got)
	assert.Equal(t, pos(2, 5), s.Caret())

	// Wraps circularly back to the first match.
	require.NoError(t, s.FindNext(true))
	got, _ = s.Selection()
	assert.Equal(t, sel(0, 0, 0, 5), got)
}

func TestFindBackward(t *testing.T) {
	s := newSession(t, "one\ntwo\nthree")
	require.NoError(t, s.PlaceCaret(pos(2, 0), true))
	require.NoError(t, s.Find("two", false, true))
	got, active := s.Selection()
	require.True(t, active)
	assert.Equal(t, sel(1, 0, 1, 3), got)
	assert.Equal(t, pos(1, 0), s.Caret())
}

func TestFindPrevReversesWithoutStickingDirection(t *testing.T) {
	s := newSession(t, "hit\nmiss\nhit")
	require.NoError(t, s.Find("hit", true, true))
	require.Equal(t, pos(0, 3), s.Caret())

	require.NoError(t, s.FindNext(true))
	require.Equal(t, pos(2, 3), s.Caret())

	// Backward lands on the match just passed, caret at its start.
	require.NoError(t, s.FindPrev(true))
	assert.Equal(t, pos(2, 0), s.Caret())

	// The remembered direction is still forward.
	require.NoError(t, s.FindNext(true))
	assert.Equal(t, pos(2, 3), s.Caret())
}

func TestFindNoMatchLeavesCaret(t *testing.T) {
	s := newSession(t, "abc\ndef")
	require.NoError(t, s.PlaceCaret(pos(1, 1), true))
	require.NoError(t, s.Find("zzz", true, true))
	assert.Equal(t, pos(1, 1), s.Caret())
	_, active := s.Selection()
	assert.False(t, active)
}

func TestFindNextWithoutQueryIsNoop(t *testing.T) {
	s := newSession(t, "abc")
	require.NoError(t, s.FindNext(true))
	assert.Equal(t, pos(0, 0), s.Caret())
}

// --- Executor ---

// stepClock advances a fixed amount on every reading, making budget
// expiry deterministic.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func TestTickSuspendsOnBudget(t *testing.T) {
	// Every Now() reading jumps past the 4ms budget, so each tick
	// advances exactly one step.
	clock := &stepClock{step: 5 * time.Millisecond}
	s := core.NewSession(testConfig(), nil, clock)

	require.NoError(t, s.SetText("a\nb\nc", false))
	require.Equal(t, 1, s.PendingOperations())

	require.NoError(t, s.Tick())
	assert.Equal(t, 1, s.PendingOperations(), "one step cannot finish a multi-line SetText")

	ticks := 1
	for s.PendingOperations() > 0 {
		require.NoError(t, s.Tick())
		ticks++
		require.Less(t, ticks, 20, "operation never terminated")
	}
	assert.Greater(t, ticks, 3)
	assert.Equal(t, "a\nb\nc", s.Text())
}

func TestTickDrainsQueueInOrder(t *testing.T) {
	s := newSession(t, "")
	require.NoError(t, s.InsertText(pos(0, 0), "first", true, false))
	require.NoError(t, s.InsertText(pos(0, 0), "second-", true, false))
	require.Equal(t, 2, s.PendingOperations())

	for i := 0; i < 50 && s.PendingOperations() > 0; i++ {
		require.NoError(t, s.Tick())
	}
	require.Equal(t, 0, s.PendingOperations())
	assert.Equal(t, "second-first", s.Text())
}

func TestRunImmediateBypassesBudget(t *testing.T) {
	clock := &stepClock{step: time.Hour}
	s := core.NewSession(testConfig(), nil, clock)

	lines := strings.Repeat("line\n", 99) + "line"
	require.NoError(t, s.SetText(lines, true))
	assert.Equal(t, 100, s.Document().LineCount())
	assert.Equal(t, 0, s.PendingOperations())
}

func TestFailedOperationIsDequeued(t *testing.T) {
	s := newSession(t, "abc")
	require.NoError(t, s.DeleteText(sel(0, 0, 9, 0), true, false))
	require.NoError(t, s.InsertText(pos(0, 3), "!", true, false))

	var firstErr error
	for i := 0; i < 50 && s.PendingOperations() > 0; i++ {
		if err := s.Tick(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	assert.ErrorIs(t, firstErr, op.ErrInvalidSelection)
	assert.Equal(t, "abc!", s.Text(), "queue keeps moving past a failed operation")
}
