// internal/core/op/insert.go
package op

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/buffer"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core/history"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/utils"
)

// spliceMode controls how a multi-line insert behaves when the
// insertion point sits at the end of a line. In auto mode the trailing
// segment is joined onto the line that already follows, reusing the
// existing break instead of creating a new one. Inverse operations
// replaying deleted text must never splice.
type spliceMode int

const (
	spliceAuto spliceMode = iota
	spliceNever
)

const (
	insPrepare = iota
	insLines
	insFinalize
)

// InsertText inserts sanitized text at a position, one line segment per
// step. Multi-line payloads therefore never block a tick on a huge
// paste.
type InsertText struct {
	Pos          types.TextPosition
	Text         string
	AddToHistory bool

	splice  spliceMode
	phase   int
	clean   string
	segs    []string
	next    int
	head    string
	tail    string
	spliced bool
	before  types.EditorState
}

// NewInsertText creates an insert of text at pos.
func NewInsertText(pos types.TextPosition, text string, addToHistory bool) *InsertText {
	return &InsertText{Pos: pos, Text: text, AddToHistory: addToHistory}
}

func (o *InsertText) Name() string { return "InsertText" }

func (o *InsertText) step(ed EditorInterface) (Result, error) {
	switch o.phase {
	case insPrepare:
		return o.prepare(ed)
	case insLines:
		return o.insertSegment(ed)
	default:
		return o.finalize(ed)
	}
}

func (o *InsertText) prepare(ed EditorInterface) (Result, error) {
	cfg := ed.Config()
	o.clean = buffer.Sanitize(o.Text, cfg.ExpandTabs, cfg.TabWidth)
	if o.clean == "" {
		return Done, nil
	}
	doc := ed.Document()
	o.Pos = doc.ClampPosition(o.Pos)
	o.before = ed.CaptureState()
	o.segs = buffer.SplitLines(o.clean)

	line := doc.LineText(o.Pos.Line)
	cut := utils.RuneIndexToByteOffset(line, o.Pos.Col)
	o.head, o.tail = line[:cut], line[cut:]
	o.spliced = o.splice == spliceAuto &&
		len(o.segs) > 1 && o.tail == "" && o.Pos.Line+1 < doc.LineCount()

	o.phase = insLines
	return Pending, nil
}

// insertSegment places one segment per step: the first extends the
// current line, intermediates become new lines, and the last either
// carries the split-off tail or is joined onto the following line.
func (o *InsertText) insertSegment(ed EditorInterface) (Result, error) {
	doc := ed.Document()
	i := o.next
	last := len(o.segs) - 1
	switch {
	case i == 0 && last == 0:
		doc.SetLineText(o.Pos.Line, o.head+o.segs[0]+o.tail)
	case i == 0:
		doc.SetLineText(o.Pos.Line, o.head+o.segs[0])
	case i == last && o.spliced:
		at := o.Pos.Line + last
		doc.SetLineText(at, o.segs[i]+doc.LineText(at))
	case i == last:
		doc.InsertLine(o.Pos.Line+i, o.segs[i]+o.tail)
	default:
		doc.InsertLine(o.Pos.Line+i, o.segs[i])
	}
	o.next++
	if o.next > last {
		o.phase = insFinalize
	}
	return Pending, nil
}

func (o *InsertText) finalize(ed EditorInterface) (Result, error) {
	end := insertEnd(o.Pos, o.segs)
	ed.SetCaret(end)
	ed.ClearSelection()
	if o.AddToHistory {
		after := ed.CaptureState()
		ed.History().Append(history.Node{
			Kind:    history.KindInsert,
			Text:    o.clean,
			Start:   o.Pos,
			End:     end,
			Before:  o.before,
			After:   after,
			Spliced: o.spliced,
		})
	}
	ed.NotifyChanged(o.Pos.Line)
	return Done, nil
}

// insertEnd computes the caret position after inserting segs at pos.
func insertEnd(pos types.TextPosition, segs []string) types.TextPosition {
	if len(segs) == 1 {
		return types.TextPosition{Line: pos.Line, Col: pos.Col + utf8.RuneCountInString(segs[0])}
	}
	return types.TextPosition{
		Line: pos.Line + len(segs) - 1,
		Col:  utf8.RuneCountInString(segs[len(segs)-1]),
	}
}

const (
	chPrepare = iota
	chReplacing
	chInsert
)

// InsertCharacter types a single rune at the caret. When a selection is
// active it first drives an embedded delete so the character replaces
// the selected text, with both actions recorded in the same milestone
// group.
type InsertCharacter struct {
	Rune rune

	phase int
	sub   *DeleteText
}

// NewInsertCharacter creates a typed-character operation.
func NewInsertCharacter(r rune) *InsertCharacter {
	return &InsertCharacter{Rune: r}
}

func (o *InsertCharacter) Name() string { return "InsertCharacter" }

func (o *InsertCharacter) step(ed EditorInterface) (Result, error) {
	switch o.phase {
	case chPrepare:
		if sel, ok := ed.Selection(); ok && !sel.IsEmpty() {
			ed.History().Boundary()
			o.sub = NewDeleteText(sel, true)
			o.sub.Bracket = false
			o.phase = chReplacing
			return Pending, nil
		}
		o.phase = chInsert
		return o.insert(ed)
	case chReplacing:
		r, err := step(o.sub, ed)
		if err != nil {
			return Done, err
		}
		if r == Done {
			o.sub = nil
			o.phase = chInsert
		}
		return Pending, nil
	default:
		return o.insert(ed)
	}
}

func (o *InsertCharacter) insert(ed EditorInterface) (Result, error) {
	doc := ed.Document()
	cfg := ed.Config()
	r := o.Rune
	if r == '\r' {
		r = '\n'
	}
	if r != '\n' && r != '\t' && (unicode.IsControl(r) || r == unicode.ReplacementChar) {
		return Done, nil
	}

	before := ed.CaptureState()
	caret := doc.ClampPosition(ed.Caret())
	line := doc.LineText(caret.Line)
	cut := utils.RuneIndexToByteOffset(line, caret.Col)
	head, tail := line[:cut], line[cut:]

	var text string
	var end types.TextPosition
	switch {
	case r == '\n':
		doc.SetLineText(caret.Line, head)
		doc.InsertLine(caret.Line+1, tail)
		text = "\n"
		end = types.TextPosition{Line: caret.Line + 1, Col: 0}
	default:
		text = string(r)
		if r == '\t' && cfg.ExpandTabs {
			width := cfg.TabWidth
			if width <= 0 {
				width = 1
			}
			text = strings.Repeat(" ", width-(caret.Col%width))
		}
		doc.SetLineText(caret.Line, head+text+tail)
		end = types.TextPosition{Line: caret.Line, Col: caret.Col + utf8.RuneCountInString(text)}
	}

	ed.SetCaret(end)
	ed.ClearSelection()
	after := ed.CaptureState()
	ed.History().Append(history.Node{
		Kind:   history.KindInsert,
		Text:   text,
		Start:  caret,
		End:    end,
		Before: before,
		After:  after,
	})
	if !isWordRune(r) {
		// Word breaks close the current undo group, so undo peels off
		// whole words rather than single keystrokes.
		ed.History().Boundary()
	}
	ed.NotifyChanged(caret.Line)
	ed.CharTyped(o.Rune)
	return Done, nil
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
