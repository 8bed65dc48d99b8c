// internal/complete/engine.go
package complete

import (
	"sort"
	"strings"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/buffer"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/event"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

// Kind tags a candidate's origin. The order doubles as ranking
// priority.
type Kind int

const (
	KindVariable Kind = iota
	KindAlias
	KindConstant
	KindLabel
	KindKeyword
	KindFunction
	KindProperty
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindAlias:
		return "alias"
	case KindConstant:
		return "constant"
	case KindLabel:
		return "label"
	case KindKeyword:
		return "keyword"
	case KindFunction:
		return "function"
	case KindProperty:
		return "property"
	}
	return "invalid"
}

// Candidate is one suggestion in the popup.
type Candidate struct {
	Text string
	Kind Kind
}

// Mode identifies the active trigger mode.
type Mode int

const (
	ModeNone Mode = iota
	ModeIdentifier
	ModeProperty
)

// Engine tracks the completion popup state for one editing session. It
// re-scans the document on every trigger, so suggestions always follow
// the live text.
type Engine struct {
	data   *Data
	events *event.Manager

	mode     Mode
	typed    string
	category string
	items    []Candidate
	selected int
}

// NewEngine creates an engine over the given data tables.
func NewEngine(data *Data, events *event.Manager) *Engine {
	if data == nil {
		data = Default()
	}
	return &Engine{data: data, events: events}
}

// Visible reports whether the popup is showing.
func (e *Engine) Visible() bool { return e.mode != ModeNone && len(e.items) > 0 }

// Mode returns the active trigger mode.
func (e *Engine) Mode() Mode { return e.mode }

// Category returns the inferred device category shown as the property
// popup's header.
func (e *Engine) Category() string { return e.category }

// Typed returns the filter text typed since the trigger.
func (e *Engine) Typed() string { return e.typed }

// Selected returns the zero-based index of the highlighted candidate.
func (e *Engine) Selected() int { return e.selected }

// Items returns the current candidate list.
func (e *Engine) Items() []Candidate {
	out := make([]Candidate, len(e.items))
	copy(out, e.items)
	return out
}

// HandleChar reacts to one typed rune, with the caret already sitting
// after it. A dot after a known alias opens property mode, identifier
// runes open or refilter identifier mode, and anything else dismisses
// the popup.
func (e *Engine) HandleChar(doc *buffer.Document, caret types.TextPosition, r rune) {
	line := doc.LineText(caret.Line)
	col := caret.Col
	if inComment(line, col) {
		e.Dismiss()
		return
	}

	switch {
	case r == '.':
		e.triggerProperty(doc, line, col)
	case isIdentRune(r):
		if e.mode == ModeProperty && e.refilterProperty(line, col) {
			return
		}
		e.triggerIdentifier(doc, line, col)
	default:
		e.Dismiss()
	}
}

// Next moves the highlight down, wrapping at the end.
func (e *Engine) Next() {
	if !e.Visible() {
		return
	}
	e.selected = (e.selected + 1) % len(e.items)
	e.notify()
}

// Prev moves the highlight up, wrapping at the start.
func (e *Engine) Prev() {
	if !e.Visible() {
		return
	}
	e.selected = (e.selected + len(e.items) - 1) % len(e.items)
	e.notify()
}

// Commit closes the popup and returns the unmatched suffix of the
// chosen candidate, so the caller inserts only the remainder of what
// was already typed.
func (e *Engine) Commit() (string, bool) {
	if !e.Visible() {
		return "", false
	}
	chosen := e.items[e.selected]
	suffix := ""
	if len(e.typed) < len(chosen.Text) && strings.EqualFold(chosen.Text[:len(e.typed)], e.typed) {
		suffix = chosen.Text[len(e.typed):]
	}
	e.Dismiss()
	return suffix, true
}

// Dismiss hides the popup.
func (e *Engine) Dismiss() {
	if e.mode == ModeNone {
		return
	}
	e.mode = ModeNone
	e.items = nil
	e.typed = ""
	e.category = ""
	e.selected = 0
	e.notify()
}

// triggerProperty opens property mode when the token before the dot
// names a declared alias.
func (e *Engine) triggerProperty(doc *buffer.Document, line string, col int) {
	token := wordBefore(line, col-1)
	if token == "" || isDeviceToken(token) {
		e.Dismiss()
		return
	}
	var found *aliasDecl
	for _, decl := range scanAliases(doc.Text()) {
		if decl.Name == token {
			d := decl
			found = &d
			break
		}
	}
	if found == nil {
		e.Dismiss()
		return
	}

	e.mode = ModeProperty
	e.category = e.data.inferCategory(*found)
	e.typed = ""
	e.selected = 0
	e.items = e.propertyItems("")
	logger.DebugTagf("complete", "Property mode for alias %q (category %s, %d items)",
		token, e.category, len(e.items))
	e.notify()
}

// refilterProperty narrows the open property list by the identifier run
// typed after the dot. It reports false when the dot context is gone so
// the caller can fall back to identifier mode.
func (e *Engine) refilterProperty(line string, col int) bool {
	filter := wordBefore(line, col)
	runes := []rune(line)
	at := col - len([]rune(filter)) - 1
	if at < 0 || at >= len(runes) || runes[at] != '.' {
		return false
	}
	e.typed = filter
	e.selected = 0
	e.items = e.propertyItems(filter)
	if len(e.items) == 0 {
		e.Dismiss()
		return true
	}
	e.notify()
	return true
}

func (e *Engine) propertyItems(filter string) []Candidate {
	props := e.data.properties(e.category)
	sort.Strings(props)
	items := make([]Candidate, 0, len(props))
	for _, p := range props {
		if filter != "" && !hasFoldPrefix(p, filter) {
			continue
		}
		items = append(items, Candidate{Text: p, Kind: KindProperty})
	}
	return items
}

// triggerIdentifier opens or refilters identifier mode from the word at
// the caret.
func (e *Engine) triggerIdentifier(doc *buffer.Document, line string, col int) {
	word := wordBefore(line, col)
	if word == "" || isDeviceToken(word) {
		e.Dismiss()
		return
	}

	text := doc.Text()
	keywords := make(map[string]bool, len(e.data.Keywords))
	for _, kw := range e.data.Keywords {
		keywords[kw] = true
	}

	var candidates []Candidate
	add := func(names []string, kind Kind) {
		for _, name := range names {
			candidates = append(candidates, Candidate{Text: name, Kind: kind})
		}
	}
	add(scanNames(varRe, text), KindVariable)
	for _, decl := range scanAliases(text) {
		candidates = append(candidates, Candidate{Text: decl.Name, Kind: KindAlias})
	}
	add(scanNames(constRe, text), KindConstant)
	for _, label := range scanNames(labelRe, text) {
		if !keywords[strings.ToLower(label)] {
			candidates = append(candidates, Candidate{Text: label, Kind: KindLabel})
		}
	}
	add(e.data.Keywords, KindKeyword)
	add(e.data.Functions, KindFunction)

	items := candidates[:0]
	seen := make(map[string]bool)
	for _, c := range candidates {
		if !hasFoldPrefix(c.Text, word) || strings.EqualFold(c.Text, word) {
			continue
		}
		key := strings.ToLower(c.Text) + "\x00" + c.Kind.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind < items[j].Kind
		}
		return strings.ToLower(items[i].Text) < strings.ToLower(items[j].Text)
	})

	if len(items) == 0 {
		e.Dismiss()
		return
	}
	e.mode = ModeIdentifier
	e.category = ""
	e.typed = word
	e.selected = 0
	e.items = items
	logger.DebugTagf("complete", "Identifier mode for %q (%d items)", word, len(items))
	e.notify()
}

func (e *Engine) notify() {
	if e.events == nil {
		return
	}
	e.events.Dispatch(event.TypeCompletionChanged, event.CompletionChangedData{
		Visible: e.Visible(),
		Count:   len(e.items),
	})
}

// hasFoldPrefix reports a case-insensitive prefix match.
func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
