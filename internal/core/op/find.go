// internal/core/op/find.go
package op

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/utils"
)

// Find scans for a literal, case-insensitive match, one line per step.
// The scan starts next to the caret, wraps circularly, and revisits the
// caret's line last so the remaining head (or tail) is still covered.
// On a hit the match becomes the selection; without one the caret stays
// put.
type Find struct {
	Query   string
	Forward bool
	// Transient searches (repeat-in-reverse) leave the remembered
	// direction alone so the next plain repeat is unaffected.
	Transient bool

	phase   int
	query   string // lowercased
	line    int
	visits  int
	total   int
	origin  types.TextPosition
	queryRn int
}

// NewFind creates a search for query in the given direction.
func NewFind(query string, forward bool) *Find {
	return &Find{Query: query, Forward: forward}
}

func (o *Find) Name() string { return "Find" }

func (o *Find) step(ed EditorInterface) (Result, error) {
	doc := ed.Document()
	if o.phase == 0 {
		if o.Query == "" {
			return Done, nil
		}
		o.phase = 1
		o.query = lowerRunes(o.Query)
		o.queryRn = utf8.RuneCountInString(o.query)
		o.origin = doc.ClampPosition(ed.Caret())
		o.line = o.origin.Line
		// The origin line is visited twice: once for the near side of
		// the caret, once after wrapping for the far side.
		o.total = doc.LineCount() + 1
		if !o.Transient {
			ed.SetLastFind(o.Query, o.Forward)
		}
	}

	if o.visits >= o.total {
		logger.DebugTagf("find", "No match for %q", o.Query)
		return Done, nil
	}

	line := lowerRunes(doc.LineText(o.line))
	first := o.visits == 0
	final := o.visits == o.total-1

	var start int
	var ok bool
	if o.Forward {
		from := 0
		if first {
			from = o.origin.Col
		}
		limit := utf8.RuneCountInString(line)
		if final {
			limit = o.origin.Col
		}
		start, ok = indexFrom(line, o.query, from, limit)
	} else {
		limit := utf8.RuneCountInString(line)
		if first {
			limit = o.origin.Col
		}
		from := 0
		if final {
			from = o.origin.Col
		}
		start, ok = lastIndexBefore(line, o.query, from, limit)
	}

	if ok {
		matchStart := types.TextPosition{Line: o.line, Col: start}
		matchEnd := types.TextPosition{Line: o.line, Col: start + o.queryRn}
		ed.SetSelection(types.Selection{Start: matchStart, End: matchEnd})
		if o.Forward {
			ed.SetCaret(matchEnd)
		} else {
			ed.SetCaret(matchStart)
		}
		return Done, nil
	}

	o.visits++
	if o.Forward {
		o.line++
		if o.line >= doc.LineCount() {
			o.line = 0
		}
	} else {
		o.line--
		if o.line < 0 {
			o.line = doc.LineCount() - 1
		}
	}
	return Pending, nil
}

// lowerRunes lowercases rune-by-rune, preserving rune indices so match
// offsets map back onto the original line.
func lowerRunes(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// indexFrom finds the first occurrence of query starting at a rune
// index in [from, limit).
func indexFrom(line, query string, from, limit int) (int, bool) {
	b := utils.RuneIndexToByteOffset(line, from)
	i := strings.Index(line[b:], query)
	if i < 0 {
		return 0, false
	}
	start := utils.ByteOffsetToRuneIndex(line, b+i)
	if start >= limit {
		return 0, false
	}
	return start, true
}

// lastIndexBefore finds the last occurrence of query starting at a rune
// index in [from, limit).
func lastIndexBefore(line, query string, from, limit int) (int, bool) {
	end := utils.RuneIndexToByteOffset(line, limit)
	i := strings.LastIndex(line[:end], query)
	if i < 0 {
		return 0, false
	}
	start := utils.ByteOffsetToRuneIndex(line, i)
	if start < from {
		return 0, false
	}
	return start, true
}
