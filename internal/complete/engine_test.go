// internal/complete/engine_test.go
package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/buffer"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

func docFrom(text string) *buffer.Document {
	d := buffer.New(nil, 4)
	for i, line := range buffer.SplitLines(text) {
		if i == 0 {
			d.SetLineText(0, line)
		} else {
			d.InsertLine(i, line)
		}
	}
	return d
}

// typeAt feeds the runes of text to the engine one at a time, keeping
// the document in sync so each HandleChar sees the caret after the rune.
func typeAt(e *Engine, d *buffer.Document, start types.TextPosition, text string) types.TextPosition {
	caret := start
	for _, r := range text {
		line := d.LineText(caret.Line)
		runes := []rune(line)
		head, tail := string(runes[:caret.Col]), string(runes[caret.Col:])
		d.SetLineText(caret.Line, head+string(r)+tail)
		caret.Col++
		e.HandleChar(d, caret, r)
	}
	return caret
}

func itemTexts(e *Engine) []string {
	items := e.Items()
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
	}
	return texts
}

func TestIdentifierModeSuggestsDeclaredVariable(t *testing.T) {
	d := docFrom("var hello = 5\n")
	e := NewEngine(nil, nil)

	typeAt(e, d, types.TextPosition{Line: 1}, "he")
	require.True(t, e.Visible())
	assert.Equal(t, ModeIdentifier, e.Mode())
	assert.Contains(t, itemTexts(e), "hello")

	suffix, ok := e.Commit()
	require.True(t, ok)
	assert.Equal(t, "llo", suffix, "only the untyped remainder is inserted")
	assert.False(t, e.Visible())
}

func TestIdentifierScanIsCaseInsensitive(t *testing.T) {
	d := docFrom("VAR Hello = 1\n")
	e := NewEngine(nil, nil)
	typeAt(e, d, types.TextPosition{Line: 1}, "he")
	require.True(t, e.Visible())
	assert.Contains(t, itemTexts(e), "Hello")
}

func TestIdentifierModeExcludesExactMatch(t *testing.T) {
	d := docFrom("var abc = 1\n")
	e := NewEngine(nil, nil)
	typeAt(e, d, types.TextPosition{Line: 1}, "abc")
	// The only candidate equals the typed word, so nothing to offer.
	assert.False(t, e.Visible())
}

func TestIdentifierRankingByKindThenName(t *testing.T) {
	d := docFrom("var sleepy = 1\nalias sleeper = d0\n")
	e := NewEngine(nil, nil)
	typeAt(e, d, types.TextPosition{Line: 2}, "sle")
	require.True(t, e.Visible())

	// Variable before alias before keyword, each alphabetical.
	assert.Equal(t, []string{"sleepy", "sleeper", "sleep"}, itemTexts(e))
}

func TestIdentifierIncludesLabelsAndFunctions(t *testing.T) {
	d := docFrom("start:\n s r0 Setting 1\n")
	e := NewEngine(nil, nil)
	typeAt(e, d, types.TextPosition{Line: 2}, "st")
	require.True(t, e.Visible())
	texts := itemTexts(e)
	assert.Contains(t, texts, "start")
}

func TestCompletionSuppressedInComment(t *testing.T) {
	d := docFrom("# he\n")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 0, Col: 4}, 'e')
	assert.False(t, e.Visible())
}

func TestHashInStringDoesNotStartComment(t *testing.T) {
	assert.True(t, inComment(`# x`, 3))
	assert.False(t, inComment(`"#" x`, 5))
	assert.True(t, inComment(`"a" # x`, 7))
}

func TestCompletionSuppressedForDeviceTokens(t *testing.T) {
	d := docFrom("d0\n")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 0, Col: 2}, '0')
	assert.False(t, e.Visible())
}

func TestDeviceTokenMatching(t *testing.T) {
	for _, token := range []string{"d0", "d5", "db", "r0", "r9", "r10", "r15"} {
		assert.True(t, isDeviceToken(token), token)
	}
	for _, token := range []string{"d6", "da", "r16", "door", "rx", "dbx"} {
		assert.False(t, isDeviceToken(token), token)
	}
}

func TestPropertyModeFromAliasNamePattern(t *testing.T) {
	d := docFrom("alias sensor1 = db\nsensor1")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 8}, '.')
	d.SetLineText(1, "sensor1.")

	require.True(t, e.Visible())
	assert.Equal(t, ModeProperty, e.Mode())
	assert.Equal(t, "GasSensor", e.Category())

	texts := itemTexts(e)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts, "Pressure")
	assert.Contains(t, texts, "RatioOxygen")
	assert.IsIncreasing(t, texts, "property list is sorted")
}

func TestPropertyModeFromHashTarget(t *testing.T) {
	d := docFrom("alias thing = -1252983604\nthing")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 6}, '.')
	require.True(t, e.Visible())
	assert.Equal(t, "GasSensor", e.Category())
}

func TestPropertyModeFromQuotedDeviceName(t *testing.T) {
	d := docFrom(`alias thing = "StructureWallLight"` + "\nthing")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 6}, '.')
	require.True(t, e.Visible())
	assert.Equal(t, "Light", e.Category())
}

func TestPropertyModeUnknownFallback(t *testing.T) {
	d := docFrom("alias gadget = d0\ngadget")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 7}, '.')
	require.True(t, e.Visible())
	assert.Equal(t, Unknown, e.Category())
	assert.Contains(t, itemTexts(e), "Setting")
}

func TestDotAfterUnknownWordDismisses(t *testing.T) {
	d := docFrom("nothing")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 0, Col: 7}, '.')
	assert.False(t, e.Visible())
}

func TestDotAfterDeviceTokenDismisses(t *testing.T) {
	d := docFrom("alias d0 = x\nd0")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 2}, '.')
	assert.False(t, e.Visible())
}

func TestPropertyModeRefiltersAsTyped(t *testing.T) {
	d := docFrom("alias sensor1 = db\nsensor1")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 8}, '.')
	d.SetLineText(1, "sensor1.")
	require.True(t, e.Visible())
	total := len(e.Items())

	typeAt(e, d, types.TextPosition{Line: 1, Col: 8}, "Ratio")
	require.True(t, e.Visible())
	assert.Equal(t, ModeProperty, e.Mode())
	filtered := itemTexts(e)
	assert.Less(t, len(filtered), total)
	for _, text := range filtered {
		assert.Contains(t, text, "Ratio")
	}

	suffix, ok := e.Commit()
	require.True(t, ok)
	assert.Equal(t, "RatioCarbonDioxide", "Ratio"+suffix)
}

func TestPropertyFilterWithNoMatchesDismisses(t *testing.T) {
	d := docFrom("alias light1 = d0\nlight1")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 7}, '.')
	d.SetLineText(1, "light1.")
	require.True(t, e.Visible())

	typeAt(e, d, types.TextPosition{Line: 1, Col: 7}, "zz")
	assert.False(t, e.Visible())
}

func TestSelectionWrapsBothWays(t *testing.T) {
	d := docFrom("alias light1 = d0\nlight1")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 7}, '.')
	require.True(t, e.Visible())
	count := len(e.Items())
	require.Greater(t, count, 1)

	assert.Equal(t, 0, e.Selected())
	e.Prev()
	assert.Equal(t, count-1, e.Selected())
	e.Next()
	assert.Equal(t, 0, e.Selected())
	e.Next()
	assert.Equal(t, 1, e.Selected())
}

func TestCommitSelectedCandidate(t *testing.T) {
	d := docFrom("alias light1 = d0\nlight1")
	e := NewEngine(nil, nil)
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 7}, '.')
	require.True(t, e.Visible())
	want := e.Items()[1].Text

	e.Next()
	suffix, ok := e.Commit()
	require.True(t, ok)
	assert.Equal(t, want, suffix, "nothing typed yet, so the whole name is the suffix")
}

func TestCommitWithoutPopup(t *testing.T) {
	e := NewEngine(nil, nil)
	_, ok := e.Commit()
	assert.False(t, ok)
}

func TestNonIdentifierRuneDismisses(t *testing.T) {
	d := docFrom("var hello = 1\n")
	e := NewEngine(nil, nil)
	typeAt(e, d, types.TextPosition{Line: 1, Col: 0}, "he")
	require.True(t, e.Visible())

	d.SetLineText(1, "he ")
	e.HandleChar(d, types.TextPosition{Line: 1, Col: 3}, ' ')
	assert.False(t, e.Visible())
}

func TestInferCategoryPrefersNamePattern(t *testing.T) {
	data := Default()
	// Name pattern wins over a hash in the target.
	got := data.inferCategory(aliasDecl{Name: "myDoor", Target: "-1252983604"})
	assert.Equal(t, "Door", got)

	got = data.inferCategory(aliasDecl{Name: "x", Target: "-1252983604"})
	assert.Equal(t, "GasSensor", got)

	got = data.inferCategory(aliasDecl{Name: "x", Target: "d0"})
	assert.Equal(t, Unknown, got)
}

func TestScanAliases(t *testing.T) {
	decls := scanAliases("alias a = d0\n  ALIAS b=d1\nnot alias c = d2")
	require.Len(t, decls, 2)
	assert.Equal(t, aliasDecl{Name: "a", Target: "d0"}, decls[0])
	assert.Equal(t, aliasDecl{Name: "b", Target: "d1"}, decls[1])
}

func TestScanNamesDeclarations(t *testing.T) {
	text := "var x = 1\ndefine Y 2\nconst z 3\nloop:\n"
	assert.Equal(t, []string{"x"}, scanNames(varRe, text))
	assert.ElementsMatch(t, []string{"Y", "z"}, scanNames(constRe, text))
	assert.Equal(t, []string{"loop"}, scanNames(labelRe, text))
}
