// internal/buffer/document_test.go
package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

func docWith(t *testing.T, lines ...string) *Document {
	t.Helper()
	d := New(nil, 4)
	for i, text := range lines {
		if i == 0 {
			d.SetLineText(0, text)
		} else {
			d.InsertLine(i, text)
		}
	}
	return d
}

func TestNewDocumentHasOneEmptyLine(t *testing.T) {
	d := New(nil, 4)
	require.Equal(t, 1, d.LineCount())
	assert.Equal(t, "", d.LineText(0))
	assert.Equal(t, "", d.Text())
}

func TestInsertAndRemoveLines(t *testing.T) {
	d := docWith(t, "one", "two", "three")
	assert.Equal(t, "one\ntwo\nthree", d.Text())

	d.InsertLine(1, "between")
	assert.Equal(t, "one\nbetween\ntwo\nthree", d.Text())

	d.RemoveLine(2)
	assert.Equal(t, "one\nbetween\nthree", d.Text())

	d.InsertLine(d.LineCount(), "tail")
	assert.Equal(t, "one\nbetween\nthree\ntail", d.Text())
}

func TestRemoveOnlyLineKeepsEmptyLine(t *testing.T) {
	d := docWith(t, "solo")
	d.RemoveLine(0)
	require.Equal(t, 1, d.LineCount())
	assert.Equal(t, "", d.LineText(0))
}

func TestReflowAssignsOffsets(t *testing.T) {
	d := docWith(t, "a", "b", "c")
	assert.Equal(t, 0.0, d.Line(0).OffsetY())
	assert.Equal(t, 1.0, d.Line(1).OffsetY())
	assert.Equal(t, 2.0, d.Line(2).OffsetY())
	assert.Equal(t, 3.0, d.TotalHeight())

	d.SetHeightFunc(func(string) float64 { return 2 })
	d.ReflowFrom(0)
	assert.Equal(t, 2.0, d.Line(1).OffsetY())
	assert.Equal(t, 6.0, d.TotalHeight())
}

func TestClampPosition(t *testing.T) {
	d := docWith(t, "abc", "de")
	assert.Equal(t, types.TextPosition{Line: 0, Col: 0},
		d.ClampPosition(types.TextPosition{Line: -5, Col: -1}))
	assert.Equal(t, types.TextPosition{Line: 1, Col: 2},
		d.ClampPosition(types.TextPosition{Line: 9, Col: 9}))
	assert.Equal(t, types.TextPosition{Line: 0, Col: 3},
		d.ClampPosition(types.TextPosition{Line: 0, Col: 7}))
}

func TestValidPositionAndSelection(t *testing.T) {
	d := docWith(t, "abc")
	assert.True(t, d.ValidPosition(types.TextPosition{Line: 0, Col: 3}))
	assert.False(t, d.ValidPosition(types.TextPosition{Line: 0, Col: 4}))
	assert.False(t, d.ValidPosition(types.TextPosition{Line: 1, Col: 0}))
	assert.True(t, d.ValidSelection(types.Selection{
		Start: types.TextPosition{Line: 0, Col: 1},
		End:   types.TextPosition{Line: 0, Col: 3},
	}))
}

func TestTextInRange(t *testing.T) {
	d := docWith(t, "hello", "big", "world")

	single := d.TextInRange(types.Selection{
		Start: types.TextPosition{Line: 0, Col: 1},
		End:   types.TextPosition{Line: 0, Col: 4},
	})
	assert.Equal(t, "ell", single)

	multi := d.TextInRange(types.Selection{
		Start: types.TextPosition{Line: 0, Col: 3},
		End:   types.TextPosition{Line: 2, Col: 2},
	})
	assert.Equal(t, "lo\nbig\nwo", multi)

	// Reversed selections normalize before extraction.
	reversed := d.TextInRange(types.Selection{
		Start: types.TextPosition{Line: 2, Col: 2},
		End:   types.TextPosition{Line: 0, Col: 3},
	})
	assert.Equal(t, "lo\nbig\nwo", reversed)

	empty := d.TextInRange(types.Selection{
		Start: types.TextPosition{Line: 1, Col: 1},
		End:   types.TextPosition{Line: 1, Col: 1},
	})
	assert.Equal(t, "", empty)
}

func TestLongestLineWidthCountsTabs(t *testing.T) {
	d := docWith(t, "ab", "\tz")
	// Tab expands to the next stop: width 4 plus one rune.
	assert.Equal(t, 5, d.LongestLineWidth())
}
