// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/complete"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/core"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/utils"
)

var (
	styleDefault    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleLineNumber = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleSelection  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	stylePopup      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	stylePopupSel   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true)
	stylePopupHead  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy).Bold(true)
)

const popupMaxRows = 8

// gutterWidth computes the line-number gutter width for a document of
// lineCount lines, or 0 when the screen is too narrow.
func gutterWidth(lineCount, screenWidth int) int {
	if lineCount <= 0 {
		lineCount = 1
	}
	digits := int(math.Log10(float64(lineCount))) + 1
	w := digits + 1
	if w >= screenWidth {
		return 0
	}
	return w
}

// isPositionWithin checks if pos is within the normalized range
// [start, end); the end position is exclusive.
func isPositionWithin(pos, start, end types.TextPosition) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}

// columnForVisualX maps a visual column back to a rune index in line.
func columnForVisualX(line string, x, tabWidth int) int {
	count := len([]rune(line))
	for col := 0; col <= count; col++ {
		if utils.VisualWidth(line, col, tabWidth) >= x {
			return col
		}
	}
	return count
}

// DrawBuffer draws the visible portion of the session's document.
func DrawBuffer(t *TUI, session *core.Session, viewY, viewX, viewHeight int) {
	width, _ := t.Size()
	if viewHeight <= 0 || width <= 0 {
		return
	}
	doc := session.Document()
	tabWidth := session.Config().TabWidth
	gutter := gutterWidth(doc.LineCount(), width)
	textAreaWidth := width - gutter

	var selStart, selEnd types.TextPosition
	sel, selectionActive := session.Selection()
	if selectionActive {
		norm := sel.Normalized()
		selStart, selEnd = norm.Start, norm.End
	}

	maxDigits := gutter - 1
	caret := session.Caret()

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + viewY

		for fillX := 0; fillX < width; fillX++ {
			t.screen.SetContent(fillX, screenY, ' ', nil, styleDefault)
		}

		if lineIdx < 0 || lineIdx >= doc.LineCount() {
			continue
		}

		if gutter > 0 {
			numStyle := styleLineNumber
			if caret.Line == lineIdx {
				numStyle = numStyle.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, lineIdx+1) {
				if i < maxDigits {
					t.screen.SetContent(i, screenY, r, nil, numStyle)
				}
			}
		}

		lineStr := doc.LineText(lineIdx)
		gr := uniseg.NewGraphemes(lineStr)
		visualX := 0
		runeIdx := 0

		for gr.Next() {
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			if len(clusterRunes) == 1 && clusterRunes[0] == '\t' {
				clusterWidth = tabWidth - (visualX % tabWidth)
			}
			screenX := (visualX - viewX) + gutter

			if visualX+clusterWidth > viewX && visualX < viewX+textAreaWidth {
				style := styleDefault
				pos := types.TextPosition{Line: lineIdx, Col: runeIdx}
				if selectionActive && isPositionWithin(pos, selStart, selEnd) {
					style = styleSelection
				}

				if screenX >= gutter && screenX < width {
					if clusterRunes[0] == '\t' {
						for i := 0; i < clusterWidth && screenX+i < width; i++ {
							t.screen.SetContent(screenX+i, screenY, ' ', nil, style)
						}
					} else {
						t.screen.SetContent(screenX, screenY, clusterRunes[0], clusterRunes[1:], style)
						for cw := 1; cw < clusterWidth; cw++ {
							if screenX+cw < width {
								t.screen.SetContent(screenX+cw, screenY, ' ', nil, style)
							}
						}
					}
				}
			}

			visualX += clusterWidth
			runeIdx += len(clusterRunes)
			if visualX >= viewX+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor at the caret.
func DrawCursor(t *TUI, session *core.Session, viewY, viewX, viewHeight int) {
	width, _ := t.Size()
	doc := session.Document()
	caret := session.Caret()
	gutter := gutterWidth(doc.LineCount(), width)

	visualCol := utils.VisualWidth(doc.LineText(caret.Line), caret.Col, session.Config().TabWidth)
	screenX := (visualCol - viewX) + gutter
	screenY := caret.Line - viewY

	if screenX < gutter || screenX >= width || screenY < 0 || screenY >= viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}

// DrawCompletion renders the popup under the caret: an optional
// category header, then candidates with the highlighted row inverted.
func DrawCompletion(t *TUI, session *core.Session, viewY, viewX, viewHeight int) {
	engine := session.Completion()
	if !engine.Visible() {
		return
	}
	width, _ := t.Size()
	doc := session.Document()
	caret := session.Caret()
	gutter := gutterWidth(doc.LineCount(), width)

	items := engine.Items()
	selected := engine.Selected()
	header := ""
	if engine.Mode() == complete.ModeProperty {
		header = engine.Category()
	}

	rows := len(items)
	if rows > popupMaxRows {
		rows = popupMaxRows
	}
	// Keep the highlighted row inside the window.
	first := 0
	if selected >= rows {
		first = selected - rows + 1
	}

	popupWidth := len(header)
	for _, item := range items {
		if w := len(item.Text) + len(item.Kind.String()) + 3; w > popupWidth {
			popupWidth = w
		}
	}
	if popupWidth > width-gutter {
		popupWidth = width - gutter
	}
	if popupWidth <= 0 {
		return
	}

	visualCol := utils.VisualWidth(doc.LineText(caret.Line), caret.Col, session.Config().TabWidth)
	x := (visualCol - viewX) + gutter
	y := caret.Line - viewY + 1
	if x+popupWidth > width {
		x = width - popupWidth
	}
	if x < gutter {
		x = gutter
	}

	drawRow := func(row int, text string, style tcell.Style) {
		if row < 0 || row >= viewHeight {
			return
		}
		runes := []rune(text)
		for i := 0; i < popupWidth; i++ {
			r := ' '
			if i < len(runes) {
				r = runes[i]
			}
			t.screen.SetContent(x+i, row, r, nil, style)
		}
	}

	if header != "" {
		drawRow(y, header, stylePopupHead)
		y++
	}
	for i := 0; i < rows; i++ {
		item := items[first+i]
		style := stylePopup
		if first+i == selected {
			style = stylePopupSel
		}
		drawRow(y+i, fmt.Sprintf("%s  %s", item.Text, item.Kind), style)
	}
}
