package utils

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// RuneIndexToByteOffset converts a rune index to a byte offset in a line.
// An index at or past the end of the line maps to len(line).
func RuneIndexToByteOffset(line string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(line) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRuneInString(line[byteOffset:])
		byteOffset += size
		currentRune++
	}
	return len(line)
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in a line.
func ByteOffsetToRuneIndex(line string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRuneInString(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break // Don't count rune if offset is within it
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// VisualWidth computes the on-screen cell width of a line up to the
// given rune index, handling grapheme clusters and wide characters.
// Pass a negative runeIndex to measure the whole line. Tabs advance to
// the next multiple of tabWidth.
func VisualWidth(line string, runeIndex int, tabWidth int) int {
	width := 0
	currentRune := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if runeIndex >= 0 && currentRune >= runeIndex {
			break
		}
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			if tabWidth <= 0 {
				tabWidth = 1
			}
			width += tabWidth - (width % tabWidth)
		} else {
			width += gr.Width()
		}
		currentRune += len(runes)
	}
	return width
}

// Clamp bounds v to the inclusive range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
