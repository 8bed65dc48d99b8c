// internal/types/position.go
package types

// TextPosition locates a caret or range endpoint within the document.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line; a value equal
// to the line's rune count addresses the position after the last rune.
//
// PreferNextLine disambiguates a column that sits exactly on a visual
// wrap boundary: the same logical position can render either at the end
// of the current visual line or at the start of the following one. The
// flag never participates in document-order comparisons.
type TextPosition struct {
	Line           int
	Col            int // Rune index
	PreferNextLine bool
}

// Before reports whether p precedes o in document order.
func (p TextPosition) Before(o TextPosition) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Col < o.Col
}

// After reports whether p follows o in document order.
func (p TextPosition) After(o TextPosition) bool {
	return o.Before(p)
}

// SamePlace reports whether two positions address the same logical
// location, ignoring the wrap-boundary preference flag.
func (p TextPosition) SamePlace(o TextPosition) bool {
	return p.Line == o.Line && p.Col == o.Col
}
