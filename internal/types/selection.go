// internal/types/selection.go
package types

// Selection is an ordered pair of positions marking a text range.
// Start is the anchor and End the active edge; End may precede Start in
// document order while the user drags or shift-selects backwards.
type Selection struct {
	Start TextPosition
	End   TextPosition
}

// IsReversed reports whether the active edge precedes the anchor.
func (s Selection) IsReversed() bool {
	return s.End.Before(s.Start)
}

// IsEmpty reports whether both endpoints address the same place.
func (s Selection) IsEmpty() bool {
	return s.Start.SamePlace(s.End)
}

// Normalized returns the selection with Start preceding End in document
// order. Validity against a concrete document is checked by the
// document store, which owns line bounds.
func (s Selection) Normalized() Selection {
	if s.IsReversed() {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}
