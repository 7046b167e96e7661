// Package trailing finds trailing whitespace regions in a document and
// decides which of them are shown and which may be deleted.
package trailing

import "github.com/bethropolis/trailspace/internal/types"

// DefaultPattern matches runs of spaces and tabs.
const DefaultPattern = `[ \t]+`

// Regions is the result of one scan.
//
// OffendingLines holds one range per line that ends in whitespace, in line
// order. Highlightable is the subset that should be decorated; it differs
// from OffendingLines only when the caret line is excluded.
type Regions struct {
	OffendingLines []types.Range
	Highlightable  []types.Range
}

// Line is one line of a document snapshot.
type Line struct {
	Index int
	Text  []byte
}

// FullRange returns the range covering the whole line.
func (l Line) FullRange() types.Range {
	return types.LineRange(l.Index, 0, runeLen(l.Text))
}
