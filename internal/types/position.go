// internal/types/position.go
package types

import "fmt"

// Position represents a cursor or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Range is a span of text between two positions, End exclusive.
// Start is never after End.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a Range, swapping the ends if they are out of order.
func NewRange(start, end Position) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// LineRange returns a single-line range from startCol to endCol.
func LineRange(line, startCol, endCol int) Range {
	return NewRange(Position{Line: line, Col: startCol}, Position{Line: line, Col: endCol})
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsSingleLine reports whether both ends are on the same line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Contains checks if pos is within [Start, End).
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && pos.Before(r.End)
}

// Intersection returns the overlap of r and other. The second result is
// false when the ranges do not touch at all.
func (r Range) Intersection(other Range) (Range, bool) {
	start := r.Start
	if start.Before(other.Start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	if end.Before(start) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

func (r Range) String() string {
	if r.IsSingleLine() {
		return fmt.Sprintf("%d:%d-%d", r.Start.Line, r.Start.Col, r.End.Col)
	}
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
