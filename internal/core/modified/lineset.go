package modified

import (
	"github.com/bits-and-blooms/bitset"
)

// LineSet is a set of 0-based line numbers.
type LineSet struct {
	bits *bitset.BitSet
}

// NewLineSet creates an empty set sized for lineCount lines. It grows as needed.
func NewLineSet(lineCount int) *LineSet {
	if lineCount < 0 {
		lineCount = 0
	}
	return &LineSet{bits: bitset.New(uint(lineCount))}
}

// All returns a set holding every line in [0, lineCount).
func All(lineCount int) *LineSet {
	s := NewLineSet(lineCount)
	for i := 0; i < lineCount; i++ {
		s.Add(i)
	}
	return s
}

// Add inserts line into the set. Negative lines are ignored.
func (s *LineSet) Add(line int) {
	if line < 0 {
		return
	}
	s.bits.Set(uint(line))
}

// Contains reports whether line is in the set. A nil set is empty.
func (s *LineSet) Contains(line int) bool {
	if s == nil || s.bits == nil || line < 0 {
		return false
	}
	return s.bits.Test(uint(line))
}

// Len returns the number of lines in the set.
func (s *LineSet) Len() int {
	if s == nil || s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// Lines returns the members in ascending order.
func (s *LineSet) Lines() []int {
	lines := make([]int, 0, s.Len())
	if s == nil || s.bits == nil {
		return lines
	}
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		lines = append(lines, int(i))
	}
	return lines
}
