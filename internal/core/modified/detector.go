// Package modified works out which lines of a buffer differ from the version
// stored on disk.
package modified

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// HunkKind classifies a run of lines in a line diff.
type HunkKind int

const (
	Unchanged HunkKind = iota
	Added
	Removed
)

func (k HunkKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// Hunk is a run of Count lines sharing one kind.
type Hunk struct {
	Kind  HunkKind
	Count int
}

// SplitLines splits text on "\n", dropping a trailing "\r" from each line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Diff computes the line hunks that turn oldText into newText.
// A replaced block becomes a Removed hunk followed by an Added hunk.
func Diff(oldText, newText string) []Hunk {
	a := SplitLines(oldText)
	b := SplitLines(newText)

	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)
	var hunks []Hunk
	for _, op := range matcher.GetOpCodes() {
		removed := op.I2 - op.I1
		added := op.J2 - op.J1
		switch op.Tag {
		case 'e':
			hunks = append(hunks, Hunk{Kind: Unchanged, Count: added})
		case 'd':
			hunks = append(hunks, Hunk{Kind: Removed, Count: removed})
		case 'i':
			hunks = append(hunks, Hunk{Kind: Added, Count: added})
		case 'r':
			hunks = append(hunks,
				Hunk{Kind: Removed, Count: removed},
				Hunk{Kind: Added, Count: added},
			)
		}
	}
	return hunks
}

// Lines walks hunks and returns the destination line numbers that were added.
// Removed hunks do not advance the destination cursor.
func Lines(hunks []Hunk) *LineSet {
	total := 0
	for _, h := range hunks {
		if h.Kind != Removed {
			total += h.Count
		}
	}

	set := NewLineSet(total)
	cursor := 0
	for _, h := range hunks {
		if h.Kind == Added {
			for line := cursor; line < cursor+h.Count; line++ {
				set.Add(line)
			}
		}
		if h.Kind != Removed {
			cursor += h.Count
		}
	}
	return set
}

// Detect returns the lines of newText that are new or changed relative to oldText.
func Detect(oldText, newText string) *LineSet {
	return Lines(Diff(oldText, newText))
}
