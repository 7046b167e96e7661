package trailing

import (
	"regexp"

	"github.com/bethropolis/trailspace/internal/types"
)

// Classify derives the highlightable subset of offending.
//
// With includeCurrentLine the two sets are identical. Otherwise the caret
// line is matched again and every range value-equal to its trailing region
// is left out of Highlightable; it stays in OffendingLines so it can still
// be deleted.
func Classify(re *regexp.Regexp, offending []types.Range, caretLine Line, includeCurrentLine bool) Regions {
	regions := Regions{
		OffendingLines: offending,
		Highlightable:  offending,
	}
	if includeCurrentLine {
		return regions
	}

	match, ok := MatchLine(re, caretLine)
	if !ok {
		return regions
	}
	current, ok := caretLine.FullRange().Intersection(match)
	if !ok {
		return regions
	}

	highlightable := make([]types.Range, 0, len(offending))
	for _, r := range offending {
		if r == current {
			continue
		}
		highlightable = append(highlightable, r)
	}
	regions.Highlightable = highlightable
	return regions
}

// Find runs Scan and Classify over a whole snapshot. caret must be a valid
// position in lines.
func Find(re *regexp.Regexp, lines [][]byte, caret types.Position, includeCurrentLine bool) Regions {
	offending := Scan(re, lines)
	caretLine := Line{Index: caret.Line, Text: lines[caret.Line]}
	return Classify(re, offending, caretLine, includeCurrentLine)
}
