package trailing

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/bethropolis/trailspace/internal/types"
	"github.com/bethropolis/trailspace/internal/utils"
)

// CompilePattern anchors expr at the end of a line. Unless includeEmpty is
// set, a non-whitespace character must precede the run, so whitespace-only
// lines never match.
func CompilePattern(expr string, includeEmpty bool) (*regexp.Regexp, error) {
	if expr == "" {
		expr = DefaultPattern
	}
	anchored := "(" + expr + ")$"
	if !includeEmpty {
		anchored = `\S` + anchored
	}
	re, err := regexp.Compile(anchored)
	if err != nil {
		return nil, fmt.Errorf("invalid trailing whitespace pattern %q: %w", expr, err)
	}
	return re, nil
}

// MatchLine returns the trailing region of a single line, if any.
func MatchLine(re *regexp.Regexp, line Line) (types.Range, bool) {
	m := re.FindSubmatch(line.Text)
	if m == nil || len(m) < 2 || len(m[1]) == 0 {
		return types.Range{}, false
	}
	// The match offset would include the \S anchor, so locate the captured
	// run itself. It is anchored at $, making the last occurrence the right one.
	start := bytes.LastIndex(line.Text, m[1])
	if start < 0 {
		return types.Range{}, false
	}
	startCol := utils.ByteOffsetToRuneIndex(line.Text, start)
	return types.LineRange(line.Index, startCol, runeLen(line.Text)), true
}

// Scan returns one range per line whose end matches re, in line order.
func Scan(re *regexp.Regexp, lines [][]byte) []types.Range {
	offending := make([]types.Range, 0)
	for i, text := range lines {
		if r, ok := MatchLine(re, Line{Index: i, Text: text}); ok {
			offending = append(offending, r)
		}
	}
	return offending
}

func runeLen(b []byte) int {
	return utf8.RuneCount(b)
}
