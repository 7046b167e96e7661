package trailing

import "github.com/bethropolis/trailspace/internal/types"

// LineSet reports membership of line numbers.
type LineSet interface {
	Contains(line int) bool
}

// Filter keeps the ranges whose start line is in modified. When enabled is
// false the input is returned unchanged.
func Filter(ranges []types.Range, modified LineSet, enabled bool) []types.Range {
	if !enabled {
		return ranges
	}
	kept := make([]types.Range, 0, len(ranges))
	for _, r := range ranges {
		if modified != nil && modified.Contains(r.Start.Line) {
			kept = append(kept, r)
		}
	}
	return kept
}
