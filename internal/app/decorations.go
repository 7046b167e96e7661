package app

import (
	"sort"

	"github.com/bethropolis/trailspace/internal/types"
)

// Decorations stores highlighted ranges by kind.
type Decorations struct {
	byKind map[string][]types.Range
}

// NewDecorations creates an empty store.
func NewDecorations() *Decorations {
	return &Decorations{byKind: make(map[string][]types.Range)}
}

// Set replaces the ranges of kind. An empty slice clears it.
func (d *Decorations) Set(kind string, ranges []types.Range) {
	if len(ranges) == 0 {
		delete(d.byKind, kind)
		return
	}
	d.byKind[kind] = append([]types.Range(nil), ranges...)
}

// Get returns the ranges of kind.
func (d *Decorations) Get(kind string) []types.Range {
	return d.byKind[kind]
}

// OnLine returns the ranges of kind that start on line, ordered by column.
func (d *Decorations) OnLine(kind string, line int) []types.Range {
	var out []types.Range
	for _, r := range d.byKind[kind] {
		if r.Start.Line == line {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Col < out[j].Start.Col })
	return out
}

// Kinds returns the decoration kinds currently set.
func (d *Decorations) Kinds() []string {
	kinds := make([]string, 0, len(d.byKind))
	for k := range d.byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
