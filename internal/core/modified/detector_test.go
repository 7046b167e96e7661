package modified

import (
	"reflect"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     []int
	}{
		{"identical", "a\nb\nc", "a\nb\nc", []int{}},
		{"changed middle line", "a\nb\nc", "a\nB\nc", []int{1}},
		{"pure append", "a\nb", "a\nb\nc", []int{2}},
		{"pure insertion at top", "b\nc", "a\nb\nc", []int{0}},
		{"pure deletion", "a\nb\nc", "a\nc", []int{}},
		{"deletion then different content", "a\nb\nc\nd", "a\nx\ny\nd", []int{1, 2}},
		{"crlf baseline", "a\r\nb\r\n", "a\nb\n", []int{}},
		{"empty baseline", "", "a\nb", []int{0, 1}},
		{"trailing whitespace edit", "foo  \nbar", "foo\nbar", []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.old, tt.new).Lines()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Detect(%q, %q) = %v, want %v", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

func TestDetectReflexive(t *testing.T) {
	texts := []string{"", "\n", "one", "x\n\n\ny  \n", "a\nb\na\nb\na\n"}
	for _, text := range texts {
		if got := Detect(text, text); got.Len() != 0 {
			t.Errorf("Detect(%q, same) = %v, want empty", text, got.Lines())
		}
	}
}

func TestLinesWalk(t *testing.T) {
	hunks := []Hunk{
		{Kind: Unchanged, Count: 2},
		{Kind: Removed, Count: 3},
		{Kind: Added, Count: 2},
		{Kind: Unchanged, Count: 1},
		{Kind: Added, Count: 1},
	}
	got := Lines(hunks).Lines()
	want := []int{2, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}

func TestDiffReplaceSplitsIntoRemoveAndAdd(t *testing.T) {
	got := Diff("a\nb\nc", "a\nB\nc")
	want := []Hunk{
		{Kind: Unchanged, Count: 1},
		{Kind: Removed, Count: 1},
		{Kind: Added, Count: 1},
		{Kind: Unchanged, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %+v, want %+v", got, want)
	}
}

func TestLineSet(t *testing.T) {
	s := All(3)
	if s.Len() != 3 || !s.Contains(0) || !s.Contains(2) || s.Contains(3) {
		t.Errorf("All(3) = %v", s.Lines())
	}
	s.Add(130)
	if !s.Contains(130) {
		t.Error("set should grow past its initial size")
	}
	s.Add(-1)
	if s.Contains(-1) {
		t.Error("negative lines are never members")
	}

	var empty *LineSet
	if empty.Contains(0) || empty.Len() != 0 || len(empty.Lines()) != 0 {
		t.Error("nil set should behave as empty")
	}
}
