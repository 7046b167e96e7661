package types

import "testing"

func TestNewRangeOrdersEnds(t *testing.T) {
	r := NewRange(Position{Line: 2, Col: 5}, Position{Line: 1, Col: 9})
	if r.Start != (Position{Line: 1, Col: 9}) || r.End != (Position{Line: 2, Col: 5}) {
		t.Fatalf("NewRange did not order ends: %v", r)
	}
}

func TestRangeIntersection(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Range
		want   Range
		wantOK bool
	}{
		{
			name:   "contained",
			a:      LineRange(0, 0, 10),
			b:      LineRange(0, 3, 6),
			want:   LineRange(0, 3, 6),
			wantOK: true,
		},
		{
			name:   "overlap",
			a:      LineRange(1, 0, 5),
			b:      LineRange(1, 3, 8),
			want:   LineRange(1, 3, 5),
			wantOK: true,
		},
		{
			name:   "touching",
			a:      LineRange(1, 0, 5),
			b:      LineRange(1, 5, 8),
			want:   LineRange(1, 5, 5),
			wantOK: true,
		},
		{
			name:   "disjoint lines",
			a:      LineRange(0, 0, 5),
			b:      LineRange(2, 0, 5),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersection(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("Intersection ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Intersection = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := LineRange(3, 2, 4)
	if !r.Contains(Position{Line: 3, Col: 2}) {
		t.Error("start position should be contained")
	}
	if r.Contains(Position{Line: 3, Col: 4}) {
		t.Error("end position is exclusive")
	}
	if r.Contains(Position{Line: 2, Col: 3}) {
		t.Error("other line should not be contained")
	}
}

func TestRangeString(t *testing.T) {
	if got := LineRange(0, 3, 6).String(); got != "0:3-6" {
		t.Errorf("String() = %q", got)
	}
	r := Range{Start: Position{Line: 1, Col: 2}, End: Position{Line: 3, Col: 0}}
	if got := r.String(); got != "1:2-3:0" {
		t.Errorf("String() = %q", got)
	}
}
