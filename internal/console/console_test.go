package console

import (
	"path/filepath"
	"strings"
	"testing"
)

func plainOutput(t *testing.T) {
	t.Helper()
	prev := styled
	styled = func() bool { return false }
	t.Cleanup(func() { styled = prev })
}

func TestFormatFinding(t *testing.T) {
	plainOutput(t)

	tests := []struct {
		name     string
		finding  Finding
		expected []string
	}{
		{
			name:    "spaces",
			finding: Finding{File: "main.go", Line: 3, Column: 5, Width: 2, Text: "abcd  "},
			expected: []string{
				"main.go:3:5: trailing whitespace (2 chars)",
				"3 | abcd··",
			},
		},
		{
			name:    "tab on empty line",
			finding: Finding{File: "a.txt", Line: 1, Column: 1, Width: 1, Text: "\t"},
			expected: []string{
				"a.txt:1:1: trailing whitespace (1 char)",
				"1 | →",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatFinding(tt.finding)
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestFormatMessages(t *testing.T) {
	plainOutput(t)

	if got := FormatSuccessMessage("done"); got != "✓ done" {
		t.Errorf("FormatSuccessMessage = %q", got)
	}
	if got := FormatWarningMessage("careful"); got != "⚠ careful" {
		t.Errorf("FormatWarningMessage = %q", got)
	}
	if got := FormatErrorMessage("failed"); got != "✗ failed" {
		t.Errorf("FormatErrorMessage = %q", got)
	}
	if got := FormatInfoMessage("note"); got != "ℹ note" {
		t.Errorf("FormatInfoMessage = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	plainOutput(t)

	out := RenderTable(TableConfig{
		Title:    "Summary",
		Headers:  []string{"File", "Regions"},
		Rows:     [][]string{{"a.go", "2"}, {"longer.go", "10"}},
		TotalRow: []string{"Total", "12"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{
		"Summary",
		"File      | Regions",
		"--------- | -------",
		"a.go      | 2      ",
		"longer.go | 10     ",
		"--------- | -------",
		"Total     | 12     ",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if RenderTable(TableConfig{}) != "" {
		t.Error("empty headers should render nothing")
	}
}

func TestToRelativePath(t *testing.T) {
	if got := ToRelativePath("rel/path.go"); got != "rel/path.go" {
		t.Errorf("relative path changed: %q", got)
	}
	abs, err := filepath.Abs(filepath.Join("sub", "file.go"))
	if err != nil {
		t.Fatal(err)
	}
	if got := ToRelativePath(abs); got != filepath.Join("sub", "file.go") {
		t.Errorf("ToRelativePath(%q) = %q", abs, got)
	}
}
