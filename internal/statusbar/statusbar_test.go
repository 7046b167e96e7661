package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/trailspace/internal/types"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(string(cell.Runes))
	}
	return b.String()
}

func TestDrawDefaultLine(t *testing.T) {
	screen := newScreen(t, 60, 3)
	sb := New(DefaultConfig())
	sb.SetFileInfo("notes.txt", true)
	sb.SetLanguage("plaintext")
	sb.SetCursorInfo(types.Position{Line: 4, Col: 2})
	sb.SetTrailingCount(2)

	sb.Draw(screen, 60, 3)
	screen.Show()

	row := rowText(screen, 2)
	if !strings.HasPrefix(row, "notes.txt [+]") {
		t.Errorf("left side = %q", row)
	}
	if !strings.HasSuffix(row, "trailing: 2  plaintext  Ln 5, Col 3") {
		t.Errorf("right side = %q", row)
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sb := New(DefaultConfig())
	sb.now = func() time.Time { return now }

	sb.SetTemporaryMessage(time.Second, "Deleted %d trailing whitespace region(s)", 3)
	if msg, ok := sb.Message(); !ok || msg != "Deleted 3 trailing whitespace region(s)" {
		t.Fatalf("Message = %q, %v", msg, ok)
	}

	screen := newScreen(t, 50, 1)
	sb.Draw(screen, 50, 1)
	screen.Show()
	if row := rowText(screen, 0); !strings.HasPrefix(row, "Deleted 3") {
		t.Errorf("row = %q", row)
	}

	now = now.Add(2 * time.Second)
	if _, ok := sb.Message(); ok {
		t.Error("message still active after timeout")
	}
	sb.Draw(screen, 50, 1)
	screen.Show()
	if row := rowText(screen, 0); !strings.HasPrefix(row, "[No Name]") {
		t.Errorf("row after expiry = %q", row)
	}
}

func TestDrawTruncatesWideText(t *testing.T) {
	screen := newScreen(t, 5, 1)
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage(time.Minute, "日本語テキスト")
	sb.Draw(screen, 5, 1)
	screen.Show()

	cells, _, _ := screen.GetContents()
	// Two double-width clusters fit in five cells.
	if string(cells[0].Runes) != "日" || string(cells[2].Runes) != "本" {
		t.Errorf("cells = %q %q", string(cells[0].Runes), string(cells[2].Runes))
	}
}
