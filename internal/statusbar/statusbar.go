// Package statusbar draws the bottom status line of the terminal view.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/trailspace/internal/types"
)

// Config defines the appearance of the status bar.
type Config struct {
	StyleDefault  tcell.Style // Default background/foreground
	StyleModified tcell.Style // Style for the modified indicator
	StyleMessage  tcell.Style // Style for temporary messages
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy),
		StyleModified: tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy).Bold(true),
		StyleMessage:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy).Bold(true),
	}
}

// WithBase returns a copy of c whose styles use base's colors.
func (c Config) WithBase(base tcell.Style) Config {
	fg, bg, _ := base.Decompose()
	c.StyleDefault = c.StyleDefault.Foreground(fg).Background(bg)
	c.StyleModified = c.StyleModified.Background(bg)
	c.StyleMessage = c.StyleMessage.Foreground(fg).Background(bg)
	return c
}

// StatusBar represents the UI component for the status line.
// It is safe for concurrent use; messages may be set from timers.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	languageID string
	cursorPos  types.Position
	isModified bool
	trailing   int // highlighted trailing whitespace regions, -1 when unknown

	tempMessage    string
	tempMessageEnd time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config:   config,
		now:      time.Now,
		trailing: -1,
	}
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetLanguage updates the language shown on the right.
func (sb *StatusBar) SetLanguage(languageID string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.languageID = languageID
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetTrailingCount updates the number of highlighted trailing whitespace regions.
func (sb *StatusBar) SetTrailingCount(n int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.trailing = n
}

// SetTemporaryMessage displays a message until timeout elapses.
func (sb *StatusBar) SetTemporaryMessage(timeout time.Duration, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageEnd = sb.now().Add(timeout)
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageEnd = time.Time{}
}

// Message returns the active temporary message, if any.
func (sb *StatusBar) Message() (string, bool) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.tempMessage == "" || !sb.now().Before(sb.tempMessageEnd) {
		return "", false
	}
	return sb.tempMessage, true
}

// leftText builds the file part of the default status line.
func (sb *StatusBar) leftText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	if sb.isModified {
		fPath += " [+]"
	}
	return fPath
}

// rightText builds the right-aligned part of the default status line.
func (sb *StatusBar) rightText() string {
	text := fmt.Sprintf("Ln %d, Col %d", sb.cursorPos.Line+1, sb.cursorPos.Col+1)
	if sb.languageID != "" {
		text = sb.languageID + "  " + text
	}
	if sb.trailing > 0 {
		text = fmt.Sprintf("trailing: %d  %s", sb.trailing, text)
	}
	return text
}

// Draw renders the status bar onto the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	message, hasMessage := sb.Message()

	sb.mu.RLock()
	left, right := sb.leftText(), sb.rightText()
	leftStyle := sb.config.StyleDefault
	if sb.isModified {
		leftStyle = sb.config.StyleModified
	}
	messageStyle := sb.config.StyleMessage
	defaultStyle := sb.config.StyleDefault
	sb.mu.RUnlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, defaultStyle)
	}

	if hasMessage {
		drawText(screen, 0, y, width, message, messageStyle)
		return
	}

	rightWidth := uniseg.StringWidth(right)
	leftLimit := width
	if rightWidth+1 < width {
		leftLimit = width - rightWidth - 1
		drawText(screen, width-rightWidth, y, rightWidth, right, defaultStyle)
	}
	drawText(screen, 0, y, leftLimit, left, leftStyle)
}

// drawText draws text starting at x, stopping before maxWidth cells.
// Returns the number of cells used.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	used := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if used+clusterWidth > maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x+used, y, runes[0], runes[1:], style)
		}
		used += clusterWidth
	}
	return used
}
