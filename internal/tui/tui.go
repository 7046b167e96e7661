// Package tui is the terminal view of a document: buffer drawing with
// trailing whitespace decorations, a status bar and key handling.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a TUI on the real terminal.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes a TUI on an existing screen, e.g. a
// tcell.SimulationScreen in tests.
func NewWithScreen(s tcell.Screen) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	return &TUI{screen: s}, nil
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event. It returns nil once the screen is finalized.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostRedraw wakes the view loop from any goroutine.
func (t *TUI) PostRedraw() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
