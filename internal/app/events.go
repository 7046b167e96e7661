package app

import (
	"github.com/bethropolis/trailspace/internal/event"
)

// handleCursorMovedForStatus updates the status bar based on cursor position
func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if a.status == nil {
		return false
	}
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.status.SetCursorInfo(data.NewPosition)
	}
	return false
}

// handleBufferChangedForStatus refreshes the file name and modified flag.
func (a *App) handleBufferChangedForStatus(e event.Event) bool {
	if a.status == nil {
		return false
	}
	a.status.SetFileInfo(a.buffer.FilePath(), a.buffer.IsModified())
	a.status.SetCursorInfo(a.cursor)
	return false
}
