// internal/event/events.go
package event

import "github.com/bethropolis/trailspace/internal/types"

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Document events
	TypeBufferModified // Fired when buffer content changes (insert/delete)
	TypeBufferLoaded   // Fired after a buffer is loaded or reloaded
	TypeBufferWillSave // Fired before the buffer is written; handlers may still edit
	TypeBufferSaved    // Fired after a buffer is successfully saved
	TypeCursorMoved    // Fired when the cursor position changes

	// Application Lifecycle Events
	TypeAppReady // Fired when the host is fully initialized
	TypeAppQuit  // Fired just before the host shuts down
)

var typeNames = map[Type]string{
	TypeUnknown:        "Unknown",
	TypeBufferModified: "BufferModified",
	TypeBufferLoaded:   "BufferLoaded",
	TypeBufferWillSave: "BufferWillSave",
	TypeBufferSaved:    "BufferSaved",
	TypeCursorMoved:    "CursorMoved",
	TypeAppReady:       "AppReady",
	TypeAppQuit:        "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// BufferModifiedData describes the edits that changed the buffer.
type BufferModifiedData struct {
	DocumentID string
	Edits      []types.EditInfo
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	DocumentID string
	FilePath   string
	LanguageID string
}

// BufferWillSaveData is sent before the buffer is written to FilePath.
type BufferWillSaveData struct {
	DocumentID string
	FilePath   string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	DocumentID string
	FilePath   string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}
