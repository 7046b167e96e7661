package plugin

import (
	"context"
	"time"

	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/types"
)

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc func(ctx context.Context, args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor core.
// It is a controlled interface, plugins never see the buffer directly.
type EditorAPI interface {
	// --- Buffer Access ---
	GetBufferLines() [][]byte              // Snapshot of all lines
	GetBufferLine(line int) ([]byte, error) // Single line
	GetBufferLineCount() int
	GetBufferBytes() []byte
	GetBufferFilePath() string
	GetDocumentID() string // "file://<abs path>" or "untitled:<n>"
	GetLanguageID() string
	ReadBufferBaseline() ([]byte, bool, error) // On-disk content, false when none exists
	IsBufferModified() bool

	// --- Cursor ---
	GetCursor() types.Position

	// --- Buffer Modification ---
	// ApplyDeletions removes all ranges as one atomic edit. The channel yields
	// exactly one value (nil on success) and is then closed.
	ApplyDeletions(ctx context.Context, ranges []types.Range) <-chan error

	// SaveBuffer dispatches TypeBufferWillSave, writes the buffer and dispatches TypeBufferSaved.
	SaveBuffer(ctx context.Context) <-chan error

	// --- Decorations ---
	SetHighlights(kind string, ranges []types.Range)

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(timeout time.Duration, format string, args ...interface{})

	// --- Configuration ---
	// GetPluginConfigValue returns a value from [plugins.<pluginName>] as decoded from TOML.
	GetPluginConfigValue(pluginName string, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the host is closing.
	Shutdown() error
}
