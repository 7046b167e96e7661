// Package app hosts a single document: buffer, cursor, event bus, plugins,
// commands and decorations. It has no user interface of its own; the
// terminal view and the batch commands drive it.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bethropolis/trailspace/internal/buffer"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/lang"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/plugin"
	"github.com/bethropolis/trailspace/internal/types"
	"github.com/bethropolis/trailspace/plugins/trailingspaces"
)

// ErrNoFileName is returned when saving a buffer that was never bound to a path.
var ErrNoFileName = errors.New("no file name")

var untitledCounter atomic.Int64

// StatusView receives status information from the host.
type StatusView interface {
	SetFileInfo(filePath string, modified bool)
	SetCursorInfo(pos types.Position)
	SetTemporaryMessage(timeout time.Duration, format string, args ...interface{})
}

// App encapsulates the components of one open document.
// All methods must be called from a single goroutine.
type App struct {
	cfg           *config.Config
	buffer        *buffer.SliceBuffer
	cursor        types.Position
	documentID    string
	languageID    string
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	editorAPI     plugin.EditorAPI
	commands      map[string]plugin.CommandFunc
	highlights    *Decorations
	status        StatusView
	lastMessage   string
	redraw        func()
}

// New creates a host with an empty untitled buffer and initializes the
// built-in plugins. status may be nil.
func New(cfg *config.Config, status StatusView) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	a := &App{
		cfg:           cfg,
		buffer:        buffer.NewSliceBuffer(),
		documentID:    nextUntitledID(),
		languageID:    lang.PlainText,
		eventManager:  event.NewManager(),
		pluginManager: plugin.NewManager(),
		commands:      make(map[string]plugin.CommandFunc),
		highlights:    NewDecorations(),
		status:        status,
	}
	a.editorAPI = newEditorAPI(a)

	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferChangedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferChangedForStatus)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferChangedForStatus)

	registerAppCommands(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		return nil, err
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		return nil, err
	}

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	return a, nil
}

func nextUntitledID() string {
	return fmt.Sprintf("untitled:%d", untitledCounter.Add(1))
}

// Open loads filePath into the buffer. A missing file opens an empty buffer
// bound to that path.
func (a *App) Open(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("resolve path '%s': %w", filePath, err)
	}
	buf := buffer.NewSliceBuffer()
	if err := buf.Load(absPath); err != nil {
		return err
	}

	a.buffer = buf
	a.documentID = "file://" + filepath.ToSlash(absPath)
	a.languageID = lang.IDForFile(absPath)
	a.cursor = types.Position{}
	logger.Debugf("App: opened %s as %s (%s)", absPath, a.documentID, a.languageID)

	a.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{
		DocumentID: a.documentID,
		FilePath:   absPath,
		LanguageID: a.languageID,
	})
	return nil
}

// OpenBytes loads content into a new untitled buffer.
func (a *App) OpenBytes(content []byte, languageID string) {
	a.buffer = buffer.NewSliceBufferFromBytes(content)
	a.documentID = nextUntitledID()
	a.languageID = languageID
	if a.languageID == "" {
		a.languageID = lang.PlainText
	}
	a.cursor = types.Position{}

	a.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{
		DocumentID: a.documentID,
		LanguageID: a.languageID,
	})
}

// Shutdown stops the plugins.
func (a *App) Shutdown() {
	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	a.pluginManager.ShutdownPlugins()
	if a.buffer.IsModified() {
		logger.Warnf("App: %s closed with unsaved changes", a.documentID)
	}
}

// SetRedrawFunc installs a callback run whenever visible state changes
// outside of a direct call (highlights, status messages).
func (a *App) SetRedrawFunc(fn func()) {
	a.redraw = fn
}

func (a *App) requestRedraw() {
	if a.redraw != nil {
		a.redraw()
	}
}

// --- Accessors ---

func (a *App) Config() *config.Config      { return a.cfg }
func (a *App) Buffer() buffer.Buffer       { return a.buffer }
func (a *App) Cursor() types.Position      { return a.cursor }
func (a *App) DocumentID() string          { return a.documentID }
func (a *App) LanguageID() string          { return a.languageID }
func (a *App) EditorAPI() plugin.EditorAPI { return a.editorAPI }
func (a *App) Highlights() *Decorations    { return a.highlights }
func (a *App) LastMessage() string         { return a.lastMessage }

// TrailingSpaces returns the trailing whitespace plugin.
func (a *App) TrailingSpaces() *trailingspaces.TrailingSpaces {
	p, ok := a.pluginManager.GetPlugin(trailingspaces.Name)
	if !ok {
		return nil
	}
	ts, _ := p.(*trailingspaces.TrailingSpaces)
	return ts
}

// SetStatusMessage shows a temporary message and remembers it.
func (a *App) SetStatusMessage(timeout time.Duration, format string, args ...interface{}) {
	a.lastMessage = fmt.Sprintf(format, args...)
	logger.DebugTagf("status", "App: status message: %s", a.lastMessage)
	if a.status != nil {
		a.status.SetTemporaryMessage(timeout, "%s", a.lastMessage)
	}
	a.requestRedraw()
}
