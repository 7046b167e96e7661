package app

import (
	"context"
	"time"

	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/plugin"
	"github.com/bethropolis/trailspace/internal/types"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Buffer Access ---

func (api *appEditorAPI) GetBufferLines() [][]byte {
	return api.app.buffer.Lines()
}

func (api *appEditorAPI) GetBufferLine(line int) ([]byte, error) {
	return api.app.buffer.Line(line)
}

func (api *appEditorAPI) GetBufferLineCount() int {
	return api.app.buffer.LineCount()
}

func (api *appEditorAPI) GetBufferBytes() []byte {
	return api.app.buffer.Bytes()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.app.buffer.FilePath()
}

func (api *appEditorAPI) GetDocumentID() string {
	return api.app.documentID
}

func (api *appEditorAPI) GetLanguageID() string {
	return api.app.languageID
}

func (api *appEditorAPI) ReadBufferBaseline() ([]byte, bool, error) {
	return api.app.buffer.ReadBaseline()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.app.buffer.IsModified()
}

// --- Cursor ---

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.cursor
}

// --- Buffer Modification ---

func (api *appEditorAPI) ApplyDeletions(ctx context.Context, ranges []types.Range) <-chan error {
	done := api.app.applyDeletions(ctx, ranges)
	api.app.requestRedraw()
	return done
}

func (api *appEditorAPI) SaveBuffer(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	done <- api.app.Save(ctx)
	close(done)
	return done
}

// --- Decorations ---

func (api *appEditorAPI) SetHighlights(kind string, ranges []types.Range) {
	api.app.highlights.Set(kind, ranges)
	api.app.requestRedraw()
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(timeout time.Duration, format string, args ...interface{}) {
	api.app.SetStatusMessage(timeout, format, args...)
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName string, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
