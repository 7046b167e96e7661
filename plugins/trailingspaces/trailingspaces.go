// Package trailingspaces highlights and deletes trailing whitespace in the
// host buffer.
package trailingspaces

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bethropolis/trailspace/internal/core/modified"
	"github.com/bethropolis/trailspace/internal/core/trailing"
	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/plugin"
	"github.com/bethropolis/trailspace/internal/types"
)

// Ensure TrailingSpaces implements plugin.Plugin
var _ plugin.Plugin = (*TrailingSpaces)(nil)

const (
	// Name is the plugin name and its config section under [plugins].
	Name = "trailing_spaces"

	// HighlightKind is the decoration kind passed to SetHighlights.
	HighlightKind = "trailing_spaces"

	CommandDelete         = "trailing-delete"
	CommandDeleteModified = "trailing-delete-modified"
	CommandHighlight      = "trailing-highlight"

	messageTimeout = 5 * time.Second
)

// ErrNotInitialized is returned by operations called before Initialize.
var ErrNotInitialized = errors.New("trailing_spaces plugin not initialized")

// TrailingSpaces keeps trailing whitespace highlighted as the buffer changes
// and removes it on request or on save.
type TrailingSpaces struct {
	api   plugin.EditorAPI
	state *State

	ctx    context.Context
	cancel context.CancelFunc

	saving bool // set while a will-save event is being handled
}

// New creates a new instance of the plugin.
func New() *TrailingSpaces {
	return &TrailingSpaces{}
}

// Name returns the unique name of the plugin.
func (p *TrailingSpaces) Name() string {
	return Name
}

// Initialize builds the plugin state, subscribes to buffer events and
// registers the plugin's commands.
func (p *TrailingSpaces) Initialize(api plugin.EditorAPI) error {
	p.api = api
	settings := readSettings(api)
	p.state = newState(settings.SyntaxIgnore)
	p.ctx, p.cancel = context.WithCancel(context.Background())

	for _, t := range []event.Type{
		event.TypeCursorMoved,
		event.TypeBufferModified,
		event.TypeBufferLoaded,
		event.TypeBufferWillSave,
		event.TypeBufferSaved,
	} {
		api.SubscribeEvent(t, p.HandleEvent)
	}

	commands := map[string]plugin.CommandFunc{
		CommandDelete: func(ctx context.Context, args []string) error {
			_, err := p.DeleteAll(ctx, false)
			return err
		},
		CommandDeleteModified: func(ctx context.Context, args []string) error {
			_, err := p.DeleteAll(ctx, true)
			return err
		},
		CommandHighlight: func(ctx context.Context, args []string) error {
			_, err := p.Scan()
			return err
		},
	}
	for _, name := range []string{CommandDelete, CommandDeleteModified, CommandHighlight} {
		if err := api.RegisterCommand(name, commands[name]); err != nil {
			return fmt.Errorf("failed to register '%s' command: %w", name, err)
		}
	}

	logger.Infof("%s initialized. Live matching: %v, Trim on save: %v, Ignored languages: %v",
		Name, settings.LiveMatching, settings.TrimOnSave, settings.SyntaxIgnore)
	return nil
}

// Shutdown cancels work started from events.
func (p *TrailingSpaces) Shutdown() error {
	if p.cancel != nil {
		p.cancel()
	}
	logger.Debugf("%s: Shut down.", Name)
	return nil
}

// HandleEvent is the single entry point for host events. It never consumes
// the event.
func (p *TrailingSpaces) HandleEvent(e event.Event) bool {
	if p.api == nil {
		return false
	}

	switch e.Type {
	case event.TypeCursorMoved, event.TypeBufferModified, event.TypeBufferLoaded, event.TypeBufferSaved:
		if !readSettings(p.api).LiveMatching {
			return false
		}
		if _, err := p.Scan(); err != nil {
			logger.Errorf("%s: scan after %v failed: %v", Name, e.Type, err)
		}
	case event.TypeBufferWillSave:
		if !readSettings(p.api).TrimOnSave {
			return false
		}
		p.saving = true
		_, err := p.DeleteAll(p.ctx, false)
		p.saving = false
		if err != nil {
			logger.Errorf("%s: trim on save failed: %v", Name, err)
		}
	}
	return false
}

// IsIgnored reports whether the current document's language is in syntax_ignore.
func (p *TrailingSpaces) IsIgnored() bool {
	if p.state == nil || p.api == nil {
		return false
	}
	return p.state.IsIgnored(p.api.GetLanguageID())
}

// Scan recomputes the regions of the current document, caches them and
// updates the highlights. Ignored documents yield empty regions and leave
// both the cache and the highlights untouched.
func (p *TrailingSpaces) Scan() (trailing.Regions, error) {
	if p.api == nil || p.state == nil {
		return trailing.Regions{}, ErrNotInitialized
	}
	if p.IsIgnored() {
		logger.DebugTagf(Name, "skipping scan of ignored language %q", p.api.GetLanguageID())
		return trailing.Regions{}, nil
	}

	regions, err := p.find(readSettings(p.api))
	if err != nil {
		return trailing.Regions{}, err
	}

	docID := p.api.GetDocumentID()
	p.state.cache.Put(docID, regions)
	p.api.SetHighlights(HighlightKind, regions.Highlightable)
	logger.DebugTagf(Name, "%s: %d offending, %d highlighted", docID, len(regions.OffendingLines), len(regions.Highlightable))
	return regions, nil
}

// DeleteAll removes trailing whitespace from the current document and
// returns the number of regions deleted. With override, or when
// modified_lines_only is set, only lines changed since the last save are
// trimmed.
func (p *TrailingSpaces) DeleteAll(ctx context.Context, override bool) (int, error) {
	if p.api == nil || p.state == nil {
		return 0, ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if p.IsIgnored() {
		return 0, nil
	}

	settings := readSettings(p.api)

	var offending []types.Range
	if cached, ok := p.state.cache.Get(p.api.GetDocumentID()); ok && settings.LiveMatching {
		offending = cached.OffendingLines
	} else {
		regions, err := p.find(settings)
		if err != nil {
			return 0, err
		}
		offending = regions.OffendingLines
	}

	if settings.ModifiedLinesOnly || override {
		lines, err := p.modifiedLines()
		if err != nil {
			return 0, err
		}
		offending = trailing.Filter(offending, lines, true)
	}

	if len(offending) == 0 {
		p.notify(settings, "No trailing whitespace to delete")
		return 0, nil
	}

	deletions := make([]types.Range, len(offending))
	for i, r := range offending {
		deletions[len(offending)-1-i] = r
	}
	if err := await(ctx, p.api.ApplyDeletions(ctx, deletions)); err != nil {
		err = fmt.Errorf("delete trailing whitespace: %w", err)
		logger.Errorf("%s: %v", Name, err)
		return 0, err
	}

	count := len(deletions)
	p.notify(settings, "Deleted %d trailing whitespace region(s)", count)

	if _, err := p.Scan(); err != nil {
		return count, err
	}

	if settings.SaveAfterTrim && !settings.TrimOnSave && !p.saving {
		if err := await(ctx, p.api.SaveBuffer(ctx)); err != nil {
			err = fmt.Errorf("save after trim: %w", err)
			logger.Errorf("%s: %v", Name, err)
			return count, err
		}
	}
	return count, nil
}

// Lookup returns the cached regions for documentID.
func (p *TrailingSpaces) Lookup(documentID string) (trailing.Regions, bool) {
	if p.state == nil {
		return trailing.Regions{}, false
	}
	return p.state.cache.Get(documentID)
}

// find scans the current snapshot without touching the cache.
func (p *TrailingSpaces) find(settings Settings) (trailing.Regions, error) {
	re, err := trailing.CompilePattern(settings.Regexp, settings.IncludeEmptyLines)
	if err != nil {
		logger.Errorf("%s: %v", Name, err)
		p.api.SetStatusMessage(messageTimeout, "Invalid trailing whitespace pattern: %v", err)
		return trailing.Regions{}, err
	}

	lines := p.api.GetBufferLines()
	if len(lines) == 0 {
		return trailing.Regions{OffendingLines: []types.Range{}, Highlightable: []types.Range{}}, nil
	}
	caret := p.api.GetCursor()
	if caret.Line < 0 || caret.Line >= len(lines) {
		return trailing.Regions{}, fmt.Errorf("caret line %d outside document of %d lines", caret.Line, len(lines))
	}
	return trailing.Find(re, lines, caret, settings.IncludeCurrentLine), nil
}

// modifiedLines diffs the buffer against the file on disk. Without a
// baseline every line counts as modified.
func (p *TrailingSpaces) modifiedLines() (*modified.LineSet, error) {
	baseline, ok, err := p.api.ReadBufferBaseline()
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	if !ok {
		return modified.All(p.api.GetBufferLineCount()), nil
	}
	return modified.Detect(string(baseline), string(p.api.GetBufferBytes())), nil
}

func (p *TrailingSpaces) notify(settings Settings, format string, args ...interface{}) {
	if !settings.ShowStatusBarMessage {
		return
	}
	p.api.SetStatusMessage(messageTimeout, format, args...)
}

// await blocks until done yields or ctx ends. A closed channel counts as success.
func await(ctx context.Context, done <-chan error) error {
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
