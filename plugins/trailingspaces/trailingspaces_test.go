package trailingspaces

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/trailspace/internal/buffer"
	"github.com/bethropolis/trailspace/internal/core/trailing"
	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/plugin"
	"github.com/bethropolis/trailspace/internal/types"
)

// fakeAPI is an in-memory host backed by a real SliceBuffer.
type fakeAPI struct {
	buf         *buffer.SliceBuffer
	cursor      types.Position
	docID       string
	languageID  string
	baseline    []byte
	hasBaseline bool
	config      map[string]interface{}

	events   *event.Manager
	commands map[string]plugin.CommandFunc

	highlights   map[string][]types.Range
	highlightSet int
	messages     []string
	deletions    [][]types.Range
	saves        int
	applyErr     error
}

func newFakeAPI(content string) *fakeAPI {
	return &fakeAPI{
		buf:        buffer.NewSliceBufferFromBytes([]byte(content)),
		docID:      "untitled:1",
		languageID: "plaintext",
		config:     make(map[string]interface{}),
		events:     event.NewManager(),
		commands:   make(map[string]plugin.CommandFunc),
		highlights: make(map[string][]types.Range),
	}
}

func (f *fakeAPI) GetBufferLines() [][]byte                  { return f.buf.Lines() }
func (f *fakeAPI) GetBufferLine(i int) ([]byte, error)       { return f.buf.Line(i) }
func (f *fakeAPI) GetBufferLineCount() int                   { return f.buf.LineCount() }
func (f *fakeAPI) GetBufferBytes() []byte                    { return f.buf.Bytes() }
func (f *fakeAPI) GetBufferFilePath() string                 { return "" }
func (f *fakeAPI) GetDocumentID() string                     { return f.docID }
func (f *fakeAPI) GetLanguageID() string                     { return f.languageID }
func (f *fakeAPI) ReadBufferBaseline() ([]byte, bool, error) { return f.baseline, f.hasBaseline, nil }
func (f *fakeAPI) IsBufferModified() bool                    { return f.buf.IsModified() }
func (f *fakeAPI) GetCursor() types.Position                 { return f.cursor }

func (f *fakeAPI) ApplyDeletions(ctx context.Context, ranges []types.Range) <-chan error {
	done := make(chan error, 1)
	f.deletions = append(f.deletions, append([]types.Range(nil), ranges...))
	if f.applyErr != nil {
		done <- f.applyErr
	} else {
		_, err := f.buf.DeleteRanges(ranges)
		done <- err
	}
	close(done)
	return done
}

func (f *fakeAPI) SaveBuffer(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	f.events.Dispatch(event.TypeBufferWillSave, event.BufferWillSaveData{DocumentID: f.docID})
	f.saves++
	f.baseline, f.hasBaseline = f.buf.Bytes(), true
	f.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{DocumentID: f.docID})
	close(done)
	return done
}

func (f *fakeAPI) SetHighlights(kind string, ranges []types.Range) {
	f.highlights[kind] = ranges
	f.highlightSet++
}

func (f *fakeAPI) DispatchEvent(t event.Type, data interface{}) { f.events.Dispatch(t, data) }
func (f *fakeAPI) SubscribeEvent(t event.Type, h event.Handler) { f.events.Subscribe(t, h) }

func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, exists := f.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}
	f.commands[name] = fn
	return nil
}

func (f *fakeAPI) SetStatusMessage(timeout time.Duration, format string, args ...interface{}) {
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	if pluginName != Name {
		return nil, false
	}
	v, ok := f.config[key]
	return v, ok
}

func (f *fakeAPI) lastMessage() string {
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

func setup(t *testing.T, content string, config map[string]interface{}) (*TrailingSpaces, *fakeAPI) {
	t.Helper()
	api := newFakeAPI(content)
	for k, v := range config {
		api.config[k] = v
	}
	p := New()
	if err := p.Initialize(api); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown() })
	return p, api
}

func TestInitializeRegistersCommands(t *testing.T) {
	_, api := setup(t, "", nil)
	for _, name := range []string{CommandDelete, CommandDeleteModified, CommandHighlight} {
		if _, ok := api.commands[name]; !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestScanCachesAndHighlights(t *testing.T) {
	p, api := setup(t, "a  \nb\nc\t\n", nil)

	regions, err := p.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []types.Range{types.LineRange(0, 1, 3), types.LineRange(2, 1, 2)}
	if !reflect.DeepEqual(regions.OffendingLines, want) {
		t.Errorf("OffendingLines = %v, want %v", regions.OffendingLines, want)
	}
	if !reflect.DeepEqual(api.highlights[HighlightKind], want) {
		t.Errorf("highlights = %v, want %v", api.highlights[HighlightKind], want)
	}
	cached, ok := p.Lookup(api.docID)
	if !ok || !reflect.DeepEqual(cached, regions) {
		t.Errorf("Lookup = %v, %v; want %v", cached, ok, regions)
	}
}

func TestScanExcludesCaretLineFromHighlights(t *testing.T) {
	p, api := setup(t, "a  \nb \n", map[string]interface{}{"include_current_line": false})
	api.cursor = types.Position{Line: 1, Col: 1}

	regions, err := p.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(regions.OffendingLines) != 2 {
		t.Fatalf("OffendingLines = %v, want 2 entries", regions.OffendingLines)
	}
	want := []types.Range{types.LineRange(0, 1, 3)}
	if !reflect.DeepEqual(api.highlights[HighlightKind], want) {
		t.Errorf("highlights = %v, want %v", api.highlights[HighlightKind], want)
	}
}

func TestLiveMatchingEvents(t *testing.T) {
	p, api := setup(t, "x \n", nil)

	api.DispatchEvent(event.TypeCursorMoved, event.CursorMovedData{})
	if api.highlightSet != 1 {
		t.Fatalf("highlightSet = %d after cursor move, want 1", api.highlightSet)
	}
	if _, ok := p.Lookup(api.docID); !ok {
		t.Error("cursor move did not populate the cache")
	}

	api.config["live_matching"] = false
	api.DispatchEvent(event.TypeBufferModified, event.BufferModifiedData{DocumentID: api.docID})
	if api.highlightSet != 1 {
		t.Errorf("highlightSet = %d with live matching off, want 1", api.highlightSet)
	}
}

func TestIgnoredLanguageSkipsEverything(t *testing.T) {
	p, api := setup(t, "x \n", map[string]interface{}{"syntax_ignore": []interface{}{"markdown"}})
	api.languageID = "markdown"

	if !p.IsIgnored() {
		t.Fatal("IsIgnored() = false for markdown")
	}
	regions, err := p.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(regions.OffendingLines) != 0 {
		t.Errorf("Scan of ignored document = %v", regions)
	}
	if _, ok := p.Lookup(api.docID); ok {
		t.Error("ignored scan wrote the cache")
	}
	if api.highlightSet != 0 {
		t.Error("ignored scan changed highlights")
	}
	n, err := p.DeleteAll(context.Background(), false)
	if err != nil || n != 0 {
		t.Errorf("DeleteAll = %d, %v; want 0, nil", n, err)
	}
	if len(api.deletions) != 0 {
		t.Error("ignored document was edited")
	}
}

func TestDeleteAllReverseOrder(t *testing.T) {
	p, api := setup(t, "a \nb\t\t\nc\nd   \n", nil)

	n, err := p.DeleteAll(context.Background(), false)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if n != 3 {
		t.Fatalf("DeleteAll = %d, want 3", n)
	}
	if len(api.deletions) != 1 {
		t.Fatalf("ApplyDeletions called %d times, want 1", len(api.deletions))
	}
	batch := api.deletions[0]
	for i := 1; i < len(batch); i++ {
		if batch[i].Start.Line >= batch[i-1].Start.Line {
			t.Errorf("deletions not in reverse line order: %v", batch)
		}
	}
	if got := string(api.buf.Bytes()); got != "a\nb\nc\nd\n" {
		t.Errorf("buffer = %q", got)
	}
	if api.lastMessage() != "Deleted 3 trailing whitespace region(s)" {
		t.Errorf("message = %q", api.lastMessage())
	}
	if regions, _ := p.Lookup(api.docID); len(regions.OffendingLines) != 0 {
		t.Errorf("rescan after delete left %v", regions.OffendingLines)
	}
	if api.saves != 0 {
		t.Errorf("saves = %d, want 0", api.saves)
	}
}

func TestDeleteAllMixedLineEndings(t *testing.T) {
	p, api := setup(t, "a\nb \r\nc\t\r\n", nil)

	regions, err := p.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []types.Range{types.LineRange(1, 1, 2), types.LineRange(2, 1, 2)}
	if !reflect.DeepEqual(regions.OffendingLines, want) {
		t.Fatalf("OffendingLines = %v, want %v", regions.OffendingLines, want)
	}

	n, err := p.DeleteAll(context.Background(), false)
	if err != nil || n != 2 {
		t.Fatalf("DeleteAll = %d, %v; want 2", n, err)
	}
	if got, want := string(api.buf.Bytes()), "a\nb\r\nc\r\n"; got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestDeleteAllNothingToDelete(t *testing.T) {
	p, api := setup(t, "clean\n", nil)
	n, err := p.DeleteAll(context.Background(), false)
	if err != nil || n != 0 {
		t.Fatalf("DeleteAll = %d, %v", n, err)
	}
	if api.lastMessage() != "No trailing whitespace to delete" {
		t.Errorf("message = %q", api.lastMessage())
	}
	if len(api.deletions) != 0 {
		t.Error("ApplyDeletions called with nothing to delete")
	}
}

func TestDeleteAllSilentWhenMessagesDisabled(t *testing.T) {
	p, api := setup(t, "x \n", map[string]interface{}{"show_status_bar_message": false})
	if _, err := p.DeleteAll(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if len(api.messages) != 0 {
		t.Errorf("messages = %v, want none", api.messages)
	}
}

func TestDeleteAllReusesCacheWhenLive(t *testing.T) {
	p, api := setup(t, "a \nb \n", nil)
	if _, err := p.Scan(); err != nil {
		t.Fatal(err)
	}

	// Only the cached line 0 entry should be deleted; line 1 stays.
	cached, _ := p.Lookup(api.docID)
	p.state.cache.Put(api.docID, cachedSubset(cached, 0))

	if _, err := p.DeleteAll(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if got := string(api.buf.Bytes()); got != "a\nb \n" {
		t.Errorf("buffer = %q, want cached regions only", got)
	}
}

func TestDeleteAllRescansWhenNotLive(t *testing.T) {
	p, api := setup(t, "a \nb \n", nil)
	if _, err := p.Scan(); err != nil {
		t.Fatal(err)
	}
	cached, _ := p.Lookup(api.docID)
	p.state.cache.Put(api.docID, cachedSubset(cached, 0))
	api.config["live_matching"] = false

	if _, err := p.DeleteAll(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if got := string(api.buf.Bytes()); got != "a\nb\n" {
		t.Errorf("buffer = %q, want fresh scan to trim both lines", got)
	}
}

func cachedSubset(r trailing.Regions, line int) trailing.Regions {
	var keep []types.Range
	for _, rg := range r.OffendingLines {
		if rg.Start.Line == line {
			keep = append(keep, rg)
		}
	}
	return trailing.Regions{OffendingLines: keep, Highlightable: keep}
}

func TestDeleteModifiedOnly(t *testing.T) {
	tests := []struct {
		name        string
		baseline    string
		hasBaseline bool
		want        string
	}{
		{
			name:        "only changed line trimmed",
			baseline:    "keep \nold\n",
			hasBaseline: true,
			want:        "keep \nnew\n",
		},
		{
			name:        "no baseline trims everything",
			hasBaseline: false,
			want:        "keep\nnew\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, api := setup(t, "keep \nnew \n", nil)
			api.baseline = []byte(tt.baseline)
			api.hasBaseline = tt.hasBaseline

			if err := api.commands[CommandDeleteModified](context.Background(), nil); err != nil {
				t.Fatalf("%s: %v", CommandDeleteModified, err)
			}
			if got := string(api.buf.Bytes()); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModifiedLinesOnlySetting(t *testing.T) {
	p, api := setup(t, "a \nb \n", map[string]interface{}{"modified_lines_only": true})
	api.baseline, api.hasBaseline = []byte("a \nb \n"), true

	n, err := p.DeleteAll(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("DeleteAll = %d on an unmodified buffer, want 0", n)
	}
}

func TestTrimOnSaveDoesNotResave(t *testing.T) {
	_, api := setup(t, "a \n", map[string]interface{}{
		"trim_on_save":    true,
		"save_after_trim": true,
	})

	if err := <-api.SaveBuffer(context.Background()); err != nil {
		t.Fatal(err)
	}
	if api.saves != 1 {
		t.Errorf("saves = %d, want 1", api.saves)
	}
	if got := string(api.baseline); got != "a\n" {
		t.Errorf("saved content = %q, want trimmed", got)
	}
}

func TestSaveAfterTrim(t *testing.T) {
	p, api := setup(t, "a \n", map[string]interface{}{"save_after_trim": true})

	if _, err := p.DeleteAll(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if api.saves != 1 {
		t.Errorf("saves = %d, want 1", api.saves)
	}
}

func TestDeleteAllPropagatesEditFailure(t *testing.T) {
	p, api := setup(t, "a \n", map[string]interface{}{"save_after_trim": true})
	boom := errors.New("boom")
	api.applyErr = boom

	_, err := p.DeleteAll(context.Background(), false)
	if !errors.Is(err, boom) {
		t.Fatalf("DeleteAll error = %v, want boom", err)
	}
	if api.saves != 0 {
		t.Error("saved after a failed edit")
	}
}

func TestInvalidPatternNotifies(t *testing.T) {
	p, api := setup(t, "a \n", map[string]interface{}{"regexp": "[unclosed"})
	if _, err := p.Scan(); err == nil {
		t.Fatal("Scan with invalid pattern returned nil error")
	}
	if !strings.HasPrefix(api.lastMessage(), "Invalid trailing whitespace pattern") {
		t.Errorf("message = %q", api.lastMessage())
	}
}

func TestDeleteAllAfterShutdown(t *testing.T) {
	p, _ := setup(t, "a \n", nil)
	_ = p.Shutdown()
	if _, err := p.DeleteAll(p.ctx, false); !errors.Is(err, context.Canceled) {
		t.Errorf("DeleteAll after shutdown = %v, want context.Canceled", err)
	}
}

func TestReadSettingsTypes(t *testing.T) {
	api := newFakeAPI("")
	api.config["live_matching"] = "yes" // wrong type keeps the default
	api.config["syntax_ignore"] = []string{"go", "diff"}
	api.config["regexp"] = `\s+`

	s := readSettings(api)
	if !s.LiveMatching {
		t.Error("invalid live_matching overrode the default")
	}
	if !reflect.DeepEqual(s.SyntaxIgnore, []string{"go", "diff"}) {
		t.Errorf("SyntaxIgnore = %v", s.SyntaxIgnore)
	}
	if s.Regexp != `\s+` {
		t.Errorf("Regexp = %q", s.Regexp)
	}
}
