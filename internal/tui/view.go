package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/trailspace/internal/app"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/input"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/statusbar"
	"github.com/bethropolis/trailspace/internal/types"
	"github.com/bethropolis/trailspace/plugins/trailingspaces"
)

const helpMessage = "^S Save | ^D Trim | ^T Trim modified | ^L Rescan | ^Q Quit"

// View drives one App from terminal input. Only the goroutine running Run
// touches the App.
type View struct {
	tui       *TUI
	app       *app.App
	statusBar *statusbar.StatusBar
	input     *input.InputProcessor
	styles    Styles
	tabWidth  int
	viewport  Viewport

	messageActive bool // a temporary message was visible at the last draw
}

// NewView creates a view of a on t. sb must be the StatusView a was created with.
func NewView(t *TUI, a *app.App, sb *statusbar.StatusBar) *View {
	cfg := a.Config()
	styles := DefaultStyles()
	styles.Trailing = cfg.HighlightStyle()

	v := &View{
		tui:       t,
		app:       a,
		statusBar: sb,
		input:     input.NewInputProcessor(),
		styles:    styles,
		tabWidth:  cfg.Editor.TabWidth,
	}
	a.SetRedrawFunc(t.PostRedraw)
	return v
}

// Run processes terminal events until the user quits or ctx is canceled.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go v.forwardEvents(events, done)

	// Expired status messages only disappear on redraw.
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	v.statusBar.SetTemporaryMessage(config.MessageTimeout, helpMessage)
	v.Draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			v.tick()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := v.HandleEvent(ctx, ev); quit {
				return nil
			}
			v.Draw()
		}
	}
}

// forwardEvents polls the terminal until it is closed or done is closed.
func (v *View) forwardEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := v.tui.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one terminal event and reports whether the view should close.
func (v *View) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		v.tui.GetScreen().Sync()
	case *tcell.EventKey:
		return v.handleKey(ctx, e)
	}
	return false
}

func (v *View) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	a := v.app
	ae := v.input.ProcessEvent(ev)
	var err error

	switch ae.Action {
	case input.ActionQuit:
		return true
	case input.ActionSave:
		err = a.ExecuteCommand(ctx, "save")
	case input.ActionTrim:
		err = a.ExecuteCommand(ctx, trailingspaces.CommandDelete)
	case input.ActionTrimModified:
		err = a.ExecuteCommand(ctx, trailingspaces.CommandDeleteModified)
	case input.ActionRescan:
		err = a.ExecuteCommand(ctx, trailingspaces.CommandHighlight)
	case input.ActionMoveUp:
		a.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		a.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		a.MoveCursor(0, -1)
	case input.ActionMoveRight:
		a.MoveCursor(0, 1)
	case input.ActionMoveHome:
		a.SetCursor(types.Position{Line: a.Cursor().Line, Col: 0})
	case input.ActionMoveEnd:
		a.SetCursor(types.Position{Line: a.Cursor().Line, Col: int(^uint(0) >> 1)})
	case input.ActionMovePageUp:
		a.MoveCursor(-v.pageSize(), 0)
	case input.ActionMovePageDown:
		a.MoveCursor(v.pageSize(), 0)
	case input.ActionInsertNewLine:
		err = a.InsertText([]byte("\n"))
	case input.ActionInsertTab:
		err = a.InsertText([]byte("\t"))
	case input.ActionDeleteCharBackward:
		err = a.DeleteBackward()
	case input.ActionInsertRune:
		err = a.InsertText([]byte(string(ae.Rune)))
	default:
		logger.DebugTagf("input", "View: unbound key %s", ev.Name())
	}

	if err != nil {
		logger.Warnf("View: %s: %v", ae.Action, err)
	}
	return false
}

// tick redraws once when the temporary message has expired since the last
// draw, and reports whether it did.
func (v *View) tick() bool {
	if _, active := v.statusBar.Message(); active || !v.messageActive {
		return false
	}
	v.Draw()
	return true
}

func (v *View) pageSize() int {
	_, height := v.tui.Size()
	if n := height - statusBarHeight - 1; n > 0 {
		return n
	}
	return 1
}

// Draw redraws the buffer, the status bar and the cursor.
func (v *View) Draw() {
	a := v.app
	v.viewport = ScrollToCursor(v.tui, a, v.viewport, v.tabWidth)

	v.statusBar.SetFileInfo(a.Buffer().FilePath(), a.Buffer().IsModified())
	v.statusBar.SetLanguage(a.LanguageID())
	v.statusBar.SetCursorInfo(a.Cursor())
	v.statusBar.SetTrailingCount(len(a.Highlights().Get(trailingspaces.HighlightKind)))

	width, height := v.tui.Size()
	v.tui.Clear()
	DrawBuffer(v.tui, a, v.viewport, v.styles, v.tabWidth)
	v.statusBar.Draw(v.tui.GetScreen(), width, height)
	_, v.messageActive = v.statusBar.Message()
	DrawCursor(v.tui, a, v.viewport, v.tabWidth)
	v.tui.Show()
}
