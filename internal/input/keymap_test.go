package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"ctrl-d trims", tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), ActionEvent{Action: ActionTrim}},
		{"ctrl-t trims modified", tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl), ActionEvent{Action: ActionTrimModified}},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionQuit}},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionEvent{Action: ActionMoveLeft}},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'x'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'X'}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"unbound", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ProcessEvent(tt.ev); got != tt.want {
				t.Errorf("ProcessEvent = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBindOverrides(t *testing.T) {
	p := NewInputProcessor()
	p.Bind(tcell.KeyF5, ActionRescan)
	if got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); got.Action != ActionRescan {
		t.Errorf("F5 = %v, want rescan", got.Action)
	}
	if ActionRescan.String() != "rescan" || Action(999).String() != "unknown" {
		t.Error("unexpected action names")
	}
}
