// Package input translates terminal key events into view actions.
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys, including Ctrl combinations, to actions.
type Keymap map[tcell.Key]Action

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap Keymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{keymap: make(Keymap)}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlS] = ActionSave

	p.keymap[tcell.KeyCtrlD] = ActionTrim
	p.keymap[tcell.KeyCtrlT] = ActionTrimModified
	p.keymap[tcell.KeyCtrlL] = ActionRescan

	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd

	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
}

// Bind maps key to action, replacing any existing binding.
func (p *InputProcessor) Bind(key tcell.Key, action Action) {
	p.keymap[key] = action
}

// ProcessEvent returns the action bound to ev.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	if key == tcell.KeyRune {
		// Alt+rune has no binding; plain and shifted runes are inserted.
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return ActionEvent{Action: ActionUnknown}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}
	return ActionEvent{Action: ActionUnknown}
}
