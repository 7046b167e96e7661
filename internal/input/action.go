package input

// Action is an operation of the terminal view.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionSave

	// Trailing whitespace
	ActionTrim
	ActionTrimModified
	ActionRescan

	// Cursor movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // beginning of line
	ActionMoveEnd  // end of line

	// Text
	ActionInsertRune // uses ActionEvent.Rune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharBackward
)

var actionNames = map[Action]string{
	ActionQuit:               "quit",
	ActionSave:               "save",
	ActionTrim:               "trim",
	ActionTrimModified:       "trim-modified",
	ActionRescan:             "rescan",
	ActionMoveUp:             "up",
	ActionMoveDown:           "down",
	ActionMoveLeft:           "left",
	ActionMoveRight:          "right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "home",
	ActionMoveEnd:            "end",
	ActionInsertRune:         "insert",
	ActionInsertNewLine:      "newline",
	ActionInsertTab:          "tab",
	ActionDeleteCharBackward: "backspace",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // for ActionInsertRune
}
