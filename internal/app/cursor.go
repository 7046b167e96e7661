package app

import (
	"unicode/utf8"

	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/types"
)

// SetCursor moves the cursor to pos, clamped to the buffer.
func (a *App) SetCursor(pos types.Position) {
	clamped := a.clamp(pos)
	if clamped == a.cursor {
		return
	}
	a.cursor = clamped
	a.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: a.cursor})
}

// MoveCursor moves the cursor by a line and column delta. Moving left from
// column 0 wraps to the end of the previous line, moving right from the end
// wraps to the next line.
func (a *App) MoveCursor(deltaLine, deltaCol int) {
	pos := a.cursor
	if deltaLine != 0 {
		pos.Line += deltaLine
	}
	if deltaCol != 0 {
		pos.Col += deltaCol
		if pos.Col < 0 && pos.Line > 0 {
			pos.Line--
			pos.Col = a.lineLength(pos.Line)
		} else if pos.Col > a.lineLength(pos.Line) && pos.Line < a.buffer.LineCount()-1 {
			pos.Line++
			pos.Col = 0
		}
	}
	a.SetCursor(pos)
}

func (a *App) lineLength(line int) int {
	text, err := a.buffer.Line(line)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(text)
}

func (a *App) clamp(pos types.Position) types.Position {
	lineCount := a.buffer.LineCount()
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := a.lineLength(pos.Line); pos.Col > n {
		pos.Col = n
	}
	return pos
}
