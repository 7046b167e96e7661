package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/trailspace/internal/app"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/types"
	"github.com/bethropolis/trailspace/plugins/trailingspaces"
)

const statusBarHeight = 1

// Styles are the styles used to draw the buffer.
type Styles struct {
	Default    tcell.Style
	LineNumber tcell.Style
	Trailing   tcell.Style
}

// DefaultStyles returns the styles used when none are configured.
func DefaultStyles() Styles {
	return Styles{
		Default:    tcell.StyleDefault,
		LineNumber: tcell.StyleDefault.Foreground(tcell.ColorGray),
		Trailing:   tcell.StyleDefault.Background(tcell.ColorDarkRed),
	}
}

// Viewport is the top-left buffer cell shown on screen: Y is a line, X a visual column.
type Viewport struct {
	Y, X int
}

// tabStop returns the visual width of a tab starting at visualX.
func tabStop(visualX, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	return tabWidth - visualX%tabWidth
}

// visualColumn converts a rune index into a visual column, expanding tabs.
func visualColumn(line []byte, runeIndex, tabWidth int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		runes := gr.Runes()
		if runes[0] == '\t' {
			visualWidth += tabStop(visualWidth, tabWidth)
		} else {
			visualWidth += gr.Width()
		}
		currentRuneIndex += len(runes)
	}
	// Positions past the end of the line (e.g. the cursor) count one cell each.
	if currentRuneIndex < runeIndex {
		visualWidth += runeIndex - currentRuneIndex
	}
	return visualWidth
}

// gutterWidth returns the width of the line number column, 0 when the
// screen is too narrow to show it.
func gutterWidth(lineCount, width int) int {
	if lineCount <= 0 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gw := maxDigits + 1
	if gw >= width {
		return 0
	}
	return gw
}

func inAny(col int, ranges []types.Range) bool {
	for _, r := range ranges {
		if col >= r.Start.Col && col < r.End.Col {
			return true
		}
	}
	return false
}

// DrawBuffer draws the visible part of the buffer with trailing whitespace
// decorated in styles.Trailing.
func DrawBuffer(t *TUI, a *app.App, vp Viewport, styles Styles, tabWidth int) {
	width, height := t.Size()
	viewHeight := height - statusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	lines := a.Buffer().Lines()
	gw := gutterWidth(len(lines), width)
	textAreaWidth := width - gw
	maxDigits := gw - 1
	cursor := a.Cursor()

	for screenY := 0; screenY < viewHeight; screenY++ {
		bufferLineIdx := screenY + vp.Y

		for fillX := 0; fillX < width; fillX++ {
			t.screen.SetContent(fillX, screenY, ' ', nil, styles.Default)
		}

		if bufferLineIdx < 0 || bufferLineIdx >= len(lines) {
			continue
		}

		if gw > 0 {
			numStyle := styles.LineNumber
			if cursor.Line == bufferLineIdx {
				numStyle = numStyle.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, bufferLineIdx+1) {
				t.screen.SetContent(i, screenY, r, nil, numStyle)
			}
		}

		trailing := a.Highlights().OnLine(trailingspaces.HighlightKind, bufferLineIdx)
		gr := uniseg.NewGraphemes(string(lines[bufferLineIdx]))
		currentVisualX := 0
		currentRuneIndex := 0

		for gr.Next() {
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			isTab := clusterRunes[0] == '\t'
			if isTab {
				clusterWidth = tabStop(currentVisualX, tabWidth)
			}

			style := styles.Default
			if inAny(currentRuneIndex, trailing) {
				style = styles.Trailing
			}

			for cell := 0; cell < clusterWidth; cell++ {
				screenX := currentVisualX + cell - vp.X + gw
				if screenX < gw || screenX >= width {
					continue
				}
				switch {
				case isTab || cell > 0:
					t.screen.SetContent(screenX, screenY, ' ', nil, style)
				default:
					t.screen.SetContent(screenX, screenY, clusterRunes[0], clusterRunes[1:], style)
				}
			}

			currentVisualX += clusterWidth
			currentRuneIndex += len(clusterRunes)
			if currentVisualX >= vp.X+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor, hiding it when off screen.
func DrawCursor(t *TUI, a *app.App, vp Viewport, tabWidth int) {
	width, height := t.Size()
	cursor := a.Cursor()
	gw := gutterWidth(a.Buffer().LineCount(), width)

	cursorVisualCol := 0
	if lineBytes, err := a.Buffer().Line(cursor.Line); err == nil {
		cursorVisualCol = visualColumn(lineBytes, cursor.Col, tabWidth)
	} else {
		logger.Debugf("DrawCursor: Error getting line %d: %v", cursor.Line, err)
	}

	screenX := cursorVisualCol - vp.X + gw
	screenY := cursor.Line - vp.Y
	viewHeight := height - statusBarHeight

	if screenX < gw || screenX >= width || screenY < 0 || screenY >= viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}

// ScrollToCursor returns vp adjusted so the cursor is visible.
func ScrollToCursor(t *TUI, a *app.App, vp Viewport, tabWidth int) Viewport {
	width, height := t.Size()
	viewHeight := height - statusBarHeight
	textAreaWidth := width - gutterWidth(a.Buffer().LineCount(), width)
	cursor := a.Cursor()

	if cursor.Line < vp.Y {
		vp.Y = cursor.Line
	} else if viewHeight > 0 && cursor.Line >= vp.Y+viewHeight {
		vp.Y = cursor.Line - viewHeight + 1
	}

	if lineBytes, err := a.Buffer().Line(cursor.Line); err == nil {
		col := visualColumn(lineBytes, cursor.Col, tabWidth)
		if col < vp.X {
			vp.X = col
		} else if textAreaWidth > 0 && col >= vp.X+textAreaWidth {
			vp.X = col - textAreaWidth + 1
		}
	}
	return vp
}
