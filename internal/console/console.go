// Package console formats command-line output. Styling is applied only
// when stdout is a terminal.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Finding is one trailing whitespace region in a file. Line and Column are 1-based.
type Finding struct {
	File   string
	Line   int
	Column int
	Width  int    // number of whitespace characters
	Text   string // full line, for context
}

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	contextLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))

	whitespaceStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF5555")).
			Foreground(lipgloss.Color("#282A36"))
)

// styled is swapped in tests.
var styled = isTTY

// isTTY checks if stdout is a terminal
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// applyStyle conditionally applies styling based on TTY status
func applyStyle(style lipgloss.Style, text string) string {
	if styled() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to a path relative to the working directory.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	relPath, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return path
	}
	return relPath
}

// visibleWhitespace replaces spaces and tabs so they can be seen.
func visibleWhitespace(s string) string {
	return strings.NewReplacer(" ", "·", "\t", "→").Replace(s)
}

// FormatFinding formats a finding as "file:line:col: trailing whitespace"
// followed by the line with the whitespace marked.
func FormatFinding(f Finding) string {
	var output strings.Builder

	location := fmt.Sprintf("%s:%d:%d:", ToRelativePath(f.File), f.Line, f.Column)
	output.WriteString(applyStyle(filePathStyle, location))
	output.WriteString(" ")
	output.WriteString(applyStyle(warningStyle, "trailing whitespace"))
	if f.Width > 0 {
		output.WriteString(fmt.Sprintf(" (%d char%s)", f.Width, plural(f.Width)))
	}
	output.WriteString("\n")

	if f.Text != "" || f.Width > 0 {
		runes := []rune(f.Text)
		start := f.Column - 1
		if start < 0 || start > len(runes) {
			start = len(runes)
		}
		lineNum := fmt.Sprintf("%d", f.Line)
		output.WriteString(applyStyle(lineNumberStyle, lineNum))
		output.WriteString(" | ")
		output.WriteString(applyStyle(contextLineStyle, string(runes[:start])))
		output.WriteString(applyStyle(whitespaceStyle, visibleWhitespace(string(runes[start:]))))
		output.WriteString("\n")
	}
	return output.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// FormatSuccessMessage formats a success message with styling
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

// FormatInfoMessage formats an informational message
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

// FormatWarningMessage formats a warning message
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

// FormatErrorMessage formats an error message
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// Table rendering styles
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#BD93F9"))

	tableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2"))

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6272A4"))
)

// TableConfig represents configuration for table rendering
type TableConfig struct {
	Headers  []string
	Rows     [][]string
	Title    string
	TotalRow []string
}

// RenderTable renders a formatted table using lipgloss
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		return ""
	}

	var output strings.Builder
	if config.Title != "" {
		output.WriteString(applyStyle(successStyle, config.Title))
		output.WriteString("\n")
	}

	colWidths := make([]int, len(config.Headers))
	for i, header := range config.Headers {
		colWidths[i] = lipgloss.Width(header)
	}
	allRows := config.Rows
	if len(config.TotalRow) > 0 {
		allRows = append(append([][]string(nil), allRows...), config.TotalRow)
	}
	for _, row := range allRows {
		for i, cell := range row {
			if i < len(colWidths) && lipgloss.Width(cell) > colWidths[i] {
				colWidths[i] = lipgloss.Width(cell)
			}
		}
	}

	separator := make([]string, len(config.Headers))
	for i, width := range colWidths {
		separator[i] = strings.Repeat("-", width)
	}

	output.WriteString(renderTableRow(config.Headers, colWidths, tableHeaderStyle))
	output.WriteString("\n")
	output.WriteString(renderTableRow(separator, colWidths, tableBorderStyle))
	output.WriteString("\n")
	for _, row := range config.Rows {
		output.WriteString(renderTableRow(row, colWidths, tableCellStyle))
		output.WriteString("\n")
	}
	if len(config.TotalRow) > 0 {
		output.WriteString(renderTableRow(separator, colWidths, tableBorderStyle))
		output.WriteString("\n")
		output.WriteString(renderTableRow(config.TotalRow, colWidths, successStyle))
		output.WriteString("\n")
	}
	return output.String()
}

// renderTableRow renders a single table row with proper spacing
func renderTableRow(cells []string, colWidths []int, style lipgloss.Style) string {
	var row strings.Builder
	for i, cell := range cells {
		if i >= len(colWidths) {
			break
		}
		padding := colWidths[i] - lipgloss.Width(cell)
		if padding < 0 {
			padding = 0
		}
		row.WriteString(applyStyle(style, cell+strings.Repeat(" ", padding)))
		if i < len(cells)-1 {
			row.WriteString(applyStyle(tableBorderStyle, " | "))
		}
	}
	return row.String()
}
