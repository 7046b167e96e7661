// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/trailspace/internal/types"
	"github.com/bethropolis/trailspace/internal/utils"
)

// ErrInvalidRange is returned when a position does not exist in the buffer.
var ErrInvalidRange = errors.New("invalid range")

// SliceBuffer stores the document as a slice of lines without line terminators.
type SliceBuffer struct {
	lines        [][]byte
	filePath     string
	modified     bool
	crlf         []bool // per line: terminated by "\r\n" rather than "\n"
	eol          []byte // terminator of new lines, detected from the first line ending
	finalNewline bool   // whether the last line has a terminator
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{{}},
		crlf:  []bool{false},
		eol:   []byte("\n"),
	}
}

// NewSliceBufferFromBytes creates an unnamed buffer holding content.
func NewSliceBufferFromBytes(content []byte) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.setContent(content)
	return sb
}

// Load reads a file into the buffer. Replaces existing content.
// A missing file yields an empty buffer bound to filePath.
func (sb *SliceBuffer) Load(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{{}}
			sb.crlf = []bool{false}
			sb.eol = []byte("\n")
			sb.finalNewline = false
			sb.filePath = filePath
			sb.modified = false
			return nil
		}
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	sb.setContent(content)
	sb.filePath = filePath
	sb.modified = false
	return nil
}

func (sb *SliceBuffer) setContent(content []byte) {
	sb.eol = []byte("\n")
	if idx := bytes.IndexByte(content, '\n'); idx > 0 && content[idx-1] == '\r' {
		sb.eol = []byte("\r\n")
	}

	sb.finalNewline = bytes.HasSuffix(content, []byte("\n"))
	if sb.finalNewline {
		content = content[:len(content)-1]
	}

	parts := bytes.Split(content, []byte("\n"))
	lines := make([][]byte, len(parts))
	crlf := make([]bool, len(parts))
	for i, part := range parts {
		terminated := i < len(parts)-1 || sb.finalNewline
		if terminated && bytes.HasSuffix(part, []byte("\r")) {
			part = part[:len(part)-1]
			crlf[i] = true
		}
		lines[i] = append([]byte(nil), part...)
	}
	sb.lines = lines
	sb.crlf = crlf
}

func (sb *SliceBuffer) newLineCRLF() bool {
	return len(sb.eol) == 2
}

// terminator returns the line ending written after line i.
func (sb *SliceBuffer) terminator(i int) []byte {
	if sb.crlf[i] {
		return []byte("\r\n")
	}
	return []byte("\n")
}

// Lines returns the buffer lines. Callers must not modify them.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns a single line without its terminator.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins the lines, each with its original line ending.
func (sb *SliceBuffer) Bytes() []byte {
	var buf bytes.Buffer
	for i, line := range sb.lines {
		buf.Write(line)
		if i < len(sb.lines)-1 || sb.finalNewline {
			buf.Write(sb.terminator(i))
		}
	}
	return buf.Bytes()
}

// Save writes the buffer content to filePath, or the current path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, sb.Bytes(), mode); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

// ReadBaseline reads the on-disk version of the buffer.
func (sb *SliceBuffer) ReadBaseline() ([]byte, bool, error) {
	if sb.filePath == "" {
		return nil, false, nil
	}
	content, err := os.ReadFile(sb.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read baseline '%s': %w", sb.filePath, err)
	}
	return content, true, nil
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// FilePath returns the backing file path, empty for unnamed buffers.
func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// byteOffset validates pos strictly and returns its byte offset in its line.
func (sb *SliceBuffer) byteOffset(pos types.Position) (int, error) {
	if pos.Line < 0 || pos.Line >= len(sb.lines) {
		return 0, fmt.Errorf("%w: line %d out of bounds (0-%d)", ErrInvalidRange, pos.Line, len(sb.lines)-1)
	}
	if pos.Col < 0 {
		return 0, fmt.Errorf("%w: negative column %d", ErrInvalidRange, pos.Col)
	}
	offset := utils.RuneIndexToByteOffset(sb.lines[pos.Line], pos.Col)
	if offset < 0 {
		return 0, fmt.Errorf("%w: column %d past end of line %d", ErrInvalidRange, pos.Col, pos.Line)
	}
	return offset, nil
}

// Insert inserts text at a given position. Handles single/multiple lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	info := types.EditInfo{Start: pos, OldEnd: pos, NewEnd: pos}
	if len(text) == 0 {
		return info, nil
	}

	offset, err := sb.byteOffset(pos)
	if err != nil {
		return info, fmt.Errorf("invalid insert position: %w", err)
	}

	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))
	insertLines := bytes.Split(text, []byte("\n"))
	current := sb.lines[pos.Line]
	head := append([]byte(nil), current[:offset]...)
	tail := append([]byte(nil), current[offset:]...)

	if len(insertLines) == 1 {
		line := append(head, insertLines[0]...)
		sb.lines[pos.Line] = append(line, tail...)
		info.NewEnd = types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCount(insertLines[0])}
	} else {
		last := len(insertLines) - 1
		newLines := make([][]byte, 0, len(insertLines))
		newLines = append(newLines, append(head, insertLines[0]...))
		for _, l := range insertLines[1:last] {
			newLines = append(newLines, append([]byte(nil), l...))
		}
		newLines = append(newLines, append(append([]byte(nil), insertLines[last]...), tail...))

		newCRLF := make([]bool, len(newLines))
		for i := range newCRLF {
			newCRLF[i] = sb.newLineCRLF()
		}
		newCRLF[last] = sb.crlf[pos.Line] // the tail keeps the split line's ending

		rest := append([][]byte(nil), sb.lines[pos.Line+1:]...)
		sb.lines = append(append(sb.lines[:pos.Line], newLines...), rest...)
		restCRLF := append([]bool(nil), sb.crlf[pos.Line+1:]...)
		sb.crlf = append(append(sb.crlf[:pos.Line], newCRLF...), restCRLF...)
		info.NewEnd = types.Position{Line: pos.Line + last, Col: utf8.RuneCount(insertLines[last])}
	}

	sb.modified = true
	return info, nil
}

// Delete removes text within a given range (start inclusive, end exclusive).
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	r := types.NewRange(start, end)
	info := types.EditInfo{Start: r.Start, OldEnd: r.End, NewEnd: r.Start}
	if r.IsEmpty() {
		return info, nil
	}

	startOffset, err := sb.byteOffset(r.Start)
	if err != nil {
		return info, fmt.Errorf("invalid delete range: %w", err)
	}
	endOffset, err := sb.byteOffset(r.End)
	if err != nil {
		return info, fmt.Errorf("invalid delete range: %w", err)
	}

	sb.deleteOffsets(r, startOffset, endOffset)
	return info, nil
}

func (sb *SliceBuffer) deleteOffsets(r types.Range, startOffset, endOffset int) {
	startLine := sb.lines[r.Start.Line]
	endLine := sb.lines[r.End.Line]

	merged := append(append([]byte(nil), startLine[:startOffset]...), endLine[endOffset:]...)
	rest := append([][]byte(nil), sb.lines[r.End.Line+1:]...)
	sb.lines = append(append(sb.lines[:r.Start.Line], merged), rest...)
	endCRLF := sb.crlf[r.End.Line]
	restCRLF := append([]bool(nil), sb.crlf[r.End.Line+1:]...)
	sb.crlf = append(append(sb.crlf[:r.Start.Line], endCRLF), restCRLF...)
	sb.modified = true
}

// DeleteRanges deletes a batch of ranges expressed against the current content.
// Every range is validated before anything changes; ranges must not overlap.
func (sb *SliceBuffer) DeleteRanges(ranges []types.Range) ([]types.EditInfo, error) {
	if len(ranges) == 0 {
		return nil, nil
	}

	type span struct {
		r          types.Range
		start, end int
	}
	spans := make([]span, 0, len(ranges))
	for _, r := range ranges {
		r = types.NewRange(r.Start, r.End)
		startOffset, err := sb.byteOffset(r.Start)
		if err != nil {
			return nil, fmt.Errorf("delete %v: %w", r, err)
		}
		endOffset, err := sb.byteOffset(r.End)
		if err != nil {
			return nil, fmt.Errorf("delete %v: %w", r, err)
		}
		spans = append(spans, span{r: r, start: startOffset, end: endOffset})
	}

	// Apply from the bottom of the document up so earlier positions stay valid.
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[j].r.Start.Before(spans[i].r.Start)
	})
	for i := 1; i < len(spans); i++ {
		if spans[i-1].r.Start.Before(spans[i].r.End) {
			return nil, fmt.Errorf("%w: %v overlaps %v", ErrInvalidRange, spans[i].r, spans[i-1].r)
		}
	}

	edits := make([]types.EditInfo, 0, len(spans))
	for _, s := range spans {
		if s.r.IsEmpty() {
			continue
		}
		sb.deleteOffsets(s.r, s.start, s.end)
		edits = append(edits, types.EditInfo{Start: s.r.Start, OldEnd: s.r.End, NewEnd: s.r.Start})
	}
	return edits, nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
