// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/trailspace/internal/types"

// Buffer defines the interface for text buffer operations.
type Buffer interface {
	Load(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	// DeleteRanges removes every range or none of them.
	DeleteRanges(ranges []types.Range) ([]types.EditInfo, error)
	Save(filePath string) error
	Bytes() []byte
	FilePath() string
	IsModified() bool
	// ReadBaseline returns the content currently stored at FilePath.
	// The bool is false when the buffer has no backing file yet.
	ReadBaseline() ([]byte, bool, error)
}
