package app

import (
	"context"
	"fmt"

	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/types"
)

// InsertText inserts text at the cursor and moves the cursor past it.
func (a *App) InsertText(text []byte) error {
	edit, err := a.buffer.Insert(a.cursor, text)
	if err != nil {
		return fmt.Errorf("insert at %v: %w", a.cursor, err)
	}
	a.dispatchModified([]types.EditInfo{edit})
	a.SetCursor(edit.NewEnd)
	return nil
}

// DeleteBackward deletes the character before the cursor, joining lines at column 0.
func (a *App) DeleteBackward() error {
	start := a.cursor
	switch {
	case start.Col > 0:
		start.Col--
	case start.Line > 0:
		start.Line--
		start.Col = a.lineLength(start.Line)
	default:
		return nil
	}

	edit, err := a.buffer.Delete(start, a.cursor)
	if err != nil {
		return fmt.Errorf("delete %v-%v: %w", start, a.cursor, err)
	}
	a.dispatchModified([]types.EditInfo{edit})
	a.SetCursor(start)
	return nil
}

// applyDeletions removes ranges atomically. The returned channel is already
// fulfilled since the host applies edits synchronously.
func (a *App) applyDeletions(ctx context.Context, ranges []types.Range) <-chan error {
	done := make(chan error, 1)
	defer close(done)

	if err := ctx.Err(); err != nil {
		done <- err
		return done
	}
	edits, err := a.buffer.DeleteRanges(ranges)
	if err != nil {
		done <- fmt.Errorf("apply %d deletion(s): %w", len(ranges), err)
		return done
	}
	logger.DebugTagf("edit", "App: applied %d deletion(s) to %s", len(edits), a.documentID)

	a.cursor = a.clamp(a.cursor)
	if len(edits) > 0 {
		a.dispatchModified(edits)
	}
	done <- nil
	return done
}

// Save writes the buffer to its file. Handlers of TypeBufferWillSave run
// before the write and may still edit the buffer.
func (a *App) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	filePath := a.buffer.FilePath()
	if filePath == "" {
		return ErrNoFileName
	}

	a.eventManager.Dispatch(event.TypeBufferWillSave, event.BufferWillSaveData{
		DocumentID: a.documentID,
		FilePath:   filePath,
	})
	if err := a.buffer.Save(""); err != nil {
		return fmt.Errorf("save %s: %w", filePath, err)
	}
	logger.Infof("App: saved %s", filePath)

	a.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{
		DocumentID: a.documentID,
		FilePath:   filePath,
	})
	return nil
}

func (a *App) dispatchModified(edits []types.EditInfo) {
	a.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{
		DocumentID: a.documentID,
		Edits:      edits,
	})
}
