// Package watch reports batches of changed files under a set of roots.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/utils"
)

// ErrClosed is returned when using a closed watcher.
var ErrClosed = errors.New("watcher closed")

// Watcher batches fsnotify write/create events. Changes are delivered on
// the goroutine running Run once no new event arrived for the debounce delay.
type Watcher struct {
	fsw      *fsnotify.Watcher
	delay    time.Duration
	files    map[string]bool // explicitly watched files
	dirs     map[string]bool // recursively watched roots and their subdirectories
	debounce utils.Debouncer
	closed   bool
}

// New creates a watcher with the given debounce delay.
func New(delay time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		fsw:   fsw,
		delay: delay,
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}, nil
}

// Add watches each path. Files are watched through their directory;
// directories are watched recursively, skipping hidden ones.
func (w *Watcher) Add(paths ...string) error {
	if w.closed {
		return ErrClosed
	}
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		if !info.IsDir() {
			if err := w.fsw.Add(filepath.Dir(absPath)); err != nil {
				return fmt.Errorf("watch %s: %w", p, err)
			}
			w.files[absPath] = true
			continue
		}
		if err := w.addTree(absPath); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && isHidden(p) {
			return filepath.SkipDir
		}
		if w.dirs[p] {
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		w.dirs[p] = true
		logger.DebugTagf("watch", "watching directory %s", p)
		return nil
	})
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// wanted reports whether a change to path should be delivered.
func (w *Watcher) wanted(path string) bool {
	if w.files[path] {
		return true
	}
	return w.dirs[filepath.Dir(path)] && !isHidden(path)
}

// Run delivers batches of changed files, sorted, to handle until ctx is
// canceled. handle runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context, handle func(paths []string)) error {
	if w.closed {
		return ErrClosed
	}
	defer w.debounce.Stop()

	pending := make(map[string]bool)
	flush := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				delete(pending, path)
			case event.Has(fsnotify.Create) && w.dirs[filepath.Dir(path)] && isDir(path):
				if err := w.addTree(path); err != nil {
					logger.Warnf("watch: %v", err)
				}
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				if !w.wanted(path) {
					continue
				}
				pending[path] = true
				w.debounce.Debounce(w.delay, func() {
					select {
					case flush <- struct{}{}:
					default:
					}
				})
			}

		case <-flush:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			pending = make(map[string]bool)
			logger.DebugTagf("watch", "delivering %d changed file(s)", len(batch))
			handle(batch)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watch: %v", err)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.debounce.Stop()
	return w.fsw.Close()
}
