// Package cli implements the batch front-ends: check, trim and watch report
// on or rewrite files without a terminal view, and view opens one file in the
// terminal host.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/bethropolis/trailspace/internal/app"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/console"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/plugins/trailingspaces"
)

var (
	// ErrTrailingWhitespace is returned by Check when any file has trailing whitespace.
	ErrTrailingWhitespace = errors.New("trailing whitespace found")
	// ErrFilesFailed is returned when some files could not be processed.
	// The individual errors have already been printed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path     string
	Findings []console.Finding
	Deleted  int
	Skipped  string // reason the file was not processed, if any
	Err      error
}

// fileFunc processes one opened document.
type fileFunc func(ctx context.Context, a *app.App, res *FileResult) error

// processFiles runs fn on every file in parallel. Each file gets its own App,
// so no editor state is shared between workers. Results are sorted by path.
func processFiles(ctx context.Context, cfg *config.Config, files []string, fn fileFunc) []FileResult {
	p := pool.NewWithResults[FileResult]().WithMaxGoroutines(cfg.Run.Jobs)

	for _, path := range files {
		path := path
		p.Go(func() FileResult {
			return processFile(ctx, cfg, path, fn)
		})
	}

	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

func processFile(ctx context.Context, cfg *config.Config, path string, fn fileFunc) FileResult {
	res := FileResult{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	binary, err := isBinary(path)
	if err != nil {
		res.Err = err
		return res
	}
	if binary {
		res.Skipped = "binary"
		return res
	}

	a, err := app.New(cfg, nil)
	if err != nil {
		res.Err = fmt.Errorf("create host: %w", err)
		return res
	}
	defer a.Shutdown()

	if err := a.Open(path); err != nil {
		res.Err = err
		return res
	}
	ts := a.TrailingSpaces()
	if ts == nil {
		res.Err = fmt.Errorf("%s plugin not loaded", trailingspaces.Name)
		return res
	}
	if ts.IsIgnored() {
		res.Skipped = "language " + a.LanguageID()
		return res
	}

	if err := fn(ctx, a, &res); err != nil {
		res.Err = err
	}
	logger.DebugTagf("cli", "%s: %d finding(s), %d deleted", path, len(res.Findings), res.Deleted)
	return res
}

// findings collects the trailing whitespace regions of the current scan.
func findings(a *app.App, path string) ([]console.Finding, error) {
	regions, ok := a.TrailingSpaces().Lookup(a.DocumentID())
	if !ok {
		return nil, nil
	}
	out := make([]console.Finding, 0, len(regions.OffendingLines))
	for _, r := range regions.OffendingLines {
		line, err := a.Buffer().Line(r.Start.Line)
		if err != nil {
			return nil, err
		}
		out = append(out, console.Finding{
			File:   path,
			Line:   r.Start.Line + 1,
			Column: r.Start.Col + 1,
			Width:  r.End.Col - r.Start.Col,
			Text:   string(line),
		})
	}
	return out, nil
}

// reportErrors prints per-file failures to w.
func reportErrors(w io.Writer, results []FileResult) error {
	failed := 0
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		failed++
		logger.Errorf("%s: %v", res.Path, res.Err)
		fmt.Fprintln(w, console.FormatErrorMessage(fmt.Sprintf("%s: %v", console.ToRelativePath(res.Path), res.Err)))
	}
	if failed > 0 {
		return fmt.Errorf("%w (%d of %d)", ErrFilesFailed, failed, len(results))
	}
	return nil
}

// OpenLog returns the writer for cfg.Logger.LogFilePath: "-" is stderr,
// "" discards and a directory gets DefaultLogFileName inside it.
func OpenLog(cfg *config.Config) (io.Writer, func() error, error) {
	switch cfg.Logger.LogFilePath {
	case "":
		return io.Discard, func() error { return nil }, nil
	case "-":
		return os.Stderr, func() error { return nil }, nil
	}
	logPath := cfg.Logger.LogFilePath
	if info, err := os.Stat(logPath); err == nil && info.IsDir() {
		logPath = filepath.Join(logPath, config.DefaultLogFileName)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file '%s': %w", logPath, err)
	}
	return f, f.Close, nil
}
