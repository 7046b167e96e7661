package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/bethropolis/trailspace/internal/app"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/console"
	"github.com/bethropolis/trailspace/internal/lang"
)

// TrimOptions controls Trim.
type TrimOptions struct {
	// ModifiedOnly restricts deletion to lines that differ from the file on disk.
	ModifiedOnly bool
	// DryRun reports what would be deleted without writing.
	DryRun bool
	Verbose bool
}

// Trim deletes trailing whitespace from every file in paths and saves the
// files that changed.
func Trim(ctx context.Context, cfg *config.Config, paths []string, opts TrimOptions, out, errOut io.Writer) error {
	files, err := ExpandPaths(paths)
	if err != nil {
		return err
	}

	fn := trimFile(opts)
	if opts.DryRun {
		fn = checkFile
	}
	results := processFiles(ctx, cfg, files, fn)

	deleted, changed := 0, 0
	for _, res := range results {
		if opts.Verbose && res.Skipped != "" {
			fmt.Fprintln(errOut, console.FormatInfoMessage(fmt.Sprintf("Skipped %s (%s)", console.ToRelativePath(res.Path), res.Skipped)))
		}
		n := res.Deleted
		if opts.DryRun {
			n = len(res.Findings)
		}
		if n == 0 {
			continue
		}
		deleted += n
		changed++
		if opts.Verbose || opts.DryRun {
			fmt.Fprintln(out, console.FormatInfoMessage(fmt.Sprintf("%s: %d region(s)", console.ToRelativePath(res.Path), n)))
		}
	}

	if err := reportErrors(errOut, results); err != nil {
		return err
	}

	verb := "Trimmed"
	if opts.DryRun {
		verb = "Would trim"
	}
	fmt.Fprintln(out, console.FormatSuccessMessage(fmt.Sprintf("%s %d trailing whitespace region(s) in %d of %d file(s)", verb, deleted, changed, len(results))))
	return nil
}

func trimFile(opts TrimOptions) fileFunc {
	return func(ctx context.Context, a *app.App, res *FileResult) error {
		n, err := a.TrailingSpaces().DeleteAll(ctx, opts.ModifiedOnly)
		if err != nil {
			return err
		}
		res.Deleted = n
		if !a.Buffer().IsModified() {
			return nil
		}
		return a.Save(ctx)
	}
}

// TrimStream trims content read from r and writes the result to w. The
// buffer has no baseline, so every line counts as modified. filename only
// selects the language.
func TrimStream(ctx context.Context, cfg *config.Config, r io.Reader, w io.Writer, filename string) (int, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}

	a, err := app.New(cfg, nil)
	if err != nil {
		return 0, fmt.Errorf("create host: %w", err)
	}
	defer a.Shutdown()

	a.OpenBytes(content, lang.IDForFile(filename))
	n := 0
	if ts := a.TrailingSpaces(); ts != nil && !ts.IsIgnored() {
		if n, err = ts.DeleteAll(ctx, false); err != nil {
			return 0, err
		}
	}
	if _, err := w.Write(a.Buffer().Bytes()); err != nil {
		return n, fmt.Errorf("write output: %w", err)
	}
	return n, nil
}
