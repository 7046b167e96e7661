package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/console"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/watch"
)

// Watch checks paths once and then again whenever files under them change.
// With fix set, changed files are trimmed instead. It runs until ctx is
// canceled.
func Watch(ctx context.Context, cfg *config.Config, paths []string, fix bool, out, errOut io.Writer) error {
	files, err := ExpandPaths(paths)
	if err != nil {
		return err
	}

	w, err := watch.New(cfg.WatchDebounce())
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(paths...); err != nil {
		return err
	}

	run := func(files []string) {
		var runErr error
		if fix {
			runErr = Trim(ctx, cfg, files, TrimOptions{}, out, errOut)
		} else {
			runErr = Check(ctx, cfg, files, out, errOut, false)
		}
		if runErr != nil && !errors.Is(runErr, ErrTrailingWhitespace) {
			logger.Warnf("watch: %v", runErr)
		}
	}

	run(files)
	fmt.Fprintln(out, console.FormatInfoMessage(fmt.Sprintf("Watching %d path(s) for changes... (Ctrl-C to stop)", len(paths))))

	err = w.Run(ctx, func(changed []string) {
		logger.Infof("watch: %d file(s) changed", len(changed))
		run(changed)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
