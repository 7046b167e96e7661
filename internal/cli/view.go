package cli

import (
	"context"
	"errors"

	"github.com/bethropolis/trailspace/internal/app"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/statusbar"
	"github.com/bethropolis/trailspace/internal/tui"
)

// View opens path (or an empty buffer) in the terminal host.
func View(ctx context.Context, cfg *config.Config, path string) error {
	sb := statusbar.New(statusbar.DefaultConfig().WithBase(cfg.StatusStyle()))
	a, err := app.New(cfg, sb)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	if path != "" {
		if err := a.Open(path); err != nil {
			return err
		}
	}

	t, err := tui.New()
	if err != nil {
		return err
	}
	defer t.Close()

	logger.Infof("view: opened %q", path)
	if err := tui.NewView(t, a, sb).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
