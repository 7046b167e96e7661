package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/plugin"
)

// RegisterCommand adds a named command. Names are unique.
func (a *App) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" || cmdFunc == nil {
		return fmt.Errorf("invalid command registration %q", name)
	}
	if _, exists := a.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.commands[name] = cmdFunc
	logger.DebugTagf("command", "App: registered command '%s'", name)
	return nil
}

// ExecuteCommand runs a registered command. Failures are also shown in the status bar.
func (a *App) ExecuteCommand(ctx context.Context, name string, args ...string) error {
	cmdFunc, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("unknown command '%s'", name)
	}
	if err := cmdFunc(ctx, args); err != nil {
		a.SetStatusMessage(config.MessageTimeout, "Error: %v", err)
		return err
	}
	return nil
}

// Commands lists the registered command names.
func (a *App) Commands() []string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registerAppCommands registers the host's own commands.
func registerAppCommands(a *App) {
	saveCmdFunc := func(ctx context.Context, args []string) error {
		if err := a.Save(ctx); err != nil {
			return err
		}
		a.SetStatusMessage(config.MessageTimeout, "Saved %s", a.buffer.FilePath())
		return nil
	}

	commandsCmdFunc := func(ctx context.Context, args []string) error {
		a.SetStatusMessage(config.MessageTimeout, "Commands: %s", strings.Join(a.Commands(), ", "))
		return nil
	}

	if err := a.RegisterCommand("save", saveCmdFunc); err != nil {
		logger.Warnf("Failed to register 'save' command: %v", err)
	}
	if err := a.RegisterCommand("commands", commandsCmdFunc); err != nil {
		logger.Warnf("Failed to register 'commands' command: %v", err)
	}
}
