package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/trailspace/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string // registration order, used for init and reverse shutdown
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin in registration order.
// A failing plugin is logged and skipped; the joined errors are returned.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	pluginsToInit := m.snapshot()

	logger.Debugf("Plugin Manager: Initializing %d plugins...", len(pluginsToInit))
	var errs []error
	for _, p := range pluginsToInit {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("initialize plugin %s: %w", p.Name(), err))
			continue
		}
		logger.DebugTagf("plugin", "Plugin Manager: Successfully initialized plugin '%s'", p.Name())
	}
	return errors.Join(errs...)
}

// ShutdownPlugins calls Shutdown on all registered plugins in reverse order.
func (m *Manager) ShutdownPlugins() {
	pluginsToShutdown := m.snapshot()

	logger.Debugf("Plugin Manager: Shutting down %d plugins...", len(pluginsToShutdown))
	for i := len(pluginsToShutdown) - 1; i >= 0; i-- {
		p := pluginsToShutdown[i]
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

func (m *Manager) snapshot() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.plugins[name])
	}
	return out
}
