// Package config loads the TOML configuration and applies command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/trailspace/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config                     `toml:"logger"`  // [logger]
	Editor  EditorConfig                      `toml:"editor"`  // [editor]
	Run     RunConfig                         `toml:"run"`     // [run]
	Plugins map[string]map[string]interface{} `toml:"plugins"` // [plugins.<name>]
}

// EditorConfig holds settings of the terminal view.
type EditorConfig struct {
	TabWidth       int    `toml:"tab_width"`
	HighlightColor string `toml:"highlight_color"` // background of trailing whitespace
	StatusColor    string `toml:"status_color"`
}

// RunConfig holds settings of the batch commands.
type RunConfig struct {
	Jobs          int    `toml:"jobs"`           // files processed in parallel, 0 = NumCPU
	WatchDebounce string `toml:"watch_debounce"` // duration string, e.g. "200ms"
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:       DefaultTabWidth,
			HighlightColor: DefaultHighlightColor,
			StatusColor:    DefaultStatusColor,
		},
		Run: RunConfig{
			Jobs:          runtime.NumCPU(),
			WatchDebounce: DefaultWatchDebounce.String(),
		},
		Plugins: make(map[string]map[string]interface{}),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/trailspace/config.toml, or "" when
// the user config directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	logger.Infof("Loaded configuration from: %s", filePath)
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if !validColor(c.Editor.HighlightColor) {
		logger.Warnf("Unknown highlight_color %q, using %q", c.Editor.HighlightColor, defaults.Editor.HighlightColor)
		c.Editor.HighlightColor = defaults.Editor.HighlightColor
	}
	if !validColor(c.Editor.StatusColor) {
		logger.Warnf("Unknown status_color %q, using %q", c.Editor.StatusColor, defaults.Editor.StatusColor)
		c.Editor.StatusColor = defaults.Editor.StatusColor
	}

	if c.Run.Jobs <= 0 {
		c.Run.Jobs = defaults.Run.Jobs
	}
	if d, err := time.ParseDuration(c.Run.WatchDebounce); err != nil || d < 0 {
		logger.Warnf("Invalid watch_debounce %q, using %s", c.Run.WatchDebounce, defaults.Run.WatchDebounce)
		c.Run.WatchDebounce = defaults.Run.WatchDebounce
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		logger.Warnf("Unknown log_level %q, using %q", c.Logger.LogLevel, defaults.Logger.LogLevel)
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Plugins == nil {
		c.Plugins = make(map[string]map[string]interface{})
	}
}

func validColor(name string) bool {
	return name != "" && tcell.GetColor(name) != tcell.ColorDefault
}

// Load orchestrates loading defaults, the file, flag overrides and validation.
// An empty configFilePath means DefaultPath.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}
	if effectivePath != "" {
		if err := loadFromFile(effectivePath, cfg); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, nil
}

// PluginValue returns [plugins.<pluginName>].<key>.
func (c *Config) PluginValue(pluginName, key string) (interface{}, bool) {
	section, ok := c.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	val, ok := section[key]
	return val, ok
}

// SetPluginValue sets [plugins.<pluginName>].<key>, creating the table if needed.
func (c *Config) SetPluginValue(pluginName, key string, value interface{}) {
	if c.Plugins == nil {
		c.Plugins = make(map[string]map[string]interface{})
	}
	section, ok := c.Plugins[pluginName]
	if !ok {
		section = make(map[string]interface{})
		c.Plugins[pluginName] = section
	}
	section[key] = value
}

// WatchDebounce returns the parsed [run] watch_debounce.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Run.WatchDebounce)
	if err != nil {
		return DefaultWatchDebounce
	}
	return d
}

// HighlightStyle is the style used to draw trailing whitespace.
func (c *Config) HighlightStyle() tcell.Style {
	return tcell.StyleDefault.Background(tcell.GetColor(c.Editor.HighlightColor))
}

// StatusStyle is the style of the status bar.
func (c *Config) StatusStyle() tcell.Style {
	return tcell.StyleDefault.Background(tcell.GetColor(c.Editor.StatusColor)).Foreground(tcell.ColorWhite)
}
