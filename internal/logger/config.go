// Package logger provides configurable logging capabilities
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel specifies the minimum level to log (debug, info, warn, error).
	LogLevel string `toml:"log_level"`

	// LogFilePath is the path to the output log file. Use "-" for stderr.
	LogFilePath string `toml:"log_file"`

	// EnabledTags only logs tagged messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (if non-empty).
	// Package name is the immediate directory name (e.g., "app", "trailingspaces").
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages from these base file names (if non-empty).
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles drops messages from these base file names.
	DisabledFiles []string `toml:"disabled_files"`

	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig creates a new Config with default values
func NewConfig() Config {
	return Config{
		LogLevel: "info",
	}
}

// ParseLevel maps a level name to a slog level. Unknown names give info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// process parses string levels/lists into lookup sets.
func (c *Config) process() {
	c.level, _ = ParseLevel(c.LogLevel)
	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
