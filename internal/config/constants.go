package config

import "time"

// Base application details
const AppName = "trailspace"
const ConfigDirName = "trailspace"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "trailspace.log"

// TrailingSpacesPlugin is the [plugins.*] table read by the trailing whitespace plugin.
const TrailingSpacesPlugin = "trailing_spaces"

// Status Bar
const MessageTimeout = 4 * time.Second

// Defaults
const DefaultTabWidth = 4
const DefaultHighlightColor = "darkred"
const DefaultStatusColor = "navy"
const DefaultWatchDebounce = 200 * time.Millisecond
