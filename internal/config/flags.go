package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bethropolis/trailspace/internal/logger"
)

// Flags holds values bound to command-line flags. Only flags the user
// actually set override the configuration.
type Flags struct {
	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	TabWidth       int
	Jobs           int

	EnableTags   []string
	DisableTags  []string
	EnablePkgs   []string
	DisablePkgs  []string
	EnableFiles  []string
	DisableFiles []string

	// trailing_spaces plugin options
	Regexp             string
	IncludeEmptyLines  bool
	IncludeCurrentLine bool
	ModifiedLinesOnly  bool
	SyntaxIgnore       []string
	Quiet              bool

	fs *pflag.FlagSet
}

// DefineFlags registers the flags on fs, typically a cobra command's persistent flags.
func (f *Flags) DefineFlags(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", fmt.Sprintf("Path to write log file, or a directory for '%s' (use '-' for stderr) - Overrides config file", DefaultLogFileName))
	fs.IntVar(&f.TabWidth, "tabwidth", 0, "Number of columns per tab in the view - Overrides config file")
	fs.IntVarP(&f.Jobs, "jobs", "j", 0, "Number of files processed in parallel - Overrides config file")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Comma-separated list of tags to enable - Overrides config file")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Comma-separated list of tags to disable - Overrides config file")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Comma-separated list of packages to enable - Overrides config file")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Comma-separated list of packages to disable - Overrides config file")
	fs.StringSliceVar(&f.EnableFiles, "log-files", nil, "Comma-separated list of files to enable - Overrides config file")
	fs.StringSliceVar(&f.DisableFiles, "log-disable-files", nil, "Comma-separated list of files to disable - Overrides config file")

	fs.StringVar(&f.Regexp, "regexp", "", "Trailing whitespace pattern, without the end anchor")
	fs.BoolVar(&f.IncludeEmptyLines, "include-empty-lines", true, "Treat whitespace-only lines as trailing whitespace")
	fs.BoolVar(&f.IncludeCurrentLine, "include-current-line", true, "Highlight trailing whitespace on the cursor line")
	fs.BoolVar(&f.ModifiedLinesOnly, "modified-only", false, "Only trim lines changed since the last save")
	fs.StringSliceVar(&f.SyntaxIgnore, "syntax-ignore", nil, "Comma-separated language ids to skip (e.g. markdown,diff)")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "Do not show status messages")
}

// ApplyOverrides updates cfg with the values of flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "tabwidth":
			if f.TabWidth > 0 {
				cfg.Editor.TabWidth = f.TabWidth
			}
		case "jobs":
			if f.Jobs > 0 {
				cfg.Run.Jobs = f.Jobs
			}
		case "log-tags":
			cfg.Logger.EnabledTags = f.EnableTags
		case "log-disable-tags":
			cfg.Logger.DisabledTags = f.DisableTags
		case "log-packages":
			cfg.Logger.EnabledPackages = f.EnablePkgs
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = f.DisablePkgs
		case "log-files":
			cfg.Logger.EnabledFiles = f.EnableFiles
		case "log-disable-files":
			cfg.Logger.DisabledFiles = f.DisableFiles
		case "regexp":
			if f.Regexp != "" {
				cfg.SetPluginValue(TrailingSpacesPlugin, "regexp", f.Regexp)
			}
		case "include-empty-lines":
			cfg.SetPluginValue(TrailingSpacesPlugin, "include_empty_lines", f.IncludeEmptyLines)
		case "include-current-line":
			cfg.SetPluginValue(TrailingSpacesPlugin, "include_current_line", f.IncludeCurrentLine)
		case "modified-only":
			cfg.SetPluginValue(TrailingSpacesPlugin, "modified_lines_only", f.ModifiedLinesOnly)
		case "syntax-ignore":
			cfg.SetPluginValue(TrailingSpacesPlugin, "syntax_ignore", f.SyntaxIgnore)
		case "quiet":
			cfg.SetPluginValue(TrailingSpacesPlugin, "show_status_bar_message", !f.Quiet)
		}
	})
}
