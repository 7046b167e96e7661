package trailingspaces

import (
	"github.com/bethropolis/trailspace/internal/core/trailing"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/plugin"
)

// Settings is a snapshot of the [plugins.trailing_spaces] table.
type Settings struct {
	Regexp               string
	IncludeEmptyLines    bool
	IncludeCurrentLine   bool
	ModifiedLinesOnly    bool
	LiveMatching         bool
	TrimOnSave           bool
	SaveAfterTrim        bool
	SyntaxIgnore         []string
	ShowStatusBarMessage bool
}

// DefaultSettings returns the values used for keys missing from the config.
func DefaultSettings() Settings {
	return Settings{
		Regexp:               trailing.DefaultPattern,
		IncludeEmptyLines:    true,
		IncludeCurrentLine:   true,
		ModifiedLinesOnly:    false,
		LiveMatching:         true,
		TrimOnSave:           false,
		SaveAfterTrim:        false,
		SyntaxIgnore:         nil,
		ShowStatusBarMessage: true,
	}
}

// readSettings reads every option fresh from the host configuration.
func readSettings(api plugin.EditorAPI) Settings {
	s := DefaultSettings()
	readString(api, "regexp", &s.Regexp)
	readBool(api, "include_empty_lines", &s.IncludeEmptyLines)
	readBool(api, "include_current_line", &s.IncludeCurrentLine)
	readBool(api, "modified_lines_only", &s.ModifiedLinesOnly)
	readBool(api, "live_matching", &s.LiveMatching)
	readBool(api, "trim_on_save", &s.TrimOnSave)
	readBool(api, "save_after_trim", &s.SaveAfterTrim)
	readStrings(api, "syntax_ignore", &s.SyntaxIgnore)
	readBool(api, "show_status_bar_message", &s.ShowStatusBarMessage)
	return s
}

func readBool(api plugin.EditorAPI, key string, dst *bool) {
	val, ok := api.GetPluginConfigValue(Name, key)
	if !ok {
		return
	}
	boolVal, isBool := val.(bool)
	if !isBool {
		logger.Warnf("%s: Invalid type for '%s' config (%T), using default (%v)", Name, key, val, *dst)
		return
	}
	*dst = boolVal
}

func readString(api plugin.EditorAPI, key string, dst *string) {
	val, ok := api.GetPluginConfigValue(Name, key)
	if !ok {
		return
	}
	strVal, isStr := val.(string)
	if !isStr {
		logger.Warnf("%s: Invalid type for '%s' config (%T), using default (%q)", Name, key, val, *dst)
		return
	}
	*dst = strVal
}

// readStrings accepts both []string and the []interface{} TOML decodes arrays into.
func readStrings(api plugin.EditorAPI, key string, dst *[]string) {
	val, ok := api.GetPluginConfigValue(Name, key)
	if !ok {
		return
	}
	switch v := val.(type) {
	case []string:
		*dst = append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, isStr := item.(string)
			if !isStr {
				logger.Warnf("%s: Ignoring non-string entry in '%s' (%T)", Name, key, item)
				continue
			}
			out = append(out, s)
		}
		*dst = out
	default:
		logger.Warnf("%s: Invalid type for '%s' config (%T), using default (%v)", Name, key, val, *dst)
	}
}
