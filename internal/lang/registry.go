package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/trailspace/internal/logger"
)

var (
	registry struct {
		sync.RWMutex
		languages      []*Language
		extToLanguage  map[string]*Language
		nameToLanguage map[string]*Language
	}

	builtinOnce sync.Once
)

func init() {
	registry.extToLanguage = make(map[string]*Language)
	registry.nameToLanguage = make(map[string]*Language)
}

// Register adds a language to the registry. Later registrations win on conflicts.
func Register(l *Language) {
	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, l)
	for _, ext := range l.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.ID, l.ID)
		}
		registry.extToLanguage[lowerExt] = l
	}
	for _, name := range l.Filenames {
		registry.nameToLanguage[name] = l
	}
	logger.DebugTagf("lang", "Registered language: %s with extensions: %v", l.ID, l.Extensions)
}

// ForFile returns the language for a given file path, or nil.
func ForFile(filePath string) *Language {
	RegisterBuiltins()

	registry.RLock()
	defer registry.RUnlock()

	if l, ok := registry.nameToLanguage[filepath.Base(filePath)]; ok {
		return l
	}
	if l, ok := registry.extToLanguage[strings.ToLower(filepath.Ext(filePath))]; ok {
		return l
	}
	return nil
}

// IDForFile returns the language identifier for filePath, PlainText if unknown.
func IDForFile(filePath string) string {
	if l := ForFile(filePath); l != nil {
		return l.ID
	}
	return PlainText
}

// All returns all registered languages.
func All() []*Language {
	RegisterBuiltins()

	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
