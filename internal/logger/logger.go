// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu            sync.RWMutex
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	logLevel      = new(slog.LevelVar)
)

// Init installs the process logger. Until Init runs, everything is discarded.
func Init(cfg Config, output io.Writer) {
	if output == nil {
		output = io.Discard
	}
	cfg.process()
	logLevel.Set(cfg.level)

	opts := slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	handler := newFilteringHandler(slog.NewTextHandler(output, &opts), &cfg)

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()

	Debugf("Logger initialized at level %s", cfg.level)
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

// Get returns the configured logger instance.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// logAtLevel creates and logs a record, capturing the caller of the exported wrapper.
func logAtLevel(level slog.Level, attrs []slog.Attr, format string, args ...interface{}) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, nil, format, args...)
}

// DebugTagf logs a debug message carrying a tag the filter can match on.
func DebugTagf(tag string, format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, []slog.Attr{slog.String(tagKey, tag)}, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, nil, format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, nil, format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, nil, format, args...)
}
