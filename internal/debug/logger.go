// Package debug provides debug logging using log/slog
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Init enables or disables debug output on os.Stderr
func Init(enable bool) {
	InitWriter(enable, os.Stderr)
}

// InitWriter enables or disables debug output on w
// When disabled only errors are written
func InitWriter(enable bool, w io.Writer) {
	level := slog.LevelError
	if enable {
		level = slog.LevelDebug
	}

	mu.Lock()
	defer mu.Unlock()
	enabled = enable
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Enabled returns whether debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Logger returns the current logger
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }

// Info logs an info message
func Info(msg string, args ...any) { Logger().Info(msg, args...) }

// Warn logs a warning
func Warn(msg string, args ...any) { Logger().Warn(msg, args...) }

// Error logs an error
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger { return Logger().With(args...) }
