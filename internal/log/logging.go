// Package log builds the application's structured logger. Records are JSON
// lines in a file so they never interleave with the terminal UI; each
// subsystem logs through a child logger tagged with its component name.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcdole/minitube/internal/config"
)

// ComponentKey is the attribute naming the subsystem that emitted a record
const ComponentKey = "component"

// Component names used by the application
const (
	ComponentMain    = "main"
	ComponentStore   = "store"
	ComponentLibrary = "library"
	ComponentPlayer  = "player"
	ComponentTUI     = "tui"
)

// SetupLogger opens (or creates) the configured log file and returns a JSON
// logger appending to it
func SetupLogger(cfg *config.LoggingConfig) (*slog.Logger, error) {
	path := config.ExpandHome(cfg.File)
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewLogger(f, cfg.Level), nil
}

// NewLogger returns a JSON logger writing to w at the given level
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Component returns a child of l whose records carry the component name.
// A nil l derives from slog.Default.
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With(ComponentKey, name)
}

// ParseLevel converts a level name (case-insensitive, "WARNING" accepted) to
// a slog.Level. Unknown names mean INFO.
func ParseLevel(level string) slog.Level {
	name := strings.TrimSpace(level)
	if strings.EqualFold(name, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
