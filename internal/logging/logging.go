// Package logging configures the slog logger used for diagnostics on stderr.
// Reports go to stdout; nothing here writes to the report stream.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a config level name to a slog level. Unknown names map to warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New creates a text logger writing to w. verbose forces the debug level.
func New(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := ParseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Setup creates a logger with New and installs it as the slog default
func Setup(w io.Writer, level string, verbose bool) *slog.Logger {
	logger := New(w, level, verbose)
	slog.SetDefault(logger)
	return logger
}
