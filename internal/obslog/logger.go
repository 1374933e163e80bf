// Package obslog builds the structured logger shared across the
// descriptor-generation core and its ambient CLI/harness shell. It mirrors
// the teacher's root.go buildLogger: a text or JSON slog.Handler selected
// by name, with a level parsed from a string so it can come from a config
// file, an environment variable, or a CLI flag interchangeably.
package obslog

import (
	"fmt"
	"log/slog"
	"os"
)

// Format selects the slog.Handler used by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds a logger writing to stderr at the given level ("debug",
// "info", "warn", "error") using the given format ("text" or "json").
func New(level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler

	switch format {
	case "", FormatText:
		handler = slog.NewTextHandler(os.Stderr, opts)
	case FormatJSON:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("obslog: unknown log format %q", format)
	}

	return slog.New(handler), nil
}

// ParseLevel converts a config-file/env/flag level name into an slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("obslog: unknown log level %q", level)
	}
}
