// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel maps debug|info|warn|error onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New fans logs out to stdout at level and to stderr as JSON for errors only.
func New(level string, jsonOutput bool) *slog.Logger {
	return NewWithWriters(os.Stdout, os.Stderr, level, jsonOutput)
}

// NewWithWriters is New with explicit destinations.
func NewWithWriters(out, errOut io.Writer, level string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var primary slog.Handler
	if jsonOutput {
		primary = slog.NewJSONHandler(out, opts)
	} else {
		primary = slog.NewTextHandler(out, opts)
	}

	errorsOnly := slog.NewJSONHandler(errOut, &slog.HandlerOptions{Level: slog.LevelError})

	return slog.New(slogmulti.Fanout(primary, errorsOnly))
}
