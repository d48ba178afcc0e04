// Package internal holds infrastructure helpers shared by the binaries.
package internal

import (
	"log/slog"
	"os"
	"strings"
)

// LoggerFromString builds the process logger for a level name.
// Unknown names fall back to info.
func LoggerFromString(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
