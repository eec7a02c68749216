// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config mirrors the logging.* configuration keys.
type Config struct {
	Enabled bool
	Level   string
}

// silentLevel sits above slog.LevelError so nothing is ever emitted when
// logging is disabled, without callers needing to nil-check the logger.
const silentLevel = slog.LevelError + 1

// Configure builds a slog.Logger writing to stderr at the configured
// level. When cfg.Enabled is false the handler's level is set above
// LevelError rather than the logger being nil, so call sites can log
// unconditionally.
func Configure(cfg Config) *slog.Logger {
	level := parseLevel(cfg.Level)
	if !cfg.Enabled {
		level = silentLevel
	}

	handler := slog.NewTextHandler(io.Writer(os.Stderr), &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
