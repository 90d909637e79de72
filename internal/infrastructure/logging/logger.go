// Package logging provides structured logging utilities.
//
// The default console format is bracketed and colour-coded on a terminal:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/config"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatTint    = "tint"
	FormatJSON    = "json"
	FormatText    = "text"
)

// ParseLevel maps a config level name to a slog level. Unknown names are
// info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured logger writing to stderr.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	return New(os.Stderr, cfg)
}

// New creates a structured logger writing to w in the configured format.
func New(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	level := ParseLevel(cfg.Level)

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case FormatTint:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
		})
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatText:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = NewConsoleHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

// NewLoggerWithSystem creates a logger with a system prefix (e.g., "billing",
// "storage", "printer").
func NewLoggerWithSystem(cfg config.LoggingConfig, system string) *slog.Logger {
	return NewLogger(cfg).With(SystemKey, system)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
