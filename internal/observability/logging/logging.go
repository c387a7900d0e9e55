// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	ServiceName string
	Environment string
	Level       string // debug, info, warn, error; anything else is info
	Output      io.Writer
}

// ParseLevel maps a LOG_LEVEL value to a slog level. ok is false for
// unrecognised values, which fall back to info.
func ParseLevel(s string) (lvl slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// NewLogger returns a JSON logger tagged with service and env. Debug
// loggers also record the call site.
func NewLogger(cfg Config) *slog.Logger {
	lvl, ok := ParseLevel(cfg.Level)

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)
	if !ok {
		logger.Warn("unknown log level, using info", "level", cfg.Level)
	}
	return logger
}
