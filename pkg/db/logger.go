package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// slogLogger sends gorm output to the default slog logger: statements at
// Info, slow statements at Warn and failed statements at Error.
type slogLogger struct {
	level logger.LogLevel
	slow  time.Duration
}

// NewLogger returns a gorm logger. With logSQL every statement is logged;
// otherwise only slow and failed statements are.
func NewLogger(logSQL bool) logger.Interface {
	lvl := logger.Warn
	if logSQL {
		lvl = logger.Info
	}
	return &slogLogger{level: lvl, slow: slowQueryThreshold}
}

func (l *slogLogger) LogMode(lvl logger.LogLevel) logger.Interface {
	n := *l
	n.level = lvl
	return &n
}

func (l *slogLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		slog.Default().InfoContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *slogLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		slog.Default().WarnContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *slogLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		slog.Default().ErrorContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		slog.Default().ErrorContext(ctx, "sql failed", "component", "gorm", "sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		sql, rows := fc()
		slog.Default().WarnContext(ctx, "slow sql", "component", "gorm", "sql", sql, "rows", rows, "elapsed", elapsed, "threshold", l.slow)
	case l.level >= logger.Info:
		sql, rows := fc()
		slog.Default().InfoContext(ctx, "sql", "component", "gorm", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
