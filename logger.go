package subsetsum

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with subsetsum-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTarget adds a target field to the logger.
func (l *Logger) WithTarget(target int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("target", target),
	}
}

// WithCount adds a weight count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("weights", count),
	}
}

// LogTableBuild logs a reachability table construction.
func (l *Logger) LogTableBuild(ctx context.Context, bytes int64, reachable int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "table build failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "table built",
			"bytes", bytes,
			"reachable_sums", reachable,
			"duration", duration,
		)
	}
}

// LogBudgetRejected logs an operation rejected by the pre-flight budget check.
func (l *Logger) LogBudgetRejected(ctx context.Context, resource string, requested, limit int64) {
	l.WarnContext(ctx, "budget exceeded",
		"resource", resource,
		"requested", requested,
		"limit", limit,
	)
}

// LogSolve logs a completed solve operation.
func (l *Logger) LogSolve(ctx context.Context, results, failed int, truncated bool, duration time.Duration, err error) {
	switch {
	case err != nil && failed == 0:
		l.ErrorContext(ctx, "solve failed",
			"error", err,
		)
	case failed > 0:
		l.WarnContext(ctx, "solve completed with failed partitions",
			"results", results,
			"failed", failed,
			"duration", duration,
		)
	default:
		l.InfoContext(ctx, "solve completed",
			"results", results,
			"truncated", truncated,
			"duration", duration,
		)
	}
}
