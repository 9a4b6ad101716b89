package binkit

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with binkit-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithFormat adds a compression format field to the logger.
func (l *Logger) WithFormat(format string) *Logger {
	return &Logger{
		Logger: l.Logger.With("format", format),
	}
}

// LogOpen logs a file open.
func (l *Logger) LogOpen(ctx context.Context, path string, size int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "file opened",
			"path", path,
			"size", size,
		)
	}
}

// LogClose logs a file close.
func (l *Logger) LogClose(ctx context.Context, path string, err error) {
	if err != nil {
		l.WarnContext(ctx, "close failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "file closed",
			"path", path,
		)
	}
}

// LogFingerprint logs a fingerprint computation.
func (l *Logger) LogFingerprint(ctx context.Context, path string, sum uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fingerprint failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "fingerprint computed",
			"path", path,
			"xxhash", sum,
		)
	}
}

// LogPrefetch logs a prefetch pass.
func (l *Logger) LogPrefetch(ctx context.Context, path string, bytes int64, err error) {
	if err != nil {
		l.WarnContext(ctx, "prefetch stopped",
			"path", path,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "prefetch completed",
			"path", path,
			"bytes", bytes,
		)
	}
}
