package mmapvec

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mmapvec-specific helpers.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogSegmentCreate logs a provisioning operation.
func (l *Logger) LogSegmentCreate(path string, size int64, err error) {
	if err != nil {
		l.Error("segment create failed",
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("segment created",
			"path", path,
			"size", size,
		)
	}
}

// LogGrow logs a capacity growth operation.
func (l *Logger) LogGrow(oldCap, newCap, length int, err error) {
	if err != nil {
		l.Error("grow failed",
			"old_capacity", oldCap,
			"new_capacity", newCap,
			"length", length,
			"error", err,
		)
	} else {
		l.Debug("grow completed",
			"old_capacity", oldCap,
			"new_capacity", newCap,
			"length", length,
		)
	}
}

// LogShrink logs a compaction operation.
func (l *Logger) LogShrink(oldCap, newCap int, err error) {
	if err != nil {
		l.Error("shrink failed",
			"old_capacity", oldCap,
			"new_capacity", newCap,
			"error", err,
		)
	} else {
		l.Debug("shrink completed",
			"old_capacity", oldCap,
			"new_capacity", newCap,
		)
	}
}

// LogRelease logs a segment release. Release failures surface here even
// on paths that swallow the error itself.
func (l *Logger) LogRelease(path string, err error) {
	if err != nil {
		l.Warn("segment release failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Debug("segment released",
			"path", path,
		)
	}
}
