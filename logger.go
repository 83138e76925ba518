package dictionary

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dictionary-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewWriterLogger(os.Stderr, level, true)
}

// NewTextLogger creates a Logger that outputs human-readable text logs to
// stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewWriterLogger(os.Stderr, level, false)
}

// NewWriterLogger creates a Logger writing to w, as JSON when asJSON is set.
func NewWriterLogger(w io.Writer, level slog.Level, asJSON bool) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return NewLogger(slog.NewJSONHandler(w, opts))
	}
	return NewLogger(slog.NewTextHandler(w, opts))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithApp adds an app field to the logger.
func (l *Logger) WithApp(app string) *Logger {
	return &Logger{
		Logger: l.Logger.With("app", app),
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, query string, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"query", query,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"query", query,
			"results", results,
		)
	}
}

// LogLoad logs a catalog load.
func (l *Logger) LogLoad(ctx context.Context, app string, version uint64, items int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "catalog load failed",
			"app", app,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "catalog loaded",
			"app", app,
			"version", version,
			"items", items,
		)
	}
}

// LogImport logs a catalog import.
func (l *Logger) LogImport(ctx context.Context, app string, version uint64, items int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "catalog import failed",
			"app", app,
			"items", items,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "catalog imported",
			"app", app,
			"version", version,
			"items", items,
		)
	}
}
