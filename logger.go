package steelcat

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with steelcat-specific context.
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

// WithSectionType adds a section type field to the logger.
func (l *Logger) WithSectionType(st string) *Logger {
	return &Logger{
		Logger: l.Logger.With("type", st),
	}
}

// WithDesignation adds a designation field to the logger.
func (l *Logger) WithDesignation(designation string) *Logger {
	return &Logger{
		Logger: l.Logger.With("designation", designation),
	}
}

// LogCreate logs a factory create operation.
func (l *Logger) LogCreate(designation, sectionType string, err error) {
	if err != nil {
		l.Debug("create failed",
			"designation", designation,
			"type", sectionType,
			"error", err,
		)
	} else {
		l.Debug("section created",
			"designation", designation,
			"type", sectionType,
		)
	}
}
