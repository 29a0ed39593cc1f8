package nslscan

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with scan-specific context.
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
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSites adds a site count field to the logger.
func (l *Logger) WithSites(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("sites", n),
	}
}

// WithWorkers adds a worker count field to the logger.
func (l *Logger) WithWorkers(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", n),
	}
}

// LogSite logs a single-site computation.
func (l *Logger) LogSite(ctx context.Context, core int, stat Statistic, err error) {
	if err != nil {
		l.ErrorContext(ctx, "site failed",
			"core", core,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "site completed",
			"core", core,
			"nsl", stat.NSL,
			"ihs", stat.IHS,
		)
	}
}

// LogSites logs a whole-matrix per-site computation.
func (l *Logger) LogSites(ctx context.Context, sites, workers int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "per-site scan failed",
			"sites", sites,
			"workers", workers,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "per-site scan completed",
			"sites", sites,
			"workers", workers,
		)
	}
}

// LogScan logs a standardized whole-scan computation.
func (l *Logger) LogScan(ctx context.Context, kept, bins int, ext Extremes, err error) {
	if err != nil {
		l.ErrorContext(ctx, "standardized scan failed",
			"kept", kept,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "standardized scan completed",
			"kept", kept,
			"bins", bins,
			"max_nsl", ext.NSL,
			"max_ihs", ext.IHS,
		)
	}
}
