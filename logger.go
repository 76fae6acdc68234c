package photosearch

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with photosearch-specific context.
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

// WithBucket adds a bucket field to the logger.
func (l *Logger) WithBucket(bucket string) *Logger {
	return &Logger{
		Logger: l.Logger.With("bucket", bucket),
	}
}

// WithObjectKey adds an object key field to the logger.
func (l *Logger) WithObjectKey(key string) *Logger {
	return &Logger{
		Logger: l.Logger.With("object_key", key),
	}
}

// LogIngest logs the outcome of one ingestion.
func (l *Logger) LogIngest(ctx context.Context, bucket, key string, labels int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ingest failed",
			"bucket", bucket,
			"object_key", key,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "ingest completed",
			"bucket", bucket,
			"object_key", key,
			"labels", labels,
		)
	}
}

// LogExtract logs a label-extraction outcome. Extraction failures degrade
// to an empty set, so they log at warn rather than error.
func (l *Logger) LogExtract(ctx context.Context, bucket, key string, labels int, err error) {
	if err != nil {
		l.WarnContext(ctx, "label extraction failed, continuing without recognition labels",
			"bucket", bucket,
			"object_key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "label extraction completed",
			"bucket", bucket,
			"object_key", key,
			"labels", labels,
		)
	}
}

// LogSearch logs the outcome of one search.
func (l *Logger) LogSearch(ctx context.Context, keywords, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"keywords", keywords,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"keywords", keywords,
			"results", results,
		)
	}
}
