package meshgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with meshgo-specific context.
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

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithVertices adds a vertex-count field to the logger.
func (l *Logger) WithVertices(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("vertices", count),
	}
}

// WithSimplices adds a simplex-count field to the logger.
func (l *Logger) WithSimplices(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("simplices", count),
	}
}

// LogCacheRebuild logs the rebuild of a derived cache.
func (l *Logger) LogCacheRebuild(cache string, simplices int) {
	l.Debug("cache rebuilt",
		"cache", cache,
		"simplices", simplices,
	)
}

// LogVolume logs a total-volume computation.
func (l *Logger) LogVolume(volume float64, simplices int) {
	l.Debug("volume computed",
		"volume", volume,
		"simplices", simplices,
	)
}

// LogImport logs a mesh import operation.
func (l *Logger) LogImport(vertices, simplices int, err error) {
	if err != nil {
		l.Error("import failed",
			"error", err,
		)
	} else {
		l.Info("import completed",
			"vertices", vertices,
			"simplices", simplices,
		)
	}
}

// LogExport logs a mesh export operation.
func (l *Logger) LogExport(vertices, simplices int, err error) {
	if err != nil {
		l.Error("export failed",
			"error", err,
		)
	} else {
		l.Info("export completed",
			"vertices", vertices,
			"simplices", simplices,
		)
	}
}
