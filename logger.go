package lazymat

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger is a slog.Logger that knows how to describe reductions and
// their consumption. Field names are stable: rows, cols, backend, mode,
// path, size, chunks, elapsed and error.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler logs text at Info to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewTextLogger(slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON records at or above level to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs key=value records at or above level to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything. It is the default.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithShape tags records with an operand shape.
func (l *Logger) WithShape(rows, cols int) *Logger { return l.with("rows", rows, "cols", cols) }

// WithBackend tags records with a fold backend.
func (l *Logger) WithBackend(b Backend) *Logger { return l.with("backend", b.String()) }

// WithMode tags records with a consumption mode.
func (l *Logger) WithMode(mode Mode) *Logger { return l.with("mode", mode.String()) }

// LogReduce logs a full reduction.
func (l *Logger) LogReduce(ctx context.Context, b Backend, rows, cols int, elapsed time.Duration) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "reduce completed",
		"backend", b.String(),
		"rows", rows,
		"cols", cols,
		"elapsed", elapsed,
	)
}

// LogAssign logs the consumption of an axis reduction by a target.
func (l *Logger) LogAssign(ctx context.Context, mode Mode, path Path, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "assign failed",
			"mode", mode.String(),
			"path", path.String(),
			"size", size,
			"error", err,
		)
		return
	}
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "assign completed",
		"mode", mode.String(),
		"path", path.String(),
		"size", size,
	)
}

// LogSMP logs a parallel assignment.
func (l *Logger) LogSMP(ctx context.Context, mode Mode, chunks int, err error) {
	if err != nil {
		l.WarnContext(ctx, "parallel assign failed",
			"mode", mode.String(),
			"chunks", chunks,
			"error", err,
		)
		return
	}
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "parallel assign completed",
		"mode", mode.String(),
		"chunks", chunks,
	)
}
