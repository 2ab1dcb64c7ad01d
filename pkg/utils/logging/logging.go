package logging

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

// Format selects the log output format
type Format int

const (
	// FormatConsole is a human-readable colored format
	FormatConsole Format = iota
	// FormatJSON is machine-readable, with secret fields redacted
	FormatJSON
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.Default())
}

// Default returns the process-wide logger
func Default() *slog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *slog.Logger) {
	defaultLogger.Store(logger)
}

// New creates a logger writing to w in the given format
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	var handler slog.Handler

	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: masq.New(masq.WithTag("secret")),
		})
	default:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithSource(true),
		)
	}

	return slog.New(handler)
}

type ctxLoggerKey struct{}

// With embeds a logger into the context
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From extracts the logger from the context, falling back to Default
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
