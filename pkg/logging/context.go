package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// Field names shared by all run logs.
const (
	FieldSupplier = "supplier"
	FieldRunID    = "run_id"
	FieldPlatform = "platform"
)

// WithLogger stores logger in ctx. A nil logger stores the default one.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger of ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithSupplier tags the context logger with the supplier being synchronized.
func WithSupplier(ctx context.Context, supplier string) context.Context {
	return withStr(ctx, FieldSupplier, supplier)
}

// WithRun tags the context logger with the identifier of a run.
func WithRun(ctx context.Context, runID string) context.Context {
	return withStr(ctx, FieldRunID, runID)
}

// WithPlatform tags the context logger with the ordering platform URL.
func WithPlatform(ctx context.Context, url string) context.Context {
	return withStr(ctx, FieldPlatform, url)
}

func withStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
