package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is an unexported type for context keys to avoid collisions.
type contextKey struct{}

var loggerCtxKey = contextKey{}

// FromContext extracts a logger from the context. If no logger is found it
// returns the global logger. Safe to call with a nil context.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return zap.L()
	}
	if ctxLogger, ok := ctx.Value(loggerCtxKey).(*zap.Logger); ok && ctxLogger != nil {
		return ctxLogger
	}
	return zap.L()
}

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerCtxKey, log)
}

// WithCorrelationID returns a context whose logger carries the given
// correlation id field, so downstream log lines can be joined to the event
// chain that produced them.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if correlationID == "" {
		return ctx
	}
	return WithLogger(ctx, FromContext(ctx).With(zap.String("correlationId", correlationID)))
}
