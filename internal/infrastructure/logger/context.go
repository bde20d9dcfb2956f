package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	loggerCtxKey ctxKey = iota
	requestIDCtxKey
)

// WithContext attaches a logger to ctx so lower layers (the gorm adapter,
// event handlers) can log with the request's fields.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, l)
}

// FromContext returns the attached logger, or a no-op logger when ctx
// carries none.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerCtxKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID in ctx and returns a logger that tags
// every entry with it.
func WithRequestID(ctx context.Context, l *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	scoped := l.With(zap.String("request_id", requestID))
	ctx = context.WithValue(ctx, requestIDCtxKey, requestID)
	return WithContext(ctx, scoped), scoped
}

// GetRequestID returns the request ID stored by WithRequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey).(string)
	return id
}
