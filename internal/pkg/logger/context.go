package logger

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contextKey string

const loggerKey contextKey = "logger"

// GinKey is the gin context key holding the request-scoped logger.
const GinKey = "logger"

// FromContext retrieves the logger from the context
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return L()
	}
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return L()
	}
	return l
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromGin retrieves the request-scoped logger from the gin context
func FromGin(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(GinKey); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return FromContext(c.Request.Context())
}
