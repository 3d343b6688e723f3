package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/logger"
)

// RequestLogger attaches a request-scoped logger and writes one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := logger.L().With(zap.String("request_id", requestID(c)))
		c.Set(logger.GinKey, reqLogger)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if uid := authctx.UserID(c); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		reqLogger.Info("HTTP Request", fields...)
	}
}

// ErrorLogger logs detailed error information and recovers from panics.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequestError(c, start, "panic", err, debug.Stack())

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logRequestError(c, start, "http_error", fmt.Errorf("status=%d", c.Writer.Status()), nil)
				}
				return
			}

			for _, ginErr := range c.Errors {
				logRequestError(c, start, fmt.Sprintf("%v", ginErr.Type), ginErr.Err, nil)
			}
		}()

		c.Next()
	}
}

func logRequestError(c *gin.Context, start time.Time, errType string, err error, stack []byte) {
	fields := []zap.Field{
		zap.String("type", errType),
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_id", authctx.UserID(c)),
		zap.String("role", authctx.Role(c)),
		zap.Duration("latency", time.Since(start)),
		zap.Error(err),
	}
	if stack != nil {
		fields = append(fields, zap.ByteString("stack", stack))
	}
	logger.FromGin(c).Error("request_error", fields...)
}

func requestID(c *gin.Context) string {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = c.GetString(requestIDKey)
	}
	return id
}
