package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"

	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
)

// RateLimit limits requests per client IP. rate uses the limiter format,
// e.g. "5-M" for five requests per minute.
func RateLimit(rate string) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), r)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.FromGin(c).Warn("rate limit reached", zap.String("path", c.Request.URL.Path), zap.String("ip", c.ClientIP()))
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, try again later")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.FromGin(c).Error("rate limiter failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}),
	), nil
}
