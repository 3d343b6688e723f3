package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
)

// InternalTokenAuth protects operator endpoints such as /metrics with a
// static bearer token and an optional IP allow-list. An empty token leaves
// the endpoint open, which is the local development default.
func InternalTokenAuth(token string, allowedIPs []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ipAllowed(c, allowedIPs) {
			logAuthFailure(c, http.StatusForbidden, "ip_not_allowed")
			response.Abort(c, http.StatusForbidden, "AUTH_INVALID", "IP not allowed")
			return
		}
		if token == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logAuthFailure(c, http.StatusUnauthorized, "invalid_auth_format")
			response.Abort(c, http.StatusUnauthorized, "AUTH_INVALID", "Authorization header must be 'Bearer <token>'")
			return
		}
		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
			logAuthFailure(c, http.StatusForbidden, "invalid_token")
			response.Abort(c, http.StatusForbidden, "AUTH_INVALID", "Invalid internal token")
			return
		}

		c.Next()
	}
}

func ipAllowed(c *gin.Context, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	clientIP := c.ClientIP()
	for _, ip := range allowed {
		if ip == clientIP {
			return true
		}
	}
	return false
}

func logAuthFailure(c *gin.Context, status int, reason string) {
	logger.FromGin(c).Warn("internal_auth_failed",
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("reason", reason),
	)
}
