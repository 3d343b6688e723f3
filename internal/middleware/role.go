package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
)

// RequireRole admits callers whose gate-resolved role is one of roles. It
// must run after IdentityGate, which replaces the token role with the stored one.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(authctx.KeyRole)
		if role == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !slices.Contains(roles, role) {
			logger.FromGin(c).Warn("role denied",
				zap.String("user_id", authctx.UserID(c)),
				zap.String("role", role),
				zap.Strings("required", roles),
			)
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Administrator access required")
			return
		}
		c.Next()
	}
}

// AdminOnly guards the admin panel and admin-only senders.
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}
