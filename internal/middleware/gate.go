package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/metrics"
	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
	"obrago/internal/session"
)

type sessionChecker interface {
	Check(ctx context.Context, userID string, tokenVersion int) (session.Decision, *session.Principal, error)
}

// IdentityGate lets a request through only when the stored profile resolves
// to authenticated. It runs after JWTAuth. If the profile cannot be loaded
// the request is denied.
func IdentityGate(checker sessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := authctx.UserID(c)
		if userID == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		d, p, err := checker.Check(c.Request.Context(), userID, c.GetInt(authctx.KeyTokenVersion))
		if err != nil {
			metrics.GateDecision("error")
			logger.FromGin(c).Error("identity gate failed", zap.String("user_id", userID), zap.Error(err))
			response.Abort(c, http.StatusServiceUnavailable, "GATE_UNAVAILABLE", "Could not verify account status")
			return
		}
		metrics.GateDecision(string(d.State))

		switch d.State {
		case session.StateAuthenticated:
			c.Set(authctx.KeyRole, p.Role)
			c.Next()
		case session.StatePending:
			response.ErrorWithDetails(c, http.StatusForbidden, "ACCOUNT_PENDING", d.Message, d)
			c.Abort()
		default:
			code := "SESSION_EXPIRED"
			message := "Session expired, please sign in again"
			if d.Reason == session.ReasonBlocked {
				code = "ACCOUNT_BLOCKED"
				message = d.Message
			}
			response.ErrorWithDetails(c, http.StatusUnauthorized, code, message, d)
			c.Abort()
		}
	}
}
