package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/jwt"
	"obrago/internal/pkg/response"
)

type tokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// JWTAuth validates the bearer token and stores its claims in the context.
// The role it sets is provisional; IdentityGate replaces it with the stored one.
func JWTAuth(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(authctx.KeyUserID, claims.UserID)
		c.Set(authctx.KeyRole, claims.Role)
		c.Set(authctx.KeyTokenVersion, claims.TokenVersion)
		c.Next()
	}
}
