package authctx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"obrago/internal/pkg/response"
)

const (
	KeyUserID       = "user_id"
	KeyRole         = "role"
	KeyTokenVersion = "token_version"
)

// UserID returns the authenticated profile id set by the auth middleware.
func UserID(c *gin.Context) string {
	return c.GetString(KeyUserID)
}

// Role returns the role resolved for the current request.
func Role(c *gin.Context) string {
	return c.GetString(KeyRole)
}

// MustUserID extracts the caller's id, writing 401 when it is missing.
func MustUserID(c *gin.Context) string {
	id := UserID(c)
	if id == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		c.Abort()
	}
	return id
}
