package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var localDevOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:8080",
	"http://127.0.0.1:5173",
}

// CORS reflects the request origin when it is allowed. Vite and other local
// dev servers are accepted only when allowLocal is set.
func CORS(origins []string, allowLocal bool) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins)+len(localDevOrigins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = struct{}{}
		}
	}
	if allowLocal {
		for _, o := range localDevOrigins {
			allowed[o] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Add("Vary", "Origin")
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		// preflight ends here, before JWTAuth sees it
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, Origin, X-Request-ID, X-Client-Info, Apikey")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Max-Age", "600")
		c.AbortWithStatus(http.StatusNoContent)
	}
}
