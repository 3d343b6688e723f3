package account

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts endpoints that need no token.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
		auth.POST("/password/reset", h.ResetPassword)
	}
	r.GET("/subscription/plans", h.ListPlans)
}

// RegisterSessionRoutes mounts endpoints open to any valid token, including
// pending profiles that only need to sign out.
func RegisterSessionRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/auth/logout", h.Logout)
}

// RegisterProtectedRoutes mounts endpoints behind the identity gate.
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	me := r.Group("/me")
	{
		me.GET("", h.Me)
		me.PUT("", h.UpdateMe)
		me.GET("/subscription", h.MySubscription)
	}
}
