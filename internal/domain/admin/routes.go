package admin

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the admin panel. The group must already be
// restricted to admins.
func RegisterRoutes(admin *gin.RouterGroup, h *Handler) {
	admin.GET("/stats", h.GetStats)

	profiles := admin.Group("/profiles")
	{
		profiles.GET("", h.ListProfiles)
		profiles.POST("/:id/approve", h.Approve)
		profiles.POST("/:id/block", h.Block)
		profiles.POST("/:id/unblock", h.Unblock)
		profiles.POST("/:id/promote", h.Promote)
		profiles.PATCH("/:id/subscription", h.SetSubscription)
	}
}
