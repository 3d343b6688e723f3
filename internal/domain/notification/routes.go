package notification

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the password reset sender behind limit.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler, limit gin.HandlerFunc) {
	r.POST("/notifications/send-password-reset", limit, h.SendPasswordReset)
}

// RegisterAdminRoutes mounts senders reserved to administrators.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/notifications/send-approval-email", h.SendApprovalEmail)
}
