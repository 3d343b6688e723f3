package project

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	obras := r.Group("/obras")
	{
		obras.GET("", h.List)
		obras.POST("", h.Create)
		obras.GET("/:id", h.Get)
		obras.PUT("/:id", h.Update)
		obras.PATCH("/:id/status", h.UpdateStatus)
		obras.PATCH("/:id/progress", h.UpdateProgress)
		obras.DELETE("/:id", h.Delete)
	}
}
