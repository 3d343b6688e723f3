package material

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	materiais := r.Group("/materiais")
	{
		materiais.GET("", h.List)
		materiais.GET("/pendentes", h.Pending)
		materiais.POST("", h.Create)
		materiais.GET("/:id", h.Get)
		materiais.PUT("/:id", h.Update)
		materiais.PATCH("/:id/status", h.UpdateStatus)
		materiais.DELETE("/:id", h.Delete)
	}
}
