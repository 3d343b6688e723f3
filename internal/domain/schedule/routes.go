package schedule

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	cronograma := r.Group("/cronograma")
	{
		cronograma.GET("", h.List)
		cronograma.POST("", h.Create)
		cronograma.GET("/:id", h.Get)
		cronograma.PUT("/:id", h.Update)
		cronograma.PATCH("/:id/status", h.UpdateStatus)
		cronograma.PATCH("/:id/progress", h.UpdateProgress)
		cronograma.DELETE("/:id", h.Delete)
	}
}
