package crew

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	equipe := r.Group("/equipe")
	{
		equipe.GET("", h.List)
		equipe.GET("/opcoes", h.Options)
		equipe.POST("", h.Create)
		equipe.GET("/:id", h.Get)
		equipe.PUT("/:id", h.Update)
		equipe.PATCH("/:id/status", h.UpdateStatus)
		equipe.DELETE("/:id", h.Delete)
	}
}
