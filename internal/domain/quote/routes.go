package quote

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	orcamentos := r.Group("/orcamentos")
	{
		orcamentos.GET("", h.List)
		orcamentos.GET("/proximo-numero", h.NextNumber)
		orcamentos.POST("", h.Create)
		orcamentos.GET("/:id", h.Get)
		orcamentos.PUT("/:id", h.Update)
		orcamentos.PATCH("/:id/status", h.UpdateStatus)
		orcamentos.DELETE("/:id", h.Delete)
	}
}
