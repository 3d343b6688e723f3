package finance

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	transacoes := r.Group("/transacoes")
	{
		transacoes.GET("", h.List)
		transacoes.GET("/categorias", h.Categories)
		transacoes.POST("", h.Create)
		transacoes.GET("/:id", h.Get)
		transacoes.PUT("/:id", h.Update)
		transacoes.DELETE("/:id", h.Delete)
	}

	financeiro := r.Group("/financeiro")
	{
		financeiro.GET("/resumo", h.Summary)
		financeiro.GET("/grafico", h.Chart)
	}
}
