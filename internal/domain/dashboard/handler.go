package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Overview godoc
// @Summary Dashboard figures
// @Description Active projects, crew, monthly revenue, pending purchases, recent projects and upcoming steps
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=Overview}
// @Router /dashboard [get]
func (h *Handler) Overview(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	out, err := h.service.Overview(c.Request.Context(), userID)
	if err != nil {
		logger.FromGin(c).Error("dashboard failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, out)
}
