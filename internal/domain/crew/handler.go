package crew

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/httpx"
	"obrago/internal/pkg/response"
	"obrago/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List crew members
// @Tags Equipe
// @Security BearerAuth
// @Param q query string false "Search in nome, funcao, telefone"
// @Param status query string false "Ativo, Férias or Inativo"
// @Param funcao query string false "Role"
// @Param tipo_remuneracao query string false "diaria or salario"
// @Success 200 {object} response.Response{data=[]Member}
// @Router /equipe [get]
func (h *Handler) List(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	limit, offset := httpx.Page(c)
	items, err := h.service.List(c.Request.Context(), userID, ListFilter{
		Search:          c.Query("q"),
		Status:          httpx.Filter(c, "status"),
		Funcao:          httpx.Filter(c, "funcao"),
		TipoRemuneracao: httpx.Filter(c, "tipo_remuneracao"),
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Options godoc
// @Summary Distinct roles and statuses of the crew
// @Tags Equipe
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Options}
// @Router /equipe/opcoes [get]
func (h *Handler) Options(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	opts, err := h.service.Options(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts)
}

// Get godoc
// @Summary Get a crew member
// @Tags Equipe
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response{data=Member}
// @Failure 404 {object} response.Response
// @Router /equipe/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	m, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// Create godoc
// @Summary Add a crew member
// @Tags Equipe
// @Security BearerAuth
// @Accept json
// @Param request body CreateRequest true "Member"
// @Success 201 {object} response.Response{data=Member}
// @Router /equipe [post]
func (h *Handler) Create(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	var req CreateRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}
	m, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// Update godoc
// @Summary Edit a crew member
// @Tags Equipe
// @Security BearerAuth
// @Accept json
// @Param id path string true "Member ID"
// @Param request body UpdateRequest true "Member"
// @Success 200 {object} response.Response{data=Member}
// @Failure 409 {object} response.Response
// @Router /equipe/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	var req UpdateRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}
	m, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// UpdateStatus godoc
// @Summary Change a crew member's status
// @Tags Equipe
// @Security BearerAuth
// @Accept json
// @Param id path string true "Member ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} response.Response{data=Member}
// @Router /equipe/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	var req StatusRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}
	m, err := h.service.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// Delete godoc
// @Summary Remove a crew member
// @Tags Equipe
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /equipe/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidPayType), errors.Is(err, ErrNegativePayment):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		httpx.WriteError(c, err, "Funcionario not found")
	}
}
