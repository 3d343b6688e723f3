package quote

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
// @Summary List quotes
// @Tags Orcamentos
// @Security BearerAuth
// @Param q query string false "Search in numero, cliente, obra"
// @Param status query string false "Rascunho, Enviado, Aceito or Recusado"
// @Param validade_de query string false "Valid on or after (YYYY-MM-DD)"
// @Param validade_ate query string false "Valid on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Response{data=[]Quote}
// @Router /orcamentos [get]
func (h *Handler) List(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	from, ok := httpx.QueryDate(c, "validade_de")
	if !ok {
		return
	}
	until, ok := httpx.QueryDate(c, "validade_ate")
	if !ok {
		return
	}
	limit, offset := httpx.Page(c)
	items, err := h.service.List(c.Request.Context(), userID, ListFilter{
		Search:     c.Query("q"),
		Status:     httpx.Filter(c, "status"),
		ValidFrom:  from,
		ValidUntil: until,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// NextNumber godoc
// @Summary Suggest a quote number
// @Tags Orcamentos
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /orcamentos/proximo-numero [get]
func (h *Handler) NextNumber(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"numero": h.service.NextNumber()})
}

// Get godoc
// @Summary Get a quote
// @Tags Orcamentos
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} response.Response{data=Quote}
// @Failure 404 {object} response.Response
// @Router /orcamentos/{id} [get]
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
// @Summary Create a draft quote
// @Description numero is generated when omitted
// @Tags Orcamentos
// @Security BearerAuth
// @Accept json
// @Param request body CreateRequest true "Quote"
// @Success 201 {object} response.Response{data=Quote}
// @Router /orcamentos [post]
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
// @Summary Edit a quote
// @Tags Orcamentos
// @Security BearerAuth
// @Accept json
// @Param id path string true "Quote ID"
// @Param request body UpdateRequest true "Quote"
// @Success 200 {object} response.Response{data=Quote}
// @Failure 409 {object} response.Response
// @Router /orcamentos/{id} [put]
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
// @Summary Change a quote's status
// @Tags Orcamentos
// @Security BearerAuth
// @Accept json
// @Param id path string true "Quote ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} response.Response{data=Quote}
// @Router /orcamentos/{id}/status [patch]
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
// @Summary Delete a quote
// @Tags Orcamentos
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} response.Response
// @Router /orcamentos/{id} [delete]
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
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrMissingValidity), errors.Is(err, ErrExpiredValidity):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrQuoteLocked):
		response.Error(c, http.StatusConflict, "QUOTE_LOCKED", "Accepted quotes cannot be edited")
	default:
		httpx.WriteError(c, err, "Orcamento not found")
	}
}
