package material

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
// @Summary List materials
// @Tags Materiais
// @Security BearerAuth
// @Param q query string false "Search in nome, fornecedor"
// @Param status query string false "Pendente, Comprado, Em Estoque or Esgotado"
// @Param obra_id query string false "Project ID"
// @Param fornecedor query string false "Supplier"
// @Success 200 {object} response.Response{data=[]Material}
// @Router /materiais [get]
func (h *Handler) List(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	limit, offset := httpx.Page(c)
	items, err := h.service.List(c.Request.Context(), userID, ListFilter{
		Search:     c.Query("q"),
		Status:     httpx.Filter(c, "status"),
		ObraID:     httpx.Filter(c, "obra_id"),
		Fornecedor: httpx.Filter(c, "fornecedor"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Pending godoc
// @Summary Count and value of materials still to buy
// @Tags Materiais
// @Security BearerAuth
// @Success 200 {object} response.Response{data=PendingSummary}
// @Router /materiais/pendentes [get]
func (h *Handler) Pending(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	sum, err := h.service.Pending(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum)
}

// Get godoc
// @Summary Get a material
// @Tags Materiais
// @Security BearerAuth
// @Param id path string true "Material ID"
// @Success 200 {object} response.Response{data=Material}
// @Failure 404 {object} response.Response
// @Router /materiais/{id} [get]
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
// @Summary Add a material
// @Tags Materiais
// @Security BearerAuth
// @Accept json
// @Param request body CreateRequest true "Material"
// @Success 201 {object} response.Response{data=Material}
// @Router /materiais [post]
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
// @Summary Edit a material
// @Tags Materiais
// @Security BearerAuth
// @Accept json
// @Param id path string true "Material ID"
// @Param request body UpdateRequest true "Material"
// @Success 200 {object} response.Response{data=Material}
// @Failure 409 {object} response.Response
// @Router /materiais/{id} [put]
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
// @Summary Change a material's status
// @Tags Materiais
// @Security BearerAuth
// @Accept json
// @Param id path string true "Material ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} response.Response{data=Material}
// @Router /materiais/{id}/status [patch]
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
// @Summary Delete a material
// @Tags Materiais
// @Security BearerAuth
// @Param id path string true "Material ID"
// @Success 200 {object} response.Response
// @Router /materiais/{id} [delete]
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
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrNegativeValue):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		httpx.WriteError(c, err, "Material not found")
	}
}
