package project

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
// @Summary List projects
// @Tags Obras
// @Security BearerAuth
// @Param q query string false "Search in nome, cliente, endereco"
// @Param status query string false "Status"
// @Param limit query int false "Items per page"
// @Param offset query int false "Offset"
// @Produce json
// @Success 200 {object} response.Response{data=[]Project}
// @Router /obras [get]
func (h *Handler) List(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	limit, offset := httpx.Page(c)
	items, err := h.service.List(c.Request.Context(), userID, ListFilter{
		Search: c.Query("q"),
		Status: httpx.Filter(c, "status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get a project
// @Tags Obras
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Response{data=Project}
// @Failure 404 {object} response.Response
// @Router /obras/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	p, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create godoc
// @Summary Create a project
// @Tags Obras
// @Security BearerAuth
// @Accept json
// @Param request body CreateRequest true "Project"
// @Success 201 {object} response.Response{data=Project}
// @Failure 400 {object} response.Response
// @Router /obras [post]
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
	p, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Update godoc
// @Summary Edit a project
// @Description Full edit; version must match the stored row
// @Tags Obras
// @Security BearerAuth
// @Accept json
// @Param id path string true "Project ID"
// @Param request body UpdateRequest true "Project"
// @Success 200 {object} response.Response{data=Project}
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /obras/{id} [put]
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
	p, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// UpdateStatus godoc
// @Summary Change project status
// @Tags Obras
// @Security BearerAuth
// @Accept json
// @Param id path string true "Project ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} response.Response{data=Project}
// @Failure 422 {object} response.Response
// @Router /obras/{id}/status [patch]
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
	p, err := h.service.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// UpdateProgress godoc
// @Summary Change project progress
// @Description Progress is clamped to 0..100 and may advance the status
// @Tags Obras
// @Security BearerAuth
// @Accept json
// @Param id path string true "Project ID"
// @Param request body ProgressRequest true "Progress"
// @Success 200 {object} response.Response{data=Project}
// @Router /obras/{id}/progress [patch]
func (h *Handler) UpdateProgress(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	var req ProgressRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}
	p, err := h.service.UpdateProgress(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Delete godoc
// @Summary Delete a project
// @Tags Obras
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /obras/{id} [delete]
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
	case errors.Is(err, ErrNegativeBudget), errors.Is(err, ErrDateOrder):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrProjectInUse):
		response.Error(c, http.StatusConflict, "PROJECT_IN_USE", "Obra has linked etapas, materiais or transacoes")
	default:
		httpx.WriteError(c, err, "Obra not found")
	}
}
