package schedule

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
// @Summary List steps
// @Tags Cronograma
// @Security BearerAuth
// @Param q query string false "Search in nome, responsavel"
// @Param status query string false "Status"
// @Param obra_id query string false "Project ID"
// @Param limit query int false "Items per page"
// @Param offset query int false "Offset"
// @Produce json
// @Success 200 {object} response.Response{data=[]Step}
// @Router /cronograma [get]
func (h *Handler) List(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	limit, offset := httpx.Page(c)
	items, err := h.service.List(c.Request.Context(), userID, ListFilter{
		Search: c.Query("q"),
		Status: httpx.Filter(c, "status"),
		ObraID: httpx.Filter(c, "obra_id"),
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
// @Summary Get a step
// @Tags Cronograma
// @Security BearerAuth
// @Param id path string true "Step ID"
// @Success 200 {object} response.Response{data=Step}
// @Failure 404 {object} response.Response
// @Router /cronograma/{id} [get]
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
// @Summary Create a step
// @Tags Cronograma
// @Security BearerAuth
// @Accept json
// @Param request body CreateRequest true "Step"
// @Success 201 {object} response.Response{data=Step}
// @Failure 400 {object} response.Response
// @Router /cronograma [post]
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
// @Summary Edit a step
// @Description Full edit; version must match the stored row
// @Tags Cronograma
// @Security BearerAuth
// @Accept json
// @Param id path string true "Step ID"
// @Param request body UpdateRequest true "Step"
// @Success 200 {object} response.Response{data=Step}
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /cronograma/{id} [put]
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
// @Summary Change step status
// @Tags Cronograma
// @Security BearerAuth
// @Accept json
// @Param id path string true "Step ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} response.Response{data=Step}
// @Failure 422 {object} response.Response
// @Router /cronograma/{id}/status [patch]
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
// @Summary Change step progress
// @Description Progress is clamped to 0..100 and may advance the status
// @Tags Cronograma
// @Security BearerAuth
// @Accept json
// @Param id path string true "Step ID"
// @Param request body ProgressRequest true "Progress"
// @Success 200 {object} response.Response{data=Step}
// @Router /cronograma/{id}/progress [patch]
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
// @Summary Delete a step
// @Tags Cronograma
// @Security BearerAuth
// @Param id path string true "Step ID"
// @Success 200 {object} response.Response
// @Router /cronograma/{id} [delete]
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
	case errors.Is(err, ErrMissingDates), errors.Is(err, ErrDateOrder):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		httpx.WriteError(c, err, "Etapa not found")
	}
}
