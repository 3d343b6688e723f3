package finance

import (
	"errors"
	"net/http"
	"strconv"

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
// @Summary List transactions
// @Tags Financeiro
// @Security BearerAuth
// @Param q query string false "Search in descricao, categoria"
// @Param tipo query string false "receita or despesa"
// @Param categoria query string false "Category"
// @Param obra_id query string false "Project ID"
// @Param start query string false "First day (YYYY-MM-DD)"
// @Param end query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} response.Response{data=[]Transaction}
// @Router /transacoes [get]
func (h *Handler) List(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	f, ok := h.filter(c)
	if !ok {
		return
	}
	f.Limit, f.Offset = httpx.Page(c)
	items, err := h.service.List(c.Request.Context(), userID, f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Categories godoc
// @Summary Allowed categories per tipo
// @Tags Financeiro
// @Security BearerAuth
// @Success 200 {object} response.Response{data=CategoriesResponse}
// @Router /transacoes/categorias [get]
func (h *Handler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, CategoriesResponse(Categories))
}

// Get godoc
// @Summary Get a transaction
// @Tags Financeiro
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response{data=Transaction}
// @Failure 404 {object} response.Response
// @Router /transacoes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	t, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// Create godoc
// @Summary Record a transaction
// @Tags Financeiro
// @Security BearerAuth
// @Accept json
// @Param request body CreateRequest true "Transaction"
// @Success 201 {object} response.Response{data=Transaction}
// @Failure 422 {object} response.Response
// @Router /transacoes [post]
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
	t, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

// Update godoc
// @Summary Edit a transaction
// @Tags Financeiro
// @Security BearerAuth
// @Accept json
// @Param id path string true "Transaction ID"
// @Param request body UpdateRequest true "Transaction"
// @Success 200 {object} response.Response{data=Transaction}
// @Failure 409 {object} response.Response
// @Router /transacoes/{id} [put]
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
	t, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags Financeiro
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Router /transacoes/{id} [delete]
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

// Summary godoc
// @Summary Income, expenses and balance
// @Description Accepts the same filters as the transaction list
// @Tags Financeiro
// @Security BearerAuth
// @Param start query string false "First day (YYYY-MM-DD)"
// @Param end query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} response.Response{data=Summary}
// @Router /financeiro/resumo [get]
func (h *Handler) Summary(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	f, ok := h.filter(c)
	if !ok {
		return
	}
	sum, err := h.service.Summary(c.Request.Context(), userID, f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum)
}

// Chart godoc
// @Summary Monthly income vs. expenses and expense split
// @Tags Financeiro
// @Security BearerAuth
// @Param months query int false "Number of months, default 5"
// @Success 200 {object} response.Response{data=Chart}
// @Router /financeiro/grafico [get]
func (h *Handler) Chart(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	months, _ := strconv.Atoi(c.DefaultQuery("months", "5"))
	chart, err := h.service.Chart(c.Request.Context(), userID, months)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, chart)
}

func (h *Handler) filter(c *gin.Context) (ListFilter, bool) {
	start, ok := httpx.QueryDate(c, "start")
	if !ok {
		return ListFilter{}, false
	}
	end, ok := httpx.QueryDate(c, "end")
	if !ok {
		return ListFilter{}, false
	}
	return ListFilter{
		Search:    c.Query("q"),
		Tipo:      httpx.Filter(c, "tipo"),
		Categoria: httpx.Filter(c, "categoria"),
		ObraID:    httpx.Filter(c, "obra_id"),
		Start:     start,
		End:       end,
	}, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidKind), errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		httpx.WriteError(c, err, "Transacao not found")
	}
}
