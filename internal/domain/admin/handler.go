package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/domain/account"
	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/httpx"
	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
	"obrago/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListProfiles godoc
// @Summary List profiles
// @Description Filter by status (all, pending, active, blocked, admin) and search by name or email
// @Tags Admin
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param q query string false "Search text"
// @Param limit query int false "Items per page"
// @Param offset query int false "Offset"
// @Produce json
// @Success 200 {object} response.Response{data=ListResponse}
// @Failure 403 {object} response.Response
// @Router /admin/profiles [get]
func (h *Handler) ListProfiles(c *gin.Context) {
	limit, offset := httpx.Page(c)
	res, err := h.service.List(c.Request.Context(), ListFilter{
		Status: StatusFilter(c.DefaultQuery("status", string(FilterAll))),
		Search: c.Query("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetStats godoc
// @Summary Profile counters
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=Stats}
// @Router /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	st, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// Approve godoc
// @Summary Approve a pending profile
// @Description Sets role user, activates a one-month subscription and emails the user
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} response.Response{data=account.Profile}
// @Failure 404 {object} response.Response
// @Router /admin/profiles/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	h.act(c, h.service.Approve)
}

// Block godoc
// @Summary Block a profile
// @Description Blocked profiles are signed out everywhere
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} response.Response{data=account.Profile}
// @Failure 409 {object} response.Response
// @Router /admin/profiles/{id}/block [post]
func (h *Handler) Block(c *gin.Context) {
	h.act(c, h.service.Block)
}

// Unblock godoc
// @Summary Unblock a profile
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} response.Response{data=account.Profile}
// @Router /admin/profiles/{id}/unblock [post]
func (h *Handler) Unblock(c *gin.Context) {
	h.act(c, h.service.Unblock)
}

// Promote godoc
// @Summary Grant the admin role
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} response.Response{data=account.Profile}
// @Router /admin/profiles/{id}/promote [post]
func (h *Handler) Promote(c *gin.Context) {
	h.act(c, h.service.Promote)
}

// SetSubscription godoc
// @Summary Change a subscription status
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Profile ID"
// @Param request body SubscriptionRequest true "New status"
// @Success 200 {object} response.Response{data=account.Profile}
// @Failure 400 {object} response.Response
// @Router /admin/profiles/{id}/subscription [patch]
func (h *Handler) SetSubscription(c *gin.Context) {
	adminID := authctx.MustUserID(c)
	if adminID == "" {
		return
	}
	var req SubscriptionRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	p, err := h.service.SetSubscription(c.Request.Context(), adminID, c.Param("id"), account.SubscriptionStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

type action func(ctx context.Context, adminID, profileID string) (*account.Profile, error)

func (h *Handler) act(c *gin.Context, fn action) {
	adminID := authctx.MustUserID(c)
	if adminID == "" {
		return
	}
	p, err := fn(c.Request.Context(), adminID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, account.ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
	case errors.Is(err, ErrSelfAction):
		response.Error(c, http.StatusConflict, "SELF_ACTION", "You cannot change your own account")
	case errors.Is(err, ErrInvalidFilter):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be one of all, pending, active, blocked, admin")
	case errors.Is(err, ErrInvalidSubscription):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be one of active, inactive, overdue")
	default:
		logger.FromGin(c).Error("admin request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
