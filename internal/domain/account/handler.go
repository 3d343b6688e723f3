package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
	"obrago/internal/pkg/validator"
)

// Handler handles account HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SignUp godoc
// @Summary Create an account
// @Description New accounts start pending until an administrator approves them.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Sign-up data"
// @Success 201 {object} response.Response{data=Profile}
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	p, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=LoginResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Logout godoc
// @Summary Sign out everywhere
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "signed out"})
}

// ResetPassword godoc
// @Summary Set a new password with a recovery token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/password/reset [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}

// Me godoc
// @Summary Current profile
// @Tags Profile
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Profile}
// @Router /me [get]
func (h *Handler) Me(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	p, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// UpdateMe godoc
// @Summary Update the display name
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} response.Response{data=Profile}
// @Router /me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}
	p, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// MySubscription godoc
// @Summary Subscription status and available plans
// @Tags Profile
// @Security BearerAuth
// @Success 200 {object} response.Response{data=SubscriptionResponse}
// @Router /me/subscription [get]
func (h *Handler) MySubscription(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}
	sub, err := h.service.Subscription(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// ListPlans godoc
// @Summary Public pricing table
// @Tags Profile
// @Success 200 {object} response.Response{data=[]Plan}
// @Router /subscription/plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	response.Success(c, http.StatusOK, Plans())
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, ErrAccountBlocked):
		response.Error(c, http.StatusForbidden, "ACCOUNT_BLOCKED", "Account is blocked")
	case errors.Is(err, ErrInvalidResetToken):
		response.Error(c, http.StatusBadRequest, "INVALID_RESET_TOKEN", "Reset link is invalid or has expired")
	case errors.Is(err, ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
	default:
		logger.FromGin(c).Error("account request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
