package notification

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/pkg/logger"
)

const (
	msgResetUnknown = "Se o email existir, um link de recuperação será enviado."
	msgResetSent    = "Email de recuperação enviado com sucesso!"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type approvalRequest struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}

type resetRequest struct {
	Email string `json:"email"`
}

// SendApprovalEmail godoc
// @Summary Send the account approval email
// @Tags Notifications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body approvalRequest true "Recipient"
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/send-approval-email [post]
func (h *Handler) SendApprovalEmail(c *gin.Context) {
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.UserEmail = strings.TrimSpace(req.UserEmail)
	if req.UserEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userEmail is required"})
		return
	}

	id, err := h.service.SendApproval(c.Request.Context(), req.UserEmail, req.UserName)
	if err != nil {
		logger.FromGin(c).Error("approval email failed", zap.String("email", req.UserEmail), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// SendPasswordReset godoc
// @Summary Email a password recovery link
// @Description Answers the same way whether or not the address is registered.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body resetRequest true "Account email"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /notifications/send-password-reset [post]
func (h *Handler) SendPasswordReset(c *gin.Context) {
	if !h.service.Configured() {
		resetFailure(c, http.StatusInternalServerError, "Email service not configured")
		return
	}

	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resetFailure(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		resetFailure(c, http.StatusBadRequest, "Email is required")
		return
	}

	res, err := h.service.SendPasswordReset(c.Request.Context(), req.Email, RequestOrigin(c.Request))
	switch {
	case errors.Is(err, ErrNotConfigured):
		resetFailure(c, http.StatusInternalServerError, "Email service not configured")
		return
	case err != nil:
		logger.FromGin(c).Error("password reset email failed", zap.Error(err))
		resetFailure(c, http.StatusInternalServerError, "Failed to send email")
		return
	}

	if !res.Sent {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msgResetUnknown})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgResetSent, "emailId": res.EmailID})
}

func resetFailure(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// RequestOrigin returns the Origin header, else scheme and host of the
// Referer, else an empty string.
func RequestOrigin(r *http.Request) string {
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" && origin != "null" {
		return strings.TrimRight(origin, "/")
	}
	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || ref.Scheme == "" || ref.Host == "" {
		return ""
	}
	return ref.Scheme + "://" + ref.Host
}
