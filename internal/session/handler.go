package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"obrago/internal/pkg/authctx"
	"obrago/internal/pkg/jwt"
	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
)

type tokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Handler exposes the gate decision over HTTP and websocket.
type Handler struct {
	svc      *Service
	tokens   tokenValidator
	upgrader websocket.Upgrader
}

// NewHandler builds the handler. Browsers must connect from one of
// allowedOrigins; clients that send no Origin header are let through.
func NewHandler(svc *Service, tokens tokenValidator, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = true
		}
	}
	return &Handler{
		svc:    svc,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

type stateResponse struct {
	Decision
	Profile *Principal `json:"profile,omitempty"`
}

// Get godoc
// @Summary Resolve the caller's session state
// @Description Returns authenticated, pending or unauthenticated (blocked callers are signed out).
// @Tags Session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /session [get]
func (h *Handler) Get(c *gin.Context) {
	userID := authctx.MustUserID(c)
	if userID == "" {
		return
	}

	d, p, err := h.svc.Check(c.Request.Context(), userID, c.GetInt(authctx.KeyTokenVersion))
	if err != nil {
		logger.FromGin(c).Error("session check failed", zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, "GATE_UNAVAILABLE", "Could not verify account status")
		return
	}

	resp := stateResponse{Decision: d}
	if d.State != StateUnauthenticated {
		resp.Profile = p
	}
	response.Success(c, http.StatusOK, resp)
}

// Events godoc
// @Summary Stream session state changes
// @Description Websocket. Authenticate with ?token=JWT. The first frame is the current state.
// @Tags Session
// @Param token query string true "Access token"
// @Router /session/events [get]
func (h *Handler) Events(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	d, _, err := h.svc.Check(c.Request.Context(), claims.UserID, claims.TokenVersion)
	if err != nil {
		logger.FromGin(c).Error("session check failed", zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, "GATE_UNAVAILABLE", "Could not verify account status")
		return
	}
	if d.State == StateUnauthenticated {
		response.ErrorWithDetails(c, http.StatusUnauthorized, "SESSION_ENDED", "Session is no longer valid", d)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.FromGin(c).Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.svc.Hub().Serve(c.Request.Context(), conn, claims.UserID, d)
}
