package session

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts GET /session on a group guarded by JWT auth only,
// so pending and blocked callers can still learn their state.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/session", h.Get)
}

// RegisterStreamRoutes mounts the websocket stream, which authenticates via
// query parameter.
func RegisterStreamRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/session/events", h.Events)
}
