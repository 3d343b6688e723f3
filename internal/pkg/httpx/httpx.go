package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"obrago/internal/pkg/date"
	"obrago/internal/pkg/logger"
	"obrago/internal/pkg/response"
	"obrago/internal/scope"
	"obrago/internal/workflow"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// WriteError maps the shared persistence and workflow errors. Anything
// unknown is logged and reported as 500.
func WriteError(c *gin.Context, err error, notFoundMessage string) {
	var terr *workflow.TransitionError
	switch {
	case errors.Is(err, scope.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", notFoundMessage)
	case errors.Is(err, scope.ErrVersionConflict):
		response.Error(c, http.StatusConflict, "VERSION_CONFLICT", "Record was changed by someone else, reload and try again")
	case errors.Is(err, scope.ErrInvalidReference):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_REFERENCE", "Referenced obra does not exist")
	case errors.As(err, &terr):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error(), gin.H{"from": terr.From, "to": terr.To})
	case errors.Is(err, workflow.ErrUnknownState):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, scope.ErrMissingOwner):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	default:
		logger.FromGin(c).Error("request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// Page reads limit and offset query parameters.
func Page(c *gin.Context) (limit, offset int) {
	limit = defaultLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= maxLimit {
			limit = v
		}
	}
	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// Filter reads an optional filter query parameter. The "all" option of the
// list screens means no filter.
func Filter(c *gin.Context, name string) string {
	v := strings.TrimSpace(c.Query(name))
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// QueryDate reads an optional YYYY-MM-DD query parameter. It writes 400 and
// returns ok=false when the value is malformed.
func QueryDate(c *gin.Context, name string) (date.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return date.Date{}, true
	}
	d, err := date.Parse(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", name+": "+err.Error())
		return date.Date{}, false
	}
	return d, true
}

// BindJSON binds the body, writing 400 on malformed input.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body", err.Error())
		return false
	}
	return true
}
