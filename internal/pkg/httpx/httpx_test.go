package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrago/internal/scope"
	"obrago/internal/workflow"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestWriteError(t *testing.T) {
	_, transition := workflow.WorkMachine.Move(workflow.WorkPending, workflow.WorkDone)
	require.Error(t, transition)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("get: %w", scope.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"stale version", scope.ErrVersionConflict, http.StatusConflict, "VERSION_CONFLICT"},
		{"bad reference", scope.ErrInvalidReference, http.StatusUnprocessableEntity, "INVALID_REFERENCE"},
		{"transition", transition, http.StatusUnprocessableEntity, "INVALID_TRANSITION"},
		{"unknown state", workflow.ErrUnknownState, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing owner", scope.ErrMissingOwner, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"other", errors.New("disk full"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := testContext("/")
			WriteError(c, tc.err, "Obra not found")
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, errorCode(t, w))
		})
	}
}

func TestPage(t *testing.T) {
	c, _ := testContext("/?limit=20&offset=40")
	limit, offset := Page(c)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	c, _ = testContext("/?limit=5000&offset=-1")
	limit, offset = Page(c)
	assert.Equal(t, defaultLimit, limit)
	assert.Equal(t, 0, offset)
}

func TestFilter(t *testing.T) {
	c, _ := testContext("/?status=all&tipo=%20despesa%20")
	assert.Equal(t, "", Filter(c, "status"))
	assert.Equal(t, "despesa", Filter(c, "tipo"))
	assert.Equal(t, "", Filter(c, "missing"))
}

func TestQueryDate(t *testing.T) {
	c, _ := testContext("/?start=2025-03-01")
	d, ok := QueryDate(c, "start")
	require.True(t, ok)
	assert.Equal(t, "2025-03-01", d.String())

	c, _ = testContext("/")
	d, ok = QueryDate(c, "start")
	assert.True(t, ok)
	assert.True(t, d.IsZero())

	c, w := testContext("/?start=01/03/2025")
	_, ok = QueryDate(c, "start")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
