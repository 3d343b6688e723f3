package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"obrago/internal/pkg/authctx"
	"obrago/internal/session"
)

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) Check(ctx context.Context, userID string, tokenVersion int) (session.Decision, *session.Principal, error) {
	args := m.Called(ctx, userID, tokenVersion)
	var p *session.Principal
	if v := args.Get(1); v != nil {
		p = v.(*session.Principal)
	}
	return args.Get(0).(session.Decision), p, args.Error(2)
}

func gatedRouter(checker sessionChecker, reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(authctx.KeyUserID, "u1")
		c.Set(authctx.KeyRole, "admin") // token role must not be trusted
		c.Set(authctx.KeyTokenVersion, 1)
		c.Next()
	})
	r.Use(IdentityGate(checker))
	r.GET("/obras", func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{"role": authctx.Role(c)})
	})
	return r
}

func TestIdentityGate_Authenticated(t *testing.T) {
	checker := new(mockChecker)
	checker.On("Check", mock.Anything, "u1", 1).
		Return(session.Decision{State: session.StateAuthenticated, Role: "user"}, &session.Principal{ID: "u1", Role: "user"}, nil)

	reached := false
	w := httptest.NewRecorder()
	gatedRouter(checker, &reached).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/obras", nil))

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"user"}`, w.Body.String())
}

func TestIdentityGate_PendingNeverReachesHandler(t *testing.T) {
	checker := new(mockChecker)
	checker.On("Check", mock.Anything, "u1", 1).
		Return(session.Resolve(&session.Principal{ID: "u1", Role: "pending"}), &session.Principal{ID: "u1", Role: "pending"}, nil)

	reached := false
	w := httptest.NewRecorder()
	gatedRouter(checker, &reached).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/obras", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ACCOUNT_PENDING")
	assert.Contains(t, w.Body.String(), `"state":"pending"`)
}

func TestIdentityGate_BlockedIsSignedOut(t *testing.T) {
	checker := new(mockChecker)
	checker.On("Check", mock.Anything, "u1", 1).
		Return(session.Decision{State: session.StateUnauthenticated, Reason: session.ReasonBlocked, Message: session.MessageBlocked}, nil, nil)

	reached := false
	w := httptest.NewRecorder()
	gatedRouter(checker, &reached).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/obras", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ACCOUNT_BLOCKED")
	assert.Contains(t, w.Body.String(), `"state":"unauthenticated"`)
}

func TestIdentityGate_FailsClosed(t *testing.T) {
	checker := new(mockChecker)
	checker.On("Check", mock.Anything, "u1", 1).
		Return(session.Decision{}, nil, errors.New("db down"))

	reached := false
	w := httptest.NewRecorder()
	gatedRouter(checker, &reached).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/obras", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "GATE_UNAVAILABLE")
}
