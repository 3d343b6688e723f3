package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"obrago/internal/domain/account"
	"obrago/internal/pkg/jwt"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type noopSignOut struct{}

func (noopSignOut) SignOut(context.Context, string) {}

func setupAccounts(t *testing.T) *account.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: fmt.Sprintf("file:notification_%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&account.Profile{}, &account.RecoveryToken{}))

	svc := account.NewService(account.NewRepository(db), jwt.New("test-secret", time.Hour), noopSignOut{}, "pepper", time.Hour)
	_, err = svc.SignUp(context.Background(), account.SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)
	return svc
}

func setupRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	h := NewHandler(svc)
	RegisterPublicRoutes(api, h, func(c *gin.Context) { c.Next() })
	RegisterAdminRoutes(api, h)
	return r
}

func postJSON(r *gin.Engine, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

var testOptions = Options{
	SiteURL:        "https://obra-go-control.lovable.app/",
	AllowedOrigins: []string{"https://app.obra.example"},
	FromApproval:   "ConstructPRO <onboarding@resend.dev>",
	FromReset:      "ObraGo <noreply@obragocontrol.com>",
}

var tokenInLink = regexp.MustCompile(`token=([0-9a-f]{64})`)

func TestSendPasswordReset_UnknownEmailSendsNothing(t *testing.T) {
	mailer := new(mockMailer)
	r := setupRouter(NewService(mailer, setupAccounts(t), testOptions))

	w, body := postJSON(r, "/api/v1/notifications/send-password-reset", gin.H{"email": "ghost@obra.com"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, msgResetUnknown, body["message"])
	assert.NotContains(t, body, "emailId")
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendPasswordReset_KnownEmail(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg Message) bool {
		return msg.Subject == resetSubject &&
			msg.From == testOptions.FromReset &&
			len(msg.To) == 1 && msg.To[0] == "ana@obra.com" &&
			strings.Contains(msg.HTML, "https://app.obra.example/auth?mode=reset&amp;token=")
	})).Return("email_1", nil).Once()
	r := setupRouter(NewService(mailer, setupAccounts(t), testOptions))

	w, body := postJSON(r, "/api/v1/notifications/send-password-reset", gin.H{"email": "ANA@obra.com"},
		map[string]string{"Origin": "https://app.obra.example"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, msgResetSent, body["message"])
	assert.Equal(t, "email_1", body["emailId"])
	mailer.AssertExpectations(t)
}

func TestSendPasswordReset_Failures(t *testing.T) {
	t.Run("missing email", func(t *testing.T) {
		r := setupRouter(NewService(new(mockMailer), setupAccounts(t), testOptions))
		w, body := postJSON(r, "/api/v1/notifications/send-password-reset", gin.H{"email": " "}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Email is required", body["error"])
	})

	t.Run("not configured", func(t *testing.T) {
		r := setupRouter(NewService(nil, setupAccounts(t), testOptions))
		w, body := postJSON(r, "/api/v1/notifications/send-password-reset", gin.H{"email": "ana@obra.com"}, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Email service not configured", body["error"])
	})

	t.Run("provider error", func(t *testing.T) {
		var html string
		mailer := new(mockMailer)
		mailer.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { html = args.Get(1).(Message).HTML }).
			Return("", errors.New("boom")).Once()
		accounts := setupAccounts(t)
		r := setupRouter(NewService(mailer, accounts, testOptions))
		w, body := postJSON(r, "/api/v1/notifications/send-password-reset", gin.H{"email": "ana@obra.com"}, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Failed to send email", body["error"])

		// the undelivered token is burned
		m := tokenInLink.FindStringSubmatch(html)
		require.Len(t, m, 2)
		err := accounts.ResetPassword(context.Background(), account.ResetPasswordRequest{Token: m[1], Password: "novasenha1"})
		assert.ErrorIs(t, err, account.ErrInvalidResetToken)
	})
}

func TestSendPasswordReset_ForeignOriginUsesSiteURL(t *testing.T) {
	var html string
	mailer := new(mockMailer)
	r := setupRouter(NewService(mailer, setupAccounts(t), testOptions))

	for _, headers := range []map[string]string{
		{"Origin": "https://evil.example"},
		{"Referer": "https://evil.example/auth"},
	} {
		html = ""
		mailer.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { html = args.Get(1).(Message).HTML }).
			Return("email_4", nil).Once()

		w, _ := postJSON(r, "/api/v1/notifications/send-password-reset", gin.H{"email": "ana@obra.com"}, headers)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, html, "evil.example")
		assert.Contains(t, html, "https://obra-go-control.lovable.app/auth?mode=reset&amp;token=")
	}
	mailer.AssertExpectations(t)
}

func TestSendPasswordReset_FallsBackToSiteURL(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg Message) bool {
		return strings.Contains(msg.HTML, "https://obra-go-control.lovable.app/auth?mode=reset")
	})).Return("email_2", nil).Once()
	svc := NewService(mailer, setupAccounts(t), testOptions)

	res, err := svc.SendPasswordReset(context.Background(), "ana@obra.com", "")
	require.NoError(t, err)
	assert.True(t, res.Sent)
	mailer.AssertExpectations(t)
}

func TestSendApprovalEmail(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg Message) bool {
		return msg.Subject == approvalSubject && strings.Contains(msg.HTML, "Bia")
	})).Return("email_3", nil).Once()
	mailer.On("Send", mock.Anything, mock.Anything).Return("", errors.New("rate limited")).Once()
	r := setupRouter(NewService(mailer, setupAccounts(t), testOptions))

	w, body := postJSON(r, "/api/v1/notifications/send-approval-email", gin.H{"userEmail": "bia@obra.com", "userName": "Bia"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "email_3", body["id"])

	w, body = postJSON(r, "/api/v1/notifications/send-approval-email", gin.H{"userEmail": "bia@obra.com", "userName": "Zé"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "rate limited", body["error"])

	w, _ = postJSON(r, "/api/v1/notifications/send-approval-email", gin.H{"userName": "Bia"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestOrigin(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"origin", map[string]string{"Origin": "https://a.example/", "Referer": "https://b.example/x"}, "https://a.example"},
		{"referer", map[string]string{"Referer": "https://b.example:8080/auth?x=1"}, "https://b.example:8080"},
		{"null origin", map[string]string{"Origin": "null"}, ""},
		{"none", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, RequestOrigin(req))
		})
	}
}
