package account

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"obrago/internal/pkg/jwt"
)

type recordingNotifier struct {
	signedOut []string
}

func (n *recordingNotifier) SignOut(_ context.Context, userID string) {
	n.signedOut = append(n.signedOut, userID)
}

func setupTestService(t *testing.T) (*Service, Repository, *recordingNotifier) {
	t.Helper()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: fmt.Sprintf("file:account_%s?mode=memory&cache=shared", t.Name())}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Profile{}, &RecoveryToken{}))

	repo := NewRepository(db)
	notifier := &recordingNotifier{}
	svc := NewService(repo, jwt.New("test-secret", time.Hour), notifier, "pepper", time.Hour)
	return svc, repo, notifier
}

func TestSignUp_CreatesPendingProfile(t *testing.T) {
	svc, _, _ := setupTestService(t)

	p, err := svc.SignUp(context.Background(), SignUpRequest{Name: " Ana ", Email: "Ana@Obra.com ", Password: "secret1"})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, RolePending, p.Role)
	assert.Equal(t, "ana@obra.com", p.Email)
	assert.Equal(t, "Ana", p.Name)
	assert.NotEqual(t, "secret1", p.PasswordHash)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, SignUpRequest{Name: "Ana 2", Email: "ANA@obra.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, repo, _ := setupTestService(t)
	ctx := context.Background()

	p, err := svc.SignUp(ctx, SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, LoginRequest{Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "pending", res.State)

	_, err = svc.Login(ctx, LoginRequest{Email: "ana@obra.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@obra.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, repo.UpdateFields(ctx, p.ID, map[string]any{"role": RoleBlocked}))
	_, err = svc.Login(ctx, LoginRequest{Email: "ana@obra.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountBlocked)
}

func TestLogout_RevokesTokens(t *testing.T) {
	svc, repo, notifier := setupTestService(t)
	ctx := context.Background()

	p, err := svc.SignUp(ctx, SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, p.ID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TokenVersion)
	assert.Equal(t, []string{p.ID}, notifier.signedOut)
}

func TestRecoveryToken_SingleUse(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)

	raw, p, err := svc.IssueRecoveryToken(ctx, "ana@obra.com")
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, "ana@obra.com", p.Email)

	require.NoError(t, svc.ResetPassword(ctx, ResetPasswordRequest{Token: raw, Password: "brand-new"}))

	_, err = svc.Login(ctx, LoginRequest{Email: "ana@obra.com", Password: "brand-new"})
	assert.NoError(t, err)

	err = svc.ResetPassword(ctx, ResetPasswordRequest{Token: raw, Password: "again-new"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPurgeRecoveryTokens(t *testing.T) {
	svc, repo, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)

	used, _, err := svc.IssueRecoveryToken(ctx, "ana@obra.com")
	require.NoError(t, err)
	require.NoError(t, svc.ResetPassword(ctx, ResetPasswordRequest{Token: used, Password: "brand-new"}))
	_, _, err = svc.IssueRecoveryToken(ctx, "ana@obra.com")
	require.NoError(t, err)

	n, err := repo.PurgeRecoveryTokens(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.PurgeRecoveryTokens(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRecoveryToken_Expired(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)

	raw, _, err := svc.IssueRecoveryToken(ctx, "ana@obra.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	err = svc.ResetPassword(ctx, ResetPasswordRequest{Token: raw, Password: "brand-new"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestIssueRecoveryToken_UnknownEmail(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, _, err := svc.IssueRecoveryToken(context.Background(), "ghost@obra.com")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSubscription_DaysRemaining(t *testing.T) {
	svc, repo, _ := setupTestService(t)
	ctx := context.Background()

	p, err := svc.SignUp(ctx, SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)

	expires := time.Now().Add(10*24*time.Hour + time.Hour)
	require.NoError(t, repo.UpdateFields(ctx, p.ID, map[string]any{
		"subscription_status":     SubscriptionActive,
		"subscription_expires_at": expires,
	}))

	sub, err := svc.Subscription(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, SubscriptionActive, sub.Status)
	assert.Equal(t, 10, sub.DaysRemaining)
	assert.Len(t, sub.Plans, 3)
}

func TestPrincipalStore(t *testing.T) {
	svc, repo, _ := setupTestService(t)
	ctx := context.Background()

	p, err := svc.SignUp(ctx, SignUpRequest{Name: "Ana", Email: "ana@obra.com", Password: "secret1"})
	require.NoError(t, err)

	store := NewPrincipalStore(repo)
	principal, err := store.LoadPrincipal(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", principal.Role)
	assert.Equal(t, 1, principal.TokenVersion)

	require.NoError(t, store.RevokeSessions(ctx, p.ID))
	principal, err = store.LoadPrincipal(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, principal.TokenVersion)

	_, err = store.LoadPrincipal(ctx, "missing")
	assert.Error(t, err)
}
