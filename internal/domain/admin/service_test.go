package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"obrago/internal/domain/account"
)

type mockMailer struct {
	mock.Mock
	sent chan struct{}
}

func (m *mockMailer) SendApproval(ctx context.Context, email, name string) (string, error) {
	args := m.Called(ctx, email, name)
	defer close(m.sent)
	return args.String(0), args.Error(1)
}

type recordingNotifier struct {
	notified []string
}

func (n *recordingNotifier) Notify(_ context.Context, userID string) {
	n.notified = append(n.notified, userID)
}

var fixedNow = time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)

func setupTestService(t *testing.T) (*Service, account.Repository, *recordingNotifier, *mockMailer) {
	t.Helper()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: fmt.Sprintf("file:admin_%s?mode=memory&cache=shared", t.Name())}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&account.Profile{}))

	profiles := account.NewRepository(db)
	notifier := &recordingNotifier{}
	mailer := &mockMailer{sent: make(chan struct{})}
	svc := NewService(profiles, NewRepository(db), notifier, mailer)
	svc.now = func() time.Time { return fixedNow }
	return svc, profiles, notifier, mailer
}

func createProfile(t *testing.T, repo account.Repository, email string, role account.Role) *account.Profile {
	t.Helper()
	p := &account.Profile{Email: email, Name: email, Role: role, TokenVersion: 1}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestApprove(t *testing.T) {
	svc, repo, notifier, mailer := setupTestService(t)
	ctx := context.Background()

	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)
	p := createProfile(t, repo, "joao@obra.com", account.RolePending)
	mailer.On("SendApproval", mock.Anything, "joao@obra.com", "joao@obra.com").Return("email-1", nil)

	got, err := svc.Approve(ctx, adm.ID, p.ID)
	require.NoError(t, err)

	assert.Equal(t, account.RoleUser, got.Role)
	assert.Equal(t, account.SubscriptionActive, got.SubscriptionStatus)
	require.NotNil(t, got.ApprovedAt)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, adm.ID, *got.ApprovedBy)
	require.NotNil(t, got.SubscriptionExpiresAt)
	assert.True(t, got.SubscriptionExpiresAt.Equal(fixedNow.AddDate(0, 1, 0)))
	assert.Equal(t, []string{p.ID}, notifier.notified)

	select {
	case <-mailer.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("approval email was not sent")
	}
	mailer.AssertExpectations(t)
}

func TestApprove_MailFailureDoesNotFail(t *testing.T) {
	svc, repo, _, mailer := setupTestService(t)

	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)
	p := createProfile(t, repo, "joao@obra.com", account.RolePending)
	mailer.On("SendApproval", mock.Anything, mock.Anything, mock.Anything).Return("", fmt.Errorf("resend down"))

	got, err := svc.Approve(context.Background(), adm.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleUser, got.Role)
	<-mailer.sent
}

func TestApprove_UnknownProfile(t *testing.T) {
	svc, repo, notifier, _ := setupTestService(t)
	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)

	_, err := svc.Approve(context.Background(), adm.ID, "missing")
	assert.ErrorIs(t, err, account.ErrProfileNotFound)
	assert.Empty(t, notifier.notified)
}

func TestBlock_RevokesTokens(t *testing.T) {
	svc, repo, notifier, _ := setupTestService(t)
	ctx := context.Background()

	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)
	p := createProfile(t, repo, "joao@obra.com", account.RoleUser)

	got, err := svc.Block(ctx, adm.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleBlocked, got.Role)
	assert.Equal(t, 2, got.TokenVersion)
	assert.Equal(t, []string{p.ID}, notifier.notified)

	got, err = svc.Unblock(ctx, adm.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleUser, got.Role)
}

type failingProfiles struct {
	account.Repository
}

func (failingProfiles) UpdateFields(context.Context, string, map[string]any) error {
	return errors.New("connection reset")
}

func TestBlock_FailedUpdateKeepsSessions(t *testing.T) {
	_, repo, _, _ := setupTestService(t)
	ctx := context.Background()

	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)
	p := createProfile(t, repo, "joao@obra.com", account.RoleUser)

	notifier := &recordingNotifier{}
	svc := NewService(failingProfiles{repo}, nil, notifier, nil)
	_, err := svc.Block(ctx, adm.ID, p.ID)
	require.Error(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleUser, got.Role)
	assert.Equal(t, 1, got.TokenVersion)
	assert.Empty(t, notifier.notified)
}

func TestSelfActionRejected(t *testing.T) {
	svc, repo, _, _ := setupTestService(t)
	ctx := context.Background()
	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)

	_, err := svc.Block(ctx, adm.ID, adm.ID)
	assert.ErrorIs(t, err, ErrSelfAction)
	_, err = svc.Approve(ctx, adm.ID, adm.ID)
	assert.ErrorIs(t, err, ErrSelfAction)

	got, err := repo.GetByID(ctx, adm.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, got.Role)
	assert.Equal(t, 1, got.TokenVersion)
}

func TestPromote(t *testing.T) {
	svc, repo, _, _ := setupTestService(t)
	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)
	p := createProfile(t, repo, "joao@obra.com", account.RoleUser)

	got, err := svc.Promote(context.Background(), adm.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, got.Role)
}

func TestSetSubscription(t *testing.T) {
	svc, repo, _, _ := setupTestService(t)
	ctx := context.Background()
	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)
	p := createProfile(t, repo, "joao@obra.com", account.RoleUser)

	got, err := svc.SetSubscription(ctx, adm.ID, p.ID, account.SubscriptionActive)
	require.NoError(t, err)
	assert.Equal(t, account.SubscriptionActive, got.SubscriptionStatus)
	require.NotNil(t, got.SubscriptionExpiresAt)
	assert.True(t, got.SubscriptionExpiresAt.Equal(time.Date(2025, time.February, 15, 10, 30, 0, 0, time.UTC)))

	got, err = svc.SetSubscription(ctx, adm.ID, p.ID, account.SubscriptionOverdue)
	require.NoError(t, err)
	assert.Equal(t, account.SubscriptionOverdue, got.SubscriptionStatus)

	_, err = svc.SetSubscription(ctx, adm.ID, p.ID, "trial")
	assert.ErrorIs(t, err, ErrInvalidSubscription)
}

func TestListAndStats(t *testing.T) {
	svc, repo, _, _ := setupTestService(t)
	ctx := context.Background()

	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)
	createProfile(t, repo, "pendente@obra.com", account.RolePending)
	createProfile(t, repo, "bloqueado@obra.com", account.RoleBlocked)
	active := createProfile(t, repo, "maria@obra.com", account.RoleUser)
	_, err := svc.SetSubscription(ctx, adm.ID, active.ID, account.SubscriptionActive)
	require.NoError(t, err)
	late := createProfile(t, repo, "carlos@obra.com", account.RoleUser)
	_, err = svc.SetSubscription(ctx, adm.ID, late.ID, account.SubscriptionOverdue)
	require.NoError(t, err)

	res, err := svc.List(ctx, ListFilter{Status: FilterActive})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = svc.List(ctx, ListFilter{Status: FilterAll, Search: "MARIA"})
	require.NoError(t, err)
	require.Len(t, res.Profiles, 1)
	assert.Equal(t, active.ID, res.Profiles[0].ID)

	_, err = svc.List(ctx, ListFilter{Status: "deleted"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{Total: 5, Pending: 1, Active: 1, Overdue: 1, Blocked: 1, Admins: 1}, st)
}

func TestExpireSubscriptions(t *testing.T) {
	svc, repo, _, _ := setupTestService(t)
	ctx := context.Background()
	adm := createProfile(t, repo, "admin@obra.com", account.RoleAdmin)
	p := createProfile(t, repo, "joao@obra.com", account.RoleUser)

	_, err := svc.SetSubscription(ctx, adm.ID, p.ID, account.SubscriptionActive)
	require.NoError(t, err)

	n, err := svc.ExpireSubscriptions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	svc.now = func() time.Time { return fixedNow.AddDate(0, 2, 0) }
	n, err = svc.ExpireSubscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, account.SubscriptionOverdue, got.SubscriptionStatus)
}
