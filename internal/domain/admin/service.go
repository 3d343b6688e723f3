package admin

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"obrago/internal/domain/account"
	"obrago/internal/metrics"
	"obrago/internal/pkg/logger"
)

// ProfileStore is the subset of the account repository the admin workflow writes through.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*account.Profile, error)
	UpdateFields(ctx context.Context, id string, changes map[string]any) error
}

// StateNotifier pushes the new gate state of a profile to its open sessions.
type StateNotifier interface {
	Notify(ctx context.Context, userID string)
}

// ApprovalMailer tells a user that their account is active.
type ApprovalMailer interface {
	SendApproval(ctx context.Context, email, name string) (string, error)
}

type Service struct {
	profiles ProfileStore
	repo     Repository
	notifier StateNotifier
	mailer   ApprovalMailer
	now      func() time.Time
}

func NewService(profiles ProfileStore, repo Repository, notifier StateNotifier, mailer ApprovalMailer) *Service {
	return &Service{
		profiles: profiles,
		repo:     repo,
		notifier: notifier,
		mailer:   mailer,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context, f ListFilter) (*ListResponse, error) {
	role, ok := f.Status.role()
	if !ok {
		return nil, ErrInvalidFilter
	}
	profiles, total, err := s.repo.List(ctx, role, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []account.Profile{}
	}
	return &ListResponse{Profiles: profiles, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// Approve activates a profile and starts a one-month subscription. The
// approval email is sent in the background and its failure is only logged.
func (s *Service) Approve(ctx context.Context, adminID, profileID string) (*account.Profile, error) {
	now := s.now()
	p, err := s.apply(ctx, "approve", adminID, profileID, map[string]any{
		"role":                    account.RoleUser,
		"approved_by":             adminID,
		"approved_at":             now,
		"subscription_status":     account.SubscriptionActive,
		"subscription_expires_at": now.AddDate(0, 1, 0),
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go s.sendApproval(context.WithoutCancel(ctx), p.Email, p.Name)
	}
	return p, nil
}

// Block bars a profile and revokes every token it holds. Role and token
// version change in the same statement.
func (s *Service) Block(ctx context.Context, adminID, profileID string) (*account.Profile, error) {
	return s.apply(ctx, "block", adminID, profileID, map[string]any{
		"role":          account.RoleBlocked,
		"token_version": gorm.Expr("token_version + 1"),
	})
}

func (s *Service) Unblock(ctx context.Context, adminID, profileID string) (*account.Profile, error) {
	return s.apply(ctx, "unblock", adminID, profileID, map[string]any{"role": account.RoleUser})
}

func (s *Service) Promote(ctx context.Context, adminID, profileID string) (*account.Profile, error) {
	return s.apply(ctx, "promote", adminID, profileID, map[string]any{"role": account.RoleAdmin})
}

// SetSubscription changes the subscription status. Activating stamps an
// expiry one calendar month from now.
func (s *Service) SetSubscription(ctx context.Context, adminID, profileID string, status account.SubscriptionStatus) (*account.Profile, error) {
	if !status.Valid() {
		return nil, ErrInvalidSubscription
	}
	changes := map[string]any{"subscription_status": status}
	if status == account.SubscriptionActive {
		changes["subscription_expires_at"] = s.now().AddDate(0, 1, 0)
	}
	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateFields(ctx, profileID, changes); err != nil {
		return nil, err
	}
	metrics.AdminAction("subscription_" + string(status))
	logger.FromContext(ctx).Info("subscription changed",
		zap.String("admin_id", adminID),
		zap.String("profile_id", profileID),
		zap.String("status", string(status)),
	)
	return s.profiles.GetByID(ctx, profileID)
}

// ExpireSubscriptions marks lapsed subscriptions overdue.
func (s *Service) ExpireSubscriptions(ctx context.Context) (int64, error) {
	return s.repo.ExpireSubscriptions(ctx, s.now())
}

func (s *Service) apply(ctx context.Context, action, adminID, profileID string, changes map[string]any) (*account.Profile, error) {
	if adminID == profileID {
		return nil, ErrSelfAction
	}
	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateFields(ctx, profileID, changes); err != nil {
		return nil, err
	}

	metrics.AdminAction(action)
	logger.FromContext(ctx).Info("admin action",
		zap.String("action", action),
		zap.String("admin_id", adminID),
		zap.String("profile_id", profileID),
	)
	if s.notifier != nil {
		s.notifier.Notify(ctx, profileID)
	}
	return s.profiles.GetByID(ctx, profileID)
}

func (s *Service) sendApproval(ctx context.Context, email, name string) {
	if _, err := s.mailer.SendApproval(ctx, email, name); err != nil {
		logger.FromContext(ctx).Warn("approval email failed", zap.String("email", email), zap.Error(err))
	}
}
