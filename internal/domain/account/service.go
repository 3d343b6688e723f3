package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"obrago/internal/pkg/logger"
	"obrago/internal/session"
)

type tokenIssuer interface {
	GenerateToken(userID string, role string, tokenVersion int) (string, error)
	TTL() time.Duration
}

// StateNotifier receives session changes caused by account actions.
type StateNotifier interface {
	SignOut(ctx context.Context, userID string)
}

// Service contains the account lifecycle: sign-up, login, logout, profile
// edits and password recovery.
type Service struct {
	repo           Repository
	jwt            tokenIssuer
	notifier       StateNotifier
	recoveryPepper string
	recoveryTTL    time.Duration
	now            func() time.Time
}

func NewService(repo Repository, jwt tokenIssuer, notifier StateNotifier, recoveryPepper string, recoveryTTL time.Duration) *Service {
	return &Service{
		repo:           repo,
		jwt:            jwt,
		notifier:       notifier,
		recoveryPepper: recoveryPepper,
		recoveryTTL:    recoveryTTL,
		now:            time.Now,
	}
}

// SignUp creates a pending profile.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*Profile, error) {
	email := normalizeEmail(req.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		Role:         RolePending,
		TokenVersion: 1,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("profile signed up", zap.String("user_id", p.ID))
	return p, nil
}

// Login checks credentials and issues an access token. Pending profiles get
// a token too; the gate keeps them on the approval notice.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	p, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if p.Role == RoleBlocked {
		return nil, ErrAccountBlocked
	}

	token, err := s.jwt.GenerateToken(p.ID, string(p.Role), p.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwt.TTL().Seconds()),
		Profile:     p,
		State:       string(session.Resolve(ToPrincipal(p)).State),
	}, nil
}

// Logout revokes every token of the profile.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.repo.BumpTokenVersion(ctx, userID); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.SignOut(ctx, userID)
	}
	return nil
}

func (s *Service) Me(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*Profile, error) {
	if err := s.repo.UpdateFields(ctx, userID, map[string]any{"name": strings.TrimSpace(req.Name)}); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

// Subscription returns the caller's subscription and the pricing table.
func (s *Service) Subscription(ctx context.Context, userID string) (*SubscriptionResponse, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &SubscriptionResponse{
		Status:        p.SubscriptionStatus,
		ExpiresAt:     p.SubscriptionExpiresAt,
		DaysRemaining: daysRemaining(p.SubscriptionExpiresAt, s.now()),
		Plans:         Plans(),
	}
	return resp, nil
}

// IssueRecoveryToken looks a profile up by email and stores a fresh reset
// token for it. ErrProfileNotFound is returned for unknown addresses and
// callers must not reveal it.
func (s *Service) IssueRecoveryToken(ctx context.Context, email string) (string, *Profile, error) {
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	raw, hash, err := generateRecoveryToken(s.recoveryPepper)
	if err != nil {
		return "", nil, err
	}
	if err := s.repo.CreateRecoveryToken(ctx, &RecoveryToken{
		UserID:    p.ID,
		TokenHash: hash,
		ExpiresAt: s.now().Add(s.recoveryTTL),
	}); err != nil {
		return "", nil, err
	}
	return raw, p, nil
}

// RevokeRecoveryToken burns a token that was never delivered.
func (s *Service) RevokeRecoveryToken(ctx context.Context, raw string) error {
	_, err := s.repo.ConsumeRecoveryToken(ctx, hashToken(raw, s.recoveryPepper), s.now())
	if errors.Is(err, ErrInvalidResetToken) {
		return nil
	}
	return err
}

// ResetPassword consumes a recovery token and sets a new password. Every
// outstanding access token is revoked.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	tok, err := s.repo.ConsumeRecoveryToken(ctx, hashToken(req.Token, s.recoveryPepper), s.now())
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateFields(ctx, tok.UserID, map[string]any{"password_hash": string(hash)}); err != nil {
		return err
	}
	return s.Logout(ctx, tok.UserID)
}

func generateRecoveryToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashToken(raw, pepper), nil
}

func hashToken(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}

func daysRemaining(expiresAt *time.Time, now time.Time) int {
	if expiresAt == nil {
		return -1
	}
	remaining := expiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Hours() / 24)
}
