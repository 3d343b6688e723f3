package notification

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"obrago/internal/domain/account"
	"obrago/internal/metrics"
	"obrago/internal/pkg/logger"
)

const (
	kindApproval = "approval"
	kindReset    = "password_reset"
)

// RecoveryIssuer creates single-use password recovery tokens.
type RecoveryIssuer interface {
	IssueRecoveryToken(ctx context.Context, email string) (string, *account.Profile, error)
	RevokeRecoveryToken(ctx context.Context, raw string) error
}

// Options carries sender addresses and the public site URL. Reset links
// point at the request origin only when it is listed in AllowedOrigins.
type Options struct {
	SiteURL        string
	AllowedOrigins []string
	FromApproval   string
	FromReset      string
}

type Service struct {
	mailer   Mailer
	recovery RecoveryIssuer
	opts     Options
	origins  map[string]struct{}
}

// NewService wires the senders. A nil mailer leaves email unconfigured and
// every send fails with ErrNotConfigured.
func NewService(mailer Mailer, recovery RecoveryIssuer, opts Options) *Service {
	opts.SiteURL = strings.TrimRight(opts.SiteURL, "/")
	origins := make(map[string]struct{}, len(opts.AllowedOrigins)+1)
	for _, o := range append([]string{opts.SiteURL}, opts.AllowedOrigins...) {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins[o] = struct{}{}
		}
	}
	return &Service{mailer: mailer, recovery: recovery, opts: opts, origins: origins}
}

// Configured reports whether a transport is available.
func (s *Service) Configured() bool {
	return s.mailer != nil
}

// SendApproval renders and sends the account approval email.
func (s *Service) SendApproval(ctx context.Context, email, name string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	html, err := render(approvalTemplate, approvalData{Name: name, SiteURL: s.opts.SiteURL})
	if err != nil {
		return "", fmt.Errorf("render approval email: %w", err)
	}

	id, err := s.mailer.Send(ctx, Message{
		From:    s.opts.FromApproval,
		To:      []string{email},
		Subject: approvalSubject,
		HTML:    html,
	})
	metrics.EmailSent(kindApproval, err)
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info("approval email sent", zap.String("email", email), zap.String("email_id", id))
	return id, nil
}

// ResetResult describes the outcome of a reset request. Sent is false when
// the address is unknown; callers must answer identically in that case.
type ResetResult struct {
	Sent    bool
	EmailID string
}

// SendPasswordReset issues a recovery token for email and mails a link to
// origin/auth?mode=reset. Unknown addresses are not mailed. An origin outside
// the allowlist is replaced by the site URL.
func (s *Service) SendPasswordReset(ctx context.Context, email, origin string) (ResetResult, error) {
	if !s.Configured() {
		return ResetResult{}, ErrNotConfigured
	}

	raw, profile, err := s.recovery.IssueRecoveryToken(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			logger.FromContext(ctx).Info("password reset for unknown email")
			return ResetResult{}, nil
		}
		return ResetResult{}, err
	}

	html, err := render(resetTemplate, resetData{Link: ResetLink(s.linkOrigin(ctx, origin), raw)})
	if err != nil {
		s.revoke(ctx, raw)
		return ResetResult{}, fmt.Errorf("render reset email: %w", err)
	}

	id, err := s.mailer.Send(ctx, Message{
		From:    s.opts.FromReset,
		To:      []string{profile.Email},
		Subject: resetSubject,
		HTML:    html,
	})
	metrics.EmailSent(kindReset, err)
	if err != nil {
		s.revoke(ctx, raw)
		return ResetResult{}, err
	}
	return ResetResult{Sent: true, EmailID: id}, nil
}

func (s *Service) linkOrigin(ctx context.Context, origin string) string {
	origin = strings.TrimRight(origin, "/")
	if origin == "" {
		return s.opts.SiteURL
	}
	if _, ok := s.origins[origin]; ok {
		return origin
	}
	logger.FromContext(ctx).Warn("reset origin not allowed, using site url", zap.String("origin", origin))
	return s.opts.SiteURL
}

// revoke burns an undelivered token so it cannot be used later.
func (s *Service) revoke(ctx context.Context, raw string) {
	if err := s.recovery.RevokeRecoveryToken(context.WithoutCancel(ctx), raw); err != nil {
		logger.FromContext(ctx).Error("revoke undelivered recovery token", zap.Error(err))
	}
}

// ResetLink builds the SPA recovery URL for a raw token.
func ResetLink(origin, token string) string {
	return strings.TrimRight(origin, "/") + "/auth?mode=reset&token=" + url.QueryEscape(token)
}
