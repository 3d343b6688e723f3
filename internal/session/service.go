package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"obrago/internal/pkg/logger"
)

// Store loads principals and revokes their sessions.
type Store interface {
	LoadPrincipal(ctx context.Context, id string) (*Principal, error)
	RevokeSessions(ctx context.Context, id string) error
}

// Service is the single owner of session state. Both the per-request gate
// and the event stream resolve through it.
type Service struct {
	store Store
	hub   *Hub
}

func NewService(store Store) *Service {
	s := &Service{store: store}
	s.hub = newHub(s)
	return s
}

// Hub returns the event hub fed by this service.
func (s *Service) Hub() *Hub { return s.hub }

// Check resolves the caller behind a validated token. A blocked caller is
// signed out as a side effect. A store failure is returned as an error so the
// caller can deny access.
func (s *Service) Check(ctx context.Context, userID string, tokenVersion int) (Decision, *Principal, error) {
	p, err := s.store.LoadPrincipal(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUnknownPrincipal) {
			return signedOut(ReasonSessionExpired, ""), nil, nil
		}
		return Decision{}, nil, fmt.Errorf("load principal: %w", err)
	}

	d := Resolve(p)
	if d.State == StateBlocked {
		if p.TokenVersion == tokenVersion {
			if err := s.store.RevokeSessions(ctx, p.ID); err != nil {
				return Decision{}, nil, fmt.Errorf("revoke sessions: %w", err)
			}
			logger.FromContext(ctx).Info("blocked profile signed out", zap.String("user_id", p.ID))
			s.hub.Notify(ctx, p.ID)
		}
		return signedOut(ReasonBlocked, MessageBlocked), p, nil
	}

	if p.TokenVersion != tokenVersion {
		return signedOut(ReasonSessionExpired, ""), p, nil
	}
	return d, p, nil
}

// Current resolves the state of a profile without a token, as the event
// stream does after an admin action.
func (s *Service) Current(ctx context.Context, userID string) (Decision, error) {
	p, err := s.store.LoadPrincipal(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUnknownPrincipal) {
			return signedOut(ReasonSessionExpired, ""), nil
		}
		return Decision{}, err
	}
	return Resolve(p), nil
}
