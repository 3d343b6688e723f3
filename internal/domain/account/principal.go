package account

import (
	"context"
	"errors"

	"obrago/internal/session"
)

// PrincipalStore adapts the profile repository to the session gate.
type PrincipalStore struct {
	repo Repository
}

func NewPrincipalStore(repo Repository) *PrincipalStore {
	return &PrincipalStore{repo: repo}
}

func (s *PrincipalStore) LoadPrincipal(ctx context.Context, id string) (*session.Principal, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, session.ErrUnknownPrincipal
		}
		return nil, err
	}
	return ToPrincipal(p), nil
}

func (s *PrincipalStore) RevokeSessions(ctx context.Context, id string) error {
	return s.repo.BumpTokenVersion(ctx, id)
}

// ToPrincipal projects a profile onto the gate's view of it.
func ToPrincipal(p *Profile) *session.Principal {
	return &session.Principal{
		ID:           p.ID,
		Email:        p.Email,
		Name:         p.Name,
		Role:         string(p.Role),
		TokenVersion: p.TokenVersion,
	}
}
