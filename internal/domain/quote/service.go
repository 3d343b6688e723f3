package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"obrago/internal/pkg/date"
	"obrago/internal/scope"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NextNumber suggests a quote number from the last six digits of the
// current unix time in milliseconds.
func (s *Service) NextNumber() string {
	ms := fmt.Sprintf("%d", s.now().UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "ORC-" + ms
}

func (s *Service) List(ctx context.Context, ownerID string, f ListFilter) ([]Quote, error) {
	filters := []scope.Filter{scope.Between("validade", f.ValidFrom.Time, f.ValidUntil.Time)}
	if f.Status != "" {
		st, err := StatusMachine.Parse(f.Status)
		if err != nil {
			return nil, err
		}
		filters = append(filters, scope.Eq("status", st))
	}
	return s.repo.List(ctx, ownerID, scope.Query{
		Search:  f.Search,
		Filters: filters,
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Quote, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// Create stores a draft. A missing number is generated.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Quote, error) {
	today := date.Of(s.now())
	if err := validate(req, today); err != nil {
		return nil, err
	}
	numero := strings.TrimSpace(req.Numero)
	if numero == "" {
		numero = s.NextNumber()
	}

	q := &Quote{
		Numero:      numero,
		Cliente:     strings.TrimSpace(req.Cliente),
		Obra:        strings.TrimSpace(req.Obra),
		Valor:       req.Valor.Round(2),
		Validade:    req.Validade,
		DataCriacao: today,
		Status:      StatusMachine.Initial(),
	}
	if err := s.repo.Create(ctx, ownerID, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Quote, error) {
	current, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusAccepted {
		return nil, ErrQuoteLocked
	}
	if err := validate(req.CreateRequest, current.DataCriacao); err != nil {
		return nil, err
	}
	status := current.Status
	if req.Status != "" {
		if status, err = StatusMachine.Move(current.Status, Status(req.Status)); err != nil {
			return nil, err
		}
	}
	numero := strings.TrimSpace(req.Numero)
	if numero == "" {
		numero = current.Numero
	}

	return s.repo.Update(ctx, ownerID, id, req.Version, map[string]any{
		"numero":   numero,
		"cliente":  strings.TrimSpace(req.Cliente),
		"obra":     strings.TrimSpace(req.Obra),
		"valor":    req.Valor.Round(2),
		"validade": req.Validade,
		"status":   status,
	})
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id string, req StatusRequest) (*Quote, error) {
	current, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	status, err := StatusMachine.Move(current.Status, Status(req.Status))
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, ownerID, id, req.Version, map[string]any{"status": status})
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func validate(req CreateRequest, created date.Date) error {
	if !req.Valor.IsPositive() {
		return ErrInvalidAmount
	}
	if req.Validade.IsZero() {
		return ErrMissingValidity
	}
	if req.Validade.Before(created) {
		return ErrExpiredValidity
	}
	return nil
}
