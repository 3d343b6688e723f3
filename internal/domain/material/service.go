package material

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"obrago/internal/scope"
)

type Service struct {
	repo     Repository
	projects scope.Checker
}

// NewService needs the project store to validate obra_id.
func NewService(repo Repository, projects scope.Checker) *Service {
	return &Service{repo: repo, projects: projects}
}

func (s *Service) List(ctx context.Context, ownerID string, f ListFilter) ([]Material, error) {
	filters := []scope.Filter{
		scope.Eq("obra_id", f.ObraID),
		scope.Like("fornecedor", f.Fornecedor),
	}
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

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Material, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Material, error) {
	if err := s.validate(ctx, ownerID, req); err != nil {
		return nil, err
	}
	status := StatusMachine.Initial()
	if req.Status != "" {
		var err error
		if status, err = StatusMachine.Parse(req.Status); err != nil {
			return nil, err
		}
	}

	m := &Material{
		Nome:       strings.TrimSpace(req.Nome),
		Quantidade: req.Quantidade,
		Valor:      req.Valor.Round(2),
		Fornecedor: strings.TrimSpace(req.Fornecedor),
		ObraID:     scope.Ref(req.ObraID),
		Status:     status,
	}
	if err := s.repo.Create(ctx, ownerID, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Material, error) {
	if err := s.validate(ctx, ownerID, req.CreateRequest); err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	status := current.Status
	if req.Status != "" {
		if status, err = StatusMachine.Move(current.Status, Status(req.Status)); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, ownerID, id, req.Version, map[string]any{
		"nome":       strings.TrimSpace(req.Nome),
		"quantidade": req.Quantidade,
		"valor":      req.Valor.Round(2),
		"fornecedor": strings.TrimSpace(req.Fornecedor),
		"obra_id":    scope.Ref(req.ObraID),
		"status":     status,
	})
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id string, req StatusRequest) (*Material, error) {
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

func (s *Service) CountByProject(ctx context.Context, ownerID, projectID string) (int64, error) {
	return s.repo.Count(ctx, ownerID, scope.Query{Filters: []scope.Filter{scope.Eq("obra_id", projectID)}})
}

// Pending sums the materials not yet bought.
func (s *Service) Pending(ctx context.Context, ownerID string) (*PendingSummary, error) {
	items, err := s.repo.List(ctx, ownerID, scope.Query{Filters: []scope.Filter{scope.Eq("status", StatusPending)}})
	if err != nil {
		return nil, err
	}
	sum := &PendingSummary{Count: int64(len(items)), Total: decimal.Zero}
	for _, m := range items {
		sum.Total = sum.Total.Add(m.ValorTotal)
	}
	return sum, nil
}

func (s *Service) validate(ctx context.Context, ownerID string, req CreateRequest) error {
	if !req.Quantidade.IsPositive() {
		return ErrInvalidQuantity
	}
	if req.Valor.IsNegative() {
		return ErrNegativeValue
	}
	return scope.CheckReference(ctx, s.projects, ownerID, scope.Ref(req.ObraID))
}
