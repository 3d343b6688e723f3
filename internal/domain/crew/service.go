package crew

import (
	"context"
	"sort"
	"strings"

	"obrago/internal/scope"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, ownerID string, f ListFilter) ([]Member, error) {
	filters := []scope.Filter{
		scope.Eq("funcao", f.Funcao),
		scope.Eq("tipo_remuneracao", f.TipoRemuneracao),
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
		Order:   "nome ASC",
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Member, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Member, error) {
	payType, err := parsePayType(req.TipoRemuneracao)
	if err != nil {
		return nil, err
	}
	if req.ValorRemuneracao.IsNegative() {
		return nil, ErrNegativePayment
	}
	status := StatusMachine.Initial()
	if req.Status != "" {
		if status, err = StatusMachine.Parse(req.Status); err != nil {
			return nil, err
		}
	}

	m := &Member{
		Nome:             strings.TrimSpace(req.Nome),
		Funcao:           strings.TrimSpace(req.Funcao),
		Telefone:         strings.TrimSpace(req.Telefone),
		Email:            optional(req.Email),
		TipoRemuneracao:  payType,
		ValorRemuneracao: req.ValorRemuneracao.Round(2),
		Status:           status,
	}
	if err := s.repo.Create(ctx, ownerID, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Member, error) {
	payType, err := parsePayType(req.TipoRemuneracao)
	if err != nil {
		return nil, err
	}
	if req.ValorRemuneracao.IsNegative() {
		return nil, ErrNegativePayment
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
		"nome":              strings.TrimSpace(req.Nome),
		"funcao":            strings.TrimSpace(req.Funcao),
		"telefone":          strings.TrimSpace(req.Telefone),
		"email":             optional(req.Email),
		"tipo_remuneracao":  payType,
		"valor_remuneracao": req.ValorRemuneracao.Round(2),
		"status":            status,
	})
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id string, req StatusRequest) (*Member, error) {
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

// Options collects the distinct roles and statuses of the owner's crew.
func (s *Service) Options(ctx context.Context, ownerID string) (*Options, error) {
	members, err := s.repo.List(ctx, ownerID, scope.Query{})
	if err != nil {
		return nil, err
	}
	funcoes := map[string]struct{}{}
	statuses := map[string]struct{}{}
	for _, m := range members {
		if m.Funcao != "" {
			funcoes[m.Funcao] = struct{}{}
		}
		statuses[string(m.Status)] = struct{}{}
	}
	return &Options{Funcoes: sortedKeys(funcoes), Status: sortedKeys(statuses)}, nil
}

// CountActive returns active crew and total crew for the dashboard.
func (s *Service) CountActive(ctx context.Context, ownerID string) (active, total int64, err error) {
	total, err = s.repo.Count(ctx, ownerID, scope.Query{})
	if err != nil {
		return 0, 0, err
	}
	active, err = s.repo.Count(ctx, ownerID, scope.Query{Filters: []scope.Filter{scope.Eq("status", StatusActive)}})
	return active, total, err
}

func parsePayType(raw string) (PayType, error) {
	if raw == "" {
		return PayDaily, nil
	}
	p := PayType(raw)
	if !p.Valid() {
		return "", ErrInvalidPayType
	}
	return p, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
