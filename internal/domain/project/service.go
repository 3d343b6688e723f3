package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"obrago/internal/pkg/logger"
	"obrago/internal/scope"
	"obrago/internal/workflow"
)

// ReferenceCounter counts an owner's rows that point at a project.
type ReferenceCounter interface {
	CountByProject(ctx context.Context, ownerID, projectID string) (int64, error)
}

type Service struct {
	repo Repository
	refs []ReferenceCounter
}

func NewService(repo Repository, refs ...ReferenceCounter) *Service {
	return &Service{repo: repo, refs: refs}
}

func (s *Service) List(ctx context.Context, ownerID string, f ListFilter) ([]Project, error) {
	var filters []scope.Filter
	if f.Status != "" {
		st, err := workflow.WorkMachine.Parse(f.Status)
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

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Project, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Project, error) {
	if err := validateFields(req); err != nil {
		return nil, err
	}
	status := workflow.WorkMachine.Initial()
	if req.Status != "" {
		st, err := workflow.WorkMachine.Parse(req.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	progress := 100
	if status != workflow.WorkDone {
		status, progress = workflow.AdvanceWork(status, req.Progresso)
	}

	p := &Project{
		Nome:        strings.TrimSpace(req.Nome),
		Cliente:     strings.TrimSpace(req.Cliente),
		Endereco:    strings.TrimSpace(req.Endereco),
		Orcamento:   req.Orcamento.Round(2),
		DataInicio:  req.DataInicio,
		PrevisaoFim: req.PrevisaoFim,
		Progresso:   progress,
		Status:      status,
	}
	if err := s.repo.Create(ctx, ownerID, p); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("project created", zap.String("project_id", p.ID))
	return p, nil
}

// Update replaces every editable field. A status change must be an allowed
// transition.
func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Project, error) {
	if err := validateFields(req.CreateRequest); err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	status := current.Status
	progress := workflow.ClampProgress(req.Progresso)
	if req.Status != "" && workflow.Work(req.Status) != current.Status {
		status, progress, err = workflow.SetWorkStatus(current.Status, workflow.Work(req.Status), progress)
		if err != nil {
			return nil, err
		}
	} else {
		status, progress = workflow.AdvanceWork(current.Status, progress)
	}

	return s.repo.Update(ctx, ownerID, id, req.Version, map[string]any{
		"nome":         strings.TrimSpace(req.Nome),
		"cliente":      strings.TrimSpace(req.Cliente),
		"endereco":     strings.TrimSpace(req.Endereco),
		"orcamento":    req.Orcamento.Round(2),
		"data_inicio":  req.DataInicio,
		"previsao_fim": req.PrevisaoFim,
		"progresso":    progress,
		"status":       status,
	})
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id string, req StatusRequest) (*Project, error) {
	current, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	status, progress, err := workflow.SetWorkStatus(current.Status, workflow.Work(req.Status), current.Progresso)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, ownerID, id, req.Version, map[string]any{
		"status":    status,
		"progresso": progress,
	})
}

func (s *Service) UpdateProgress(ctx context.Context, ownerID, id string, req ProgressRequest) (*Project, error) {
	current, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	status, progress := workflow.AdvanceWork(current.Status, *req.Progresso)
	return s.repo.Update(ctx, ownerID, id, req.Version, map[string]any{
		"status":    status,
		"progresso": progress,
	})
}

// Delete refuses while schedule steps, materials or transactions still
// point at the project.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.repo.Get(ctx, ownerID, id); err != nil {
		return err
	}
	for _, ref := range s.refs {
		n, err := ref.CountByProject(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %d linked", ErrProjectInUse, n)
		}
	}
	return s.repo.Delete(ctx, ownerID, id)
}

// Counts returns the running projects and how many of them are due to
// finish between from and to.
func (s *Service) Counts(ctx context.Context, ownerID string, from, to time.Time) (active, finishing int64, err error) {
	running := scope.Not("status", workflow.WorkDone)
	active, err = s.repo.Count(ctx, ownerID, scope.Query{Filters: []scope.Filter{running}})
	if err != nil {
		return 0, 0, err
	}
	finishing, err = s.repo.Count(ctx, ownerID, scope.Query{Filters: []scope.Filter{
		running,
		scope.Between("previsao_fim", from, to),
	}})
	return active, finishing, err
}

// Exists validates obra_id references of other resources.
func (s *Service) Exists(ctx context.Context, ownerID, id string) (bool, error) {
	return s.repo.Exists(ctx, ownerID, id)
}

func validateFields(req CreateRequest) error {
	if req.Orcamento.IsNegative() {
		return ErrNegativeBudget
	}
	if !req.DataInicio.IsZero() && !req.PrevisaoFim.IsZero() && req.PrevisaoFim.Before(req.DataInicio) {
		return ErrDateOrder
	}
	return nil
}
