package schedule

import (
	"context"
	"strings"
	"time"

	"obrago/internal/scope"
	"obrago/internal/workflow"
)

// Service manages schedule steps. Step changes never touch the project row
// they belong to; project progress is edited on the project itself.
type Service struct {
	repo     Repository
	projects scope.Checker
}

func NewService(repo Repository, projects scope.Checker) *Service {
	return &Service{repo: repo, projects: projects}
}

func (s *Service) List(ctx context.Context, ownerID string, f ListFilter) ([]Step, error) {
	filters := []scope.Filter{scope.Eq("obra_id", f.ObraID)}
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
		Order:   "data_inicio ASC, created_at ASC",
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Step, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Step, error) {
	if err := s.validate(ctx, ownerID, req); err != nil {
		return nil, err
	}
	status := workflow.WorkPending
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

	st := &Step{
		Nome:        strings.TrimSpace(req.Nome),
		ObraID:      scope.Ref(req.ObraID),
		DataInicio:  req.DataInicio,
		DataFim:     req.DataFim,
		Responsavel: strings.TrimSpace(req.Responsavel),
		Status:      status,
		Progresso:   progress,
	}
	if err := s.repo.Create(ctx, ownerID, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Step, error) {
	if err := s.validate(ctx, ownerID, req.CreateRequest); err != nil {
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
		"nome":        strings.TrimSpace(req.Nome),
		"obra_id":     scope.Ref(req.ObraID),
		"data_inicio": req.DataInicio,
		"data_fim":    req.DataFim,
		"responsavel": strings.TrimSpace(req.Responsavel),
		"status":      status,
		"progresso":   progress,
	})
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id string, req StatusRequest) (*Step, error) {
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

func (s *Service) UpdateProgress(ctx context.Context, ownerID, id string, req ProgressRequest) (*Step, error) {
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

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// Upcoming lists unfinished steps ending on or after from, soonest first.
func (s *Service) Upcoming(ctx context.Context, ownerID string, from time.Time, limit int) ([]Step, error) {
	return s.repo.List(ctx, ownerID, scope.Query{
		Filters: []scope.Filter{
			scope.Not("status", workflow.WorkDone),
			scope.Between("data_fim", from, time.Time{}),
		},
		Order: "data_fim ASC",
		Limit: limit,
	})
}

func (s *Service) CountByProject(ctx context.Context, ownerID, projectID string) (int64, error) {
	return s.repo.Count(ctx, ownerID, scope.Query{Filters: []scope.Filter{scope.Eq("obra_id", projectID)}})
}

func (s *Service) validate(ctx context.Context, ownerID string, req CreateRequest) error {
	if req.DataInicio.IsZero() || req.DataFim.IsZero() {
		return ErrMissingDates
	}
	if req.DataFim.Before(req.DataInicio) {
		return ErrDateOrder
	}
	return scope.CheckReference(ctx, s.projects, ownerID, scope.Ref(req.ObraID))
}
