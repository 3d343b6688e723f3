package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"obrago/internal/domain/finance"
	"obrago/internal/domain/material"
	"obrago/internal/domain/project"
	"obrago/internal/domain/schedule"
	"obrago/internal/pkg/date"
)

const (
	recentProjects = 5
	upcomingSteps  = 5
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

type ProjectReader interface {
	List(ctx context.Context, ownerID string, f project.ListFilter) ([]project.Project, error)
	Counts(ctx context.Context, ownerID string, from, to time.Time) (active, finishing int64, err error)
}

type CrewReader interface {
	CountActive(ctx context.Context, ownerID string) (active, total int64, err error)
}

type FinanceReader interface {
	Summary(ctx context.Context, ownerID string, f finance.ListFilter) (*finance.Summary, error)
}

type MaterialReader interface {
	Pending(ctx context.Context, ownerID string) (*material.PendingSummary, error)
}

type ScheduleReader interface {
	Upcoming(ctx context.Context, ownerID string, from time.Time, limit int) ([]schedule.Step, error)
}

type Service struct {
	projects  ProjectReader
	crew      CrewReader
	finance   FinanceReader
	materials MaterialReader
	schedule  ScheduleReader
	now       func() time.Time
}

func NewService(projects ProjectReader, crew CrewReader, fin FinanceReader, materials MaterialReader, sched ScheduleReader) *Service {
	return &Service{
		projects:  projects,
		crew:      crew,
		finance:   fin,
		materials: materials,
		schedule:  sched,
		now:       time.Now,
	}
}

// Overview runs the independent owner-scoped reads in parallel. The first
// failure cancels the rest.
func (s *Service) Overview(ctx context.Context, ownerID string) (*Overview, error) {
	now := s.now().UTC()
	monthStart, monthEnd := date.MonthRange(now)
	today := date.Of(now)

	out := &Overview{Month: fmt.Sprintf("%s %d", monthNames[now.Month()-1], now.Year())}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.ActiveProjects, out.ProjectsFinishing, err = s.projects.Counts(ctx, ownerID, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		recent, err := s.projects.List(ctx, ownerID, project.ListFilter{Limit: recentProjects})
		out.RecentProjects = recent
		return err
	})
	g.Go(func() error {
		var err error
		out.CrewActive, out.CrewTotal, err = s.crew.CountActive(ctx, ownerID)
		return err
	})
	g.Go(func() error {
		sum, err := s.finance.Summary(ctx, ownerID, finance.ListFilter{
			Tipo:  string(finance.KindIncome),
			Start: date.Of(monthStart),
			End:   date.Of(monthEnd),
		})
		if err != nil {
			return err
		}
		out.MonthlyRevenue = sum.Receitas
		return nil
	})
	g.Go(func() error {
		pending, err := s.materials.Pending(ctx, ownerID)
		if err != nil {
			return err
		}
		out.PendingMaterials = pending.Count
		out.PendingMaterialsValue = pending.Total
		return nil
	})
	g.Go(func() error {
		steps, err := s.schedule.Upcoming(ctx, ownerID, today.Time, upcomingSteps)
		out.UpcomingSteps = steps
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.RecentProjects == nil {
		out.RecentProjects = []project.Project{}
	}
	if out.UpcomingSteps == nil {
		out.UpcomingSteps = []schedule.Step{}
	}
	return out, nil
}
