package finance

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"obrago/internal/pkg/date"
	"obrago/internal/scope"
)

const (
	defaultChartMonths = 5
	maxChartMonths     = 24
)

var monthLabels = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

type Service struct {
	repo     Repository
	projects scope.Checker
	now      func() time.Time
}

func NewService(repo Repository, projects scope.Checker) *Service {
	return &Service{repo: repo, projects: projects, now: time.Now}
}

func (s *Service) List(ctx context.Context, ownerID string, f ListFilter) ([]Transaction, error) {
	q, err := s.query(f)
	if err != nil {
		return nil, err
	}
	q.Limit, q.Offset = f.Limit, f.Offset
	return s.repo.List(ctx, ownerID, q)
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Transaction, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Transaction, error) {
	kind, err := s.validate(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	day := req.Data
	if day.IsZero() {
		day = date.Of(s.now())
	}

	t := &Transaction{
		Descricao: strings.TrimSpace(req.Descricao),
		Valor:     req.Valor.Round(2),
		Tipo:      kind,
		Categoria: req.Categoria,
		Data:      day,
		ObraID:    scope.Ref(req.ObraID),
	}
	if err := s.repo.Create(ctx, ownerID, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Transaction, error) {
	kind, err := s.validate(ctx, ownerID, req.CreateRequest)
	if err != nil {
		return nil, err
	}
	changes := map[string]any{
		"descricao": strings.TrimSpace(req.Descricao),
		"valor":     req.Valor.Round(2),
		"tipo":      kind,
		"categoria": req.Categoria,
		"obra_id":   scope.Ref(req.ObraID),
	}
	if !req.Data.IsZero() {
		changes["data"] = req.Data
	}
	return s.repo.Update(ctx, ownerID, id, req.Version, changes)
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *Service) CountByProject(ctx context.Context, ownerID, projectID string) (int64, error) {
	return s.repo.Count(ctx, ownerID, scope.Query{Filters: []scope.Filter{scope.Eq("obra_id", projectID)}})
}

// Summary totals income and expenses over the filtered set.
func (s *Service) Summary(ctx context.Context, ownerID string, f ListFilter) (*Summary, error) {
	q, err := s.query(f)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}
	return summarize(rows), nil
}

// Chart returns the last months of income and expenses, oldest first, and
// the expense split by category over the same window.
func (s *Service) Chart(ctx context.Context, ownerID string, months int) (*Chart, error) {
	if months <= 0 {
		months = defaultChartMonths
	}
	if months > maxChartMonths {
		months = maxChartMonths
	}

	now := s.now().UTC()
	current, _ := date.MonthRange(now)
	first := current.AddDate(0, -(months - 1), 0)
	_, last := date.MonthRange(now)

	rows, err := s.repo.List(ctx, ownerID, scope.Query{
		Filters: []scope.Filter{scope.Between("data", first, last)},
		Order:   "data ASC",
	})
	if err != nil {
		return nil, err
	}

	points := make([]MonthPoint, months)
	index := make(map[string]int, months)
	for i := range points {
		m := first.AddDate(0, i, 0)
		points[i] = MonthPoint{
			Month:   monthLabels[m.Month()-1],
			Year:    m.Year(),
			Receita: decimal.Zero,
			Gastos:  decimal.Zero,
			Lucro:   decimal.Zero,
		}
		index[m.Format("2006-01")] = i
	}

	byCategory := map[string]decimal.Decimal{}
	expenses := decimal.Zero
	for _, t := range rows {
		i, ok := index[t.Data.Format("2006-01")]
		if !ok {
			continue
		}
		switch t.Tipo {
		case KindIncome:
			points[i].Receita = points[i].Receita.Add(t.Valor)
		case KindExpense:
			points[i].Gastos = points[i].Gastos.Add(t.Valor)
			byCategory[t.Categoria] = byCategory[t.Categoria].Add(t.Valor)
			expenses = expenses.Add(t.Valor)
		}
	}
	for i := range points {
		points[i].Lucro = points[i].Receita.Sub(points[i].Gastos)
	}

	return &Chart{Monthly: points, Expenses: shares(byCategory, expenses)}, nil
}

func (s *Service) query(f ListFilter) (scope.Query, error) {
	if f.Tipo != "" && !Kind(f.Tipo).Valid() {
		return scope.Query{}, ErrInvalidKind
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return scope.Query{}, ErrInvalidRange
	}
	return scope.Query{
		Search: f.Search,
		Filters: []scope.Filter{
			scope.Eq("tipo", f.Tipo),
			scope.Eq("categoria", f.Categoria),
			scope.Eq("obra_id", f.ObraID),
			scope.Between("data", f.Start.Time, f.End.Time),
		},
		Order: "data DESC, created_at DESC",
	}, nil
}

func (s *Service) validate(ctx context.Context, ownerID string, req CreateRequest) (Kind, error) {
	kind := Kind(req.Tipo)
	if !kind.Valid() {
		return "", ErrInvalidKind
	}
	if !kind.Allows(req.Categoria) {
		return "", ErrInvalidCategory
	}
	if !req.Valor.IsPositive() {
		return "", ErrInvalidAmount
	}
	if err := scope.CheckReference(ctx, s.projects, ownerID, scope.Ref(req.ObraID)); err != nil {
		return "", err
	}
	return kind, nil
}

func summarize(rows []Transaction) *Summary {
	sum := &Summary{Receitas: decimal.Zero, Despesas: decimal.Zero, Count: len(rows)}
	for _, t := range rows {
		switch t.Tipo {
		case KindIncome:
			sum.Receitas = sum.Receitas.Add(t.Valor)
		case KindExpense:
			sum.Despesas = sum.Despesas.Add(t.Valor)
		}
	}
	sum.Saldo = sum.Receitas.Sub(sum.Despesas)
	return sum
}

func shares(byCategory map[string]decimal.Decimal, total decimal.Decimal) []CategoryShare {
	out := make([]CategoryShare, 0, len(byCategory))
	if total.IsZero() {
		return out
	}
	hundred := decimal.NewFromInt(100)
	for name, v := range byCategory {
		out = append(out, CategoryShare{
			Name:       name,
			Total:      v,
			Percentage: v.Mul(hundred).Div(total).Round(1),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
