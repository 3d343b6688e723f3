package finance

import (
	"github.com/shopspring/decimal"

	"obrago/internal/pkg/date"
)

type CreateRequest struct {
	Descricao string          `json:"descricao" validate:"required,max=300"`
	Valor     decimal.Decimal `json:"valor"`
	Tipo      string          `json:"tipo" validate:"required"`
	Categoria string          `json:"categoria" validate:"required"`
	Data      date.Date       `json:"data"`
	ObraID    string          `json:"obra_id"`
}

type UpdateRequest struct {
	CreateRequest
	Version int `json:"version" validate:"required,min=1"`
}

type ListFilter struct {
	Search    string
	Tipo      string
	Categoria string
	ObraID    string
	Start     date.Date
	End       date.Date
	Limit     int
	Offset    int
}

// Summary totals a set of transactions.
type Summary struct {
	Receitas decimal.Decimal `json:"receitas"`
	Despesas decimal.Decimal `json:"despesas"`
	Saldo    decimal.Decimal `json:"saldo"`
	Count    int             `json:"count"`
}

// MonthPoint is one bar of the income vs. expense chart.
type MonthPoint struct {
	Month   string          `json:"month"`
	Year    int             `json:"year"`
	Receita decimal.Decimal `json:"receita"`
	Gastos  decimal.Decimal `json:"gastos"`
	Lucro   decimal.Decimal `json:"lucro"`
}

// CategoryShare is one slice of the expense split.
type CategoryShare struct {
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"value"`
}

type Chart struct {
	Monthly  []MonthPoint    `json:"monthly"`
	Expenses []CategoryShare `json:"expenses"`
}

// CategoriesResponse is the closed category list per tipo.
type CategoriesResponse map[Kind][]string
