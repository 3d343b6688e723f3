package crew

import "github.com/shopspring/decimal"

type CreateRequest struct {
	Nome             string          `json:"nome" validate:"required,max=200"`
	Funcao           string          `json:"funcao" validate:"required,max=100"`
	Telefone         string          `json:"telefone" validate:"required,max=30"`
	Email            string          `json:"email" validate:"omitempty,email"`
	TipoRemuneracao  string          `json:"tipo_remuneracao"`
	ValorRemuneracao decimal.Decimal `json:"valor_remuneracao"`
	Status           string          `json:"status"`
}

type UpdateRequest struct {
	CreateRequest
	Version int `json:"version" validate:"required,min=1"`
}

type StatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Version int    `json:"version" validate:"required,min=1"`
}

type ListFilter struct {
	Search          string
	Status          string
	Funcao          string
	TipoRemuneracao string
	Limit           int
	Offset          int
}

// Options are the distinct values used by the crew filters.
type Options struct {
	Funcoes []string `json:"funcoes"`
	Status  []string `json:"status"`
}
