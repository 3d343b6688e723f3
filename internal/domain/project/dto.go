package project

import (
	"github.com/shopspring/decimal"

	"obrago/internal/pkg/date"
)

type CreateRequest struct {
	Nome        string          `json:"nome" validate:"required,max=200"`
	Cliente     string          `json:"cliente" validate:"required,max=200"`
	Endereco    string          `json:"endereco" validate:"max=500"`
	Orcamento   decimal.Decimal `json:"orcamento"`
	DataInicio  date.Date       `json:"data_inicio"`
	PrevisaoFim date.Date       `json:"previsao_fim"`
	Progresso   int             `json:"progresso"`
	Status      string          `json:"status"`
}

// UpdateRequest is a full edit. Version must match the stored row.
type UpdateRequest struct {
	CreateRequest
	Version int `json:"version" validate:"required,min=1"`
}

type StatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Version int    `json:"version" validate:"required,min=1"`
}

type ProgressRequest struct {
	Progresso *int `json:"progresso" validate:"required"`
	Version   int  `json:"version" validate:"required,min=1"`
}

type ListFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}
