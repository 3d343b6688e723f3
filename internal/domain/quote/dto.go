package quote

import (
	"github.com/shopspring/decimal"

	"obrago/internal/pkg/date"
)

type CreateRequest struct {
	Numero   string          `json:"numero" validate:"max=40"`
	Cliente  string          `json:"cliente" validate:"required,max=200"`
	Obra     string          `json:"obra" validate:"required,max=200"`
	Valor    decimal.Decimal `json:"valor"`
	Validade date.Date       `json:"validade"`
}

type UpdateRequest struct {
	CreateRequest
	Status  string `json:"status"`
	Version int    `json:"version" validate:"required,min=1"`
}

type StatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Version int    `json:"version" validate:"required,min=1"`
}

type ListFilter struct {
	Search     string
	Status     string
	ValidFrom  date.Date
	ValidUntil date.Date
	Limit      int
	Offset     int
}
