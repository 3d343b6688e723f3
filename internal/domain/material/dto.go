package material

import "github.com/shopspring/decimal"

type CreateRequest struct {
	Nome       string          `json:"nome" validate:"required,max=200"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Valor      decimal.Decimal `json:"valor"`
	Fornecedor string          `json:"fornecedor" validate:"required,max=200"`
	ObraID     string          `json:"obra_id"`
	Status     string          `json:"status"`
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
	Search     string
	Status     string
	ObraID     string
	Fornecedor string
	Limit      int
	Offset     int
}

// PendingSummary is what still has to be bought.
type PendingSummary struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}
