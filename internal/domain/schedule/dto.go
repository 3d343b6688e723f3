package schedule

import "obrago/internal/pkg/date"

type CreateRequest struct {
	Nome        string    `json:"nome" validate:"required,max=200"`
	ObraID      string    `json:"obra_id" validate:"required"`
	DataInicio  date.Date `json:"data_inicio"`
	DataFim     date.Date `json:"data_fim"`
	Responsavel string    `json:"responsavel" validate:"required,max=200"`
	Status      string    `json:"status"`
	Progresso   int       `json:"progresso"`
}

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
	ObraID string
	Limit  int
	Offset int
}
