package schedule

import (
	"obrago/internal/pkg/date"
	"obrago/internal/scope"
	"obrago/internal/workflow"
)

// Step is a planned stage of a project (etapa).
type Step struct {
	scope.Base
	Nome        string        `gorm:"column:nome;not null" json:"nome"`
	ObraID      *string       `gorm:"column:obra_id;type:varchar(36);index" json:"obra_id"`
	DataInicio  date.Date     `gorm:"column:data_inicio;type:date;not null" json:"data_inicio"`
	DataFim     date.Date     `gorm:"column:data_fim;type:date;not null" json:"data_fim"`
	Responsavel string        `gorm:"column:responsavel;not null" json:"responsavel"`
	Status      workflow.Work `gorm:"column:status;not null;index" json:"status"`
	Progresso   int           `gorm:"column:progresso;not null;default:0" json:"progresso"`
}

func (Step) TableName() string { return "etapas" }
