package project

import (
	"github.com/shopspring/decimal"

	"obrago/internal/pkg/date"
	"obrago/internal/scope"
	"obrago/internal/workflow"
)

// Project is a construction job (obra).
type Project struct {
	scope.Base
	Nome        string          `gorm:"column:nome;not null" json:"nome"`
	Cliente     string          `gorm:"column:cliente;not null" json:"cliente"`
	Endereco    string          `gorm:"column:endereco" json:"endereco"`
	Orcamento   decimal.Decimal `gorm:"column:orcamento;type:numeric(14,2);not null;default:0" json:"orcamento"`
	DataInicio  date.Date       `gorm:"column:data_inicio;type:date" json:"data_inicio"`
	PrevisaoFim date.Date       `gorm:"column:previsao_fim;type:date" json:"previsao_fim"`
	Progresso   int             `gorm:"column:progresso;not null;default:0" json:"progresso"`
	Status      workflow.Work   `gorm:"column:status;not null;index" json:"status"`
}

func (Project) TableName() string { return "obras" }

// Active reports whether the project still counts as running work.
func (p *Project) Active() bool {
	return p.Status != workflow.WorkDone
}
