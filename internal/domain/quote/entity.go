package quote

import (
	"github.com/shopspring/decimal"

	"obrago/internal/pkg/date"
	"obrago/internal/scope"
	"obrago/internal/workflow"
)

type Status string

const (
	StatusDraft    Status = "Rascunho"
	StatusSent     Status = "Enviado"
	StatusAccepted Status = "Aceito"
	StatusRejected Status = "Recusado"
)

// StatusMachine: an accepted quote is final.
var StatusMachine = workflow.New(StatusDraft, map[Status][]Status{
	StatusDraft:    {StatusSent},
	StatusSent:     {StatusAccepted, StatusRejected, StatusDraft},
	StatusRejected: {StatusDraft},
	StatusAccepted: {},
})

// Quote is a price proposal sent to a client (orcamento).
type Quote struct {
	scope.Base
	Numero      string          `gorm:"column:numero;not null;index" json:"numero"`
	Cliente     string          `gorm:"column:cliente;not null" json:"cliente"`
	Obra        string          `gorm:"column:obra;not null" json:"obra"`
	Valor       decimal.Decimal `gorm:"column:valor;type:numeric(14,2);not null" json:"valor"`
	Validade    date.Date       `gorm:"column:validade;type:date;not null" json:"validade"`
	DataCriacao date.Date       `gorm:"column:data_criacao;type:date;not null" json:"data_criacao"`
	Status      Status          `gorm:"column:status;not null;index" json:"status"`
}

func (Quote) TableName() string { return "orcamentos" }
