package material

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"obrago/internal/scope"
	"obrago/internal/workflow"
)

type Status string

const (
	StatusPending   Status = "Pendente"
	StatusBought    Status = "Comprado"
	StatusInStock   Status = "Em Estoque"
	StatusExhausted Status = "Esgotado"
)

var StatusMachine = workflow.New(StatusPending, map[Status][]Status{
	StatusPending:   {StatusBought},
	StatusBought:    {StatusInStock, StatusPending},
	StatusInStock:   {StatusExhausted},
	StatusExhausted: {StatusPending, StatusBought},
})

// Material is a purchase line, optionally tied to a project.
type Material struct {
	scope.Base
	Nome       string          `gorm:"column:nome;not null" json:"nome"`
	Quantidade decimal.Decimal `gorm:"column:quantidade;type:numeric(14,3);not null" json:"quantidade"`
	Valor      decimal.Decimal `gorm:"column:valor;type:numeric(14,2);not null" json:"valor"`
	Fornecedor string          `gorm:"column:fornecedor;not null" json:"fornecedor"`
	ObraID     *string         `gorm:"column:obra_id;type:varchar(36);index" json:"obra_id"`
	Status     Status          `gorm:"column:status;not null;index" json:"status"`
	ValorTotal decimal.Decimal `gorm:"-" json:"valor_total"`
}

func (Material) TableName() string { return "materiais" }

func (m *Material) computeTotal() {
	m.ValorTotal = m.Quantidade.Mul(m.Valor).Round(2)
}

func (m *Material) AfterFind(*gorm.DB) error {
	m.computeTotal()
	return nil
}

func (m *Material) AfterSave(*gorm.DB) error {
	m.computeTotal()
	return nil
}
