package finance

import (
	"github.com/shopspring/decimal"

	"obrago/internal/pkg/date"
	"obrago/internal/scope"
)

type Kind string

const (
	KindIncome  Kind = "receita"
	KindExpense Kind = "despesa"
)

// Categories lists the closed category set of each kind.
var Categories = map[Kind][]string{
	KindIncome:  {"Recebimento de Cliente", "Pagamento Obra", "Outros Recebimentos"},
	KindExpense: {"Materiais", "Mão de Obra", "Equipamentos", "Outras Despesas"},
}

func (k Kind) Valid() bool {
	_, ok := Categories[k]
	return ok
}

// Allows reports whether category belongs to kind.
func (k Kind) Allows(category string) bool {
	for _, c := range Categories[k] {
		if c == category {
			return true
		}
	}
	return false
}

// Transaction is a single income or expense entry (transacao).
type Transaction struct {
	scope.Base
	Descricao string          `gorm:"column:descricao;not null" json:"descricao"`
	Valor     decimal.Decimal `gorm:"column:valor;type:numeric(14,2);not null" json:"valor"`
	Tipo      Kind            `gorm:"column:tipo;not null;index" json:"tipo"`
	Categoria string          `gorm:"column:categoria;not null" json:"categoria"`
	Data      date.Date       `gorm:"column:data;type:date;not null;index" json:"data"`
	ObraID    *string         `gorm:"column:obra_id;type:varchar(36);index" json:"obra_id"`
}

func (Transaction) TableName() string { return "transacoes" }
