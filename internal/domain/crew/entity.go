package crew

import (
	"github.com/shopspring/decimal"

	"obrago/internal/scope"
	"obrago/internal/workflow"
)

type Status string

const (
	StatusActive   Status = "Ativo"
	StatusVacation Status = "Férias"
	StatusInactive Status = "Inativo"
)

// StatusMachine lets a crew member move between any two statuses.
var StatusMachine = workflow.New(StatusActive, map[Status][]Status{
	StatusActive:   {StatusVacation, StatusInactive},
	StatusVacation: {StatusActive, StatusInactive},
	StatusInactive: {StatusActive, StatusVacation},
})

// PayType is how a crew member is paid.
type PayType string

const (
	PayDaily  PayType = "diaria"
	PaySalary PayType = "salario"
)

func (p PayType) Valid() bool {
	return p == PayDaily || p == PaySalary
}

// Member is a crew member (funcionario).
type Member struct {
	scope.Base
	Nome             string          `gorm:"column:nome;not null" json:"nome"`
	Funcao           string          `gorm:"column:funcao;not null" json:"funcao"`
	Telefone         string          `gorm:"column:telefone;not null" json:"telefone"`
	Email            *string         `gorm:"column:email" json:"email"`
	TipoRemuneracao  PayType         `gorm:"column:tipo_remuneracao;not null;default:diaria" json:"tipo_remuneracao"`
	ValorRemuneracao decimal.Decimal `gorm:"column:valor_remuneracao;type:numeric(12,2);not null;default:0" json:"valor_remuneracao"`
	Status           Status          `gorm:"column:status;not null;index" json:"status"`
}

func (Member) TableName() string { return "funcionarios" }
