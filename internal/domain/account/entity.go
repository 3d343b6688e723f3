package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role of a profile. New profiles wait in pending until an admin acts.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RolePending Role = "pending"
	RoleBlocked Role = "blocked"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RolePending, RoleBlocked:
		return true
	}
	return false
}

// SubscriptionStatus of a profile's paid plan.
type SubscriptionStatus string

const (
	SubscriptionNone     SubscriptionStatus = ""
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionOverdue  SubscriptionStatus = "overdue"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionInactive, SubscriptionOverdue:
		return true
	}
	return false
}

// Profile is the per-user record holding role and subscription state.
type Profile struct {
	ID                    string             `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Email                 string             `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Name                  string             `gorm:"column:name" json:"name"`
	PasswordHash          string             `gorm:"column:password_hash" json:"-"`
	Role                  Role               `gorm:"column:role;index;not null;default:pending" json:"role"`
	SubscriptionStatus    SubscriptionStatus `gorm:"column:subscription_status" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `gorm:"column:subscription_expires_at" json:"subscription_expires_at,omitempty"`
	ApprovedBy            *string            `gorm:"column:approved_by;type:varchar(36)" json:"approved_by,omitempty"`
	ApprovedAt            *time.Time         `gorm:"column:approved_at" json:"approved_at,omitempty"`
	TokenVersion          int                `gorm:"column:token_version;not null;default:1" json:"-"`
	CreatedAt             time.Time          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt             time.Time          `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// RecoveryToken is a single-use password reset credential. Only its hash is stored.
type RecoveryToken struct {
	ID        string     `gorm:"column:id;primaryKey;type:varchar(36)"`
	UserID    string     `gorm:"column:user_id;index;not null;type:varchar(36)"`
	TokenHash string     `gorm:"column:token_hash;uniqueIndex;not null"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null"`
	UsedAt    *time.Time `gorm:"column:used_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (RecoveryToken) TableName() string { return "password_recovery_tokens" }

// Plan is an entry of the public pricing table.
type Plan struct {
	ID          string          `json:"id"`
	Name        string          `json:"nome"`
	Price       decimal.Decimal `json:"preco"`
	Period      string          `json:"periodo"`
	Description string          `json:"descricao"`
	Features    []string        `json:"recursos"`
	Popular     bool            `json:"popular"`
}

// Plans returns the pricing table shown on the subscription page.
func Plans() []Plan {
	return []Plan{
		{
			ID:          "basico",
			Name:        "Básico",
			Price:       decimal.RequireFromString("49.90"),
			Period:      "mês",
			Description: "Ideal para pequenas obras",
			Features: []string{
				"Até 3 obras ativas",
				"10 funcionários",
				"Controle básico de materiais",
				"Relatórios simples",
				"Suporte por email",
			},
		},
		{
			ID:          "profissional",
			Name:        "Profissional",
			Price:       decimal.RequireFromString("99.90"),
			Period:      "mês",
			Description: "Para construtoras em crescimento",
			Features: []string{
				"Obras ilimitadas",
				"50 funcionários",
				"Controle avançado de materiais",
				"Relatórios completos",
				"Cronograma detalhado",
				"Suporte prioritário",
			},
			Popular: true,
		},
		{
			ID:          "empresarial",
			Name:        "Empresarial",
			Price:       decimal.RequireFromString("199.90"),
			Period:      "mês",
			Description: "Para grandes construtoras",
			Features: []string{
				"Tudo do Profissional",
				"Funcionários ilimitados",
				"Multi-usuários",
				"API de integração",
				"Relatórios personalizados",
				"Suporte dedicado",
			},
		},
	}
}
