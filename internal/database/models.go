package database

import (
	"obrago/internal/domain/account"
	"obrago/internal/domain/crew"
	"obrago/internal/domain/finance"
	"obrago/internal/domain/material"
	"obrago/internal/domain/project"
	"obrago/internal/domain/quote"
	"obrago/internal/domain/schedule"
)

// Models lists every persisted type in migration order. Projects come before
// the tables that reference them.
func Models() []any {
	return []any{
		&account.Profile{},
		&account.RecoveryToken{},
		&project.Project{},
		&crew.Member{},
		&material.Material{},
		&finance.Transaction{},
		&schedule.Step{},
		&quote.Quote{},
	}
}
