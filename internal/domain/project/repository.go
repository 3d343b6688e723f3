package project

import (
	"context"

	"gorm.io/gorm"

	"obrago/internal/scope"
)

// Repository is the owner-scoped store of projects.
type Repository interface {
	List(ctx context.Context, ownerID string, q scope.Query) ([]Project, error)
	Count(ctx context.Context, ownerID string, q scope.Query) (int64, error)
	Get(ctx context.Context, ownerID, id string) (*Project, error)
	Exists(ctx context.Context, ownerID, id string) (bool, error)
	Create(ctx context.Context, ownerID string, p *Project) error
	Update(ctx context.Context, ownerID, id string, version int, changes map[string]any) (*Project, error)
	Delete(ctx context.Context, ownerID, id string) error
}

func NewRepository(db *gorm.DB) Repository {
	return scope.NewRepository[Project](db, "nome", "cliente", "endereco")
}
