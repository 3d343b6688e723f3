package crew

import (
	"context"

	"gorm.io/gorm"

	"obrago/internal/scope"
)

type Repository interface {
	List(ctx context.Context, ownerID string, q scope.Query) ([]Member, error)
	Count(ctx context.Context, ownerID string, q scope.Query) (int64, error)
	Get(ctx context.Context, ownerID, id string) (*Member, error)
	Create(ctx context.Context, ownerID string, m *Member) error
	Update(ctx context.Context, ownerID, id string, version int, changes map[string]any) (*Member, error)
	Delete(ctx context.Context, ownerID, id string) error
}

func NewRepository(db *gorm.DB) Repository {
	return scope.NewRepository[Member](db, "nome", "funcao", "telefone")
}
