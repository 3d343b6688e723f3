package material

import (
	"context"

	"gorm.io/gorm"

	"obrago/internal/scope"
)

type Repository interface {
	List(ctx context.Context, ownerID string, q scope.Query) ([]Material, error)
	Count(ctx context.Context, ownerID string, q scope.Query) (int64, error)
	Get(ctx context.Context, ownerID, id string) (*Material, error)
	Create(ctx context.Context, ownerID string, m *Material) error
	Update(ctx context.Context, ownerID, id string, version int, changes map[string]any) (*Material, error)
	Delete(ctx context.Context, ownerID, id string) error
}

func NewRepository(db *gorm.DB) Repository {
	return scope.NewRepository[Material](db, "nome", "fornecedor")
}
