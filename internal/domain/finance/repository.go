package finance

import (
	"context"

	"gorm.io/gorm"

	"obrago/internal/scope"
)

type Repository interface {
	List(ctx context.Context, ownerID string, q scope.Query) ([]Transaction, error)
	Count(ctx context.Context, ownerID string, q scope.Query) (int64, error)
	Get(ctx context.Context, ownerID, id string) (*Transaction, error)
	Create(ctx context.Context, ownerID string, t *Transaction) error
	Update(ctx context.Context, ownerID, id string, version int, changes map[string]any) (*Transaction, error)
	Delete(ctx context.Context, ownerID, id string) error
}

func NewRepository(db *gorm.DB) Repository {
	return scope.NewRepository[Transaction](db, "descricao", "categoria")
}
