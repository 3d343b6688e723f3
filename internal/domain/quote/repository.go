package quote

import (
	"context"

	"gorm.io/gorm"

	"obrago/internal/scope"
)

type Repository interface {
	List(ctx context.Context, ownerID string, q scope.Query) ([]Quote, error)
	Get(ctx context.Context, ownerID, id string) (*Quote, error)
	Create(ctx context.Context, ownerID string, q *Quote) error
	Update(ctx context.Context, ownerID, id string, version int, changes map[string]any) (*Quote, error)
	Delete(ctx context.Context, ownerID, id string) error
}

func NewRepository(db *gorm.DB) Repository {
	return scope.NewRepository[Quote](db, "numero", "cliente", "obra")
}
