package schedule

import (
	"context"

	"gorm.io/gorm"

	"obrago/internal/scope"
)

type Repository interface {
	List(ctx context.Context, ownerID string, q scope.Query) ([]Step, error)
	Count(ctx context.Context, ownerID string, q scope.Query) (int64, error)
	Get(ctx context.Context, ownerID, id string) (*Step, error)
	Create(ctx context.Context, ownerID string, s *Step) error
	Update(ctx context.Context, ownerID, id string, version int, changes map[string]any) (*Step, error)
	Delete(ctx context.Context, ownerID, id string) error
}

func NewRepository(db *gorm.DB) Repository {
	return scope.NewRepository[Step](db, "nome", "responsavel")
}
