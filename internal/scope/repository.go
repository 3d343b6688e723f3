package scope

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultOrder = "created_at DESC"

// Repository is the only path to owner-scoped tables. Every statement it
// issues carries the user_id predicate, so a caller cannot read or write
// rows it does not own.
type Repository[T any, P Row[T]] struct {
	db            *gorm.DB
	searchColumns []string
}

// NewRepository builds a scoped repository. searchColumns are matched by
// Query.Search.
func NewRepository[T any, P Row[T]](db *gorm.DB, searchColumns ...string) *Repository[T, P] {
	return &Repository[T, P]{db: db, searchColumns: searchColumns}
}

func (r *Repository[T, P]) scoped(ctx context.Context, ownerID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T)).Where("user_id = ?", ownerID)
}

// List returns the owner's rows matching q.
func (r *Repository[T, P]) List(ctx context.Context, ownerID string, q Query) ([]T, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	tx := r.apply(r.scoped(ctx, ownerID), q)

	order := q.Order
	if order == "" {
		order = defaultOrder
	}
	tx = tx.Order(order)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns how many of the owner's rows match q.
func (r *Repository[T, P]) Count(ctx context.Context, ownerID string, q Query) (int64, error) {
	if ownerID == "" {
		return 0, ErrMissingOwner
	}
	var n int64
	err := r.apply(r.scoped(ctx, ownerID), q).Count(&n).Error
	return n, err
}

// Get returns a single row. Rows of other owners are reported as not found.
func (r *Repository[T, P]) Get(ctx context.Context, ownerID, id string) (*T, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	var row T
	err := r.scoped(ctx, ownerID).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Exists reports whether id is one of the owner's rows.
func (r *Repository[T, P]) Exists(ctx context.Context, ownerID, id string) (bool, error) {
	if ownerID == "" {
		return false, ErrMissingOwner
	}
	var n int64
	err := r.scoped(ctx, ownerID).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// Create stamps owner, id and the initial version, then inserts.
func (r *Repository[T, P]) Create(ctx context.Context, ownerID string, row P) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	base := row.OwnedBase()
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	base.UserID = ownerID
	base.Version = 1
	return r.db.WithContext(ctx).Create(row).Error
}

// Update applies changes only if the row still has expectedVersion.
// The stored version is bumped on success.
func (r *Repository[T, P]) Update(ctx context.Context, ownerID, id string, expectedVersion int, changes map[string]any) (*T, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	values := make(map[string]any, len(changes)+2)
	for k, v := range changes {
		values[k] = v
	}
	values["version"] = gorm.Expr("version + 1")
	values["updated_at"] = time.Now()

	res := r.scoped(ctx, ownerID).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(values)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		exists, err := r.Exists(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrVersionConflict
	}
	return r.Get(ctx, ownerID, id)
}

// Delete removes one of the owner's rows.
func (r *Repository[T, P]) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T, P]) apply(tx *gorm.DB, q Query) *gorm.DB {
	tx = search(r.searchColumns, q.Search)(tx)
	for _, f := range q.Filters {
		if f != nil {
			tx = f(tx)
		}
	}
	return tx
}
