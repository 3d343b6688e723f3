package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository handles persistence for profiles and recovery tokens
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateFields(ctx context.Context, id string, changes map[string]any) error
	BumpTokenVersion(ctx context.Context, id string) error

	CreateRecoveryToken(ctx context.Context, t *RecoveryToken) error
	ConsumeRecoveryToken(ctx context.Context, hash string, now time.Time) (*RecoveryToken, error)
	PurgeRecoveryTokens(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Profile{}).Where("email = ?", normalizeEmail(email)).Count(&n).Error
	return n > 0, err
}

func (r *repository) UpdateFields(ctx context.Context, id string, changes map[string]any) error {
	values := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		values[k] = v
	}
	values["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *repository) BumpTokenVersion(ctx context.Context, id string) error {
	return r.UpdateFields(ctx, id, map[string]any{
		"token_version": gorm.Expr("token_version + 1"),
	})
}

func (r *repository) CreateRecoveryToken(ctx context.Context, t *RecoveryToken) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(t).Error
}

// ConsumeRecoveryToken marks a live token as used. The conditional update
// makes a token usable exactly once even under concurrent requests.
func (r *repository) ConsumeRecoveryToken(ctx context.Context, hash string, now time.Time) (*RecoveryToken, error) {
	var tok RecoveryToken
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token_hash = ?", hash).First(&tok).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		if tok.UsedAt != nil || !tok.ExpiresAt.After(now) {
			return ErrInvalidResetToken
		}
		res := tx.Model(&RecoveryToken{}).
			Where("id = ? AND used_at IS NULL", tok.ID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidResetToken
		}
		tok.UsedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

// PurgeRecoveryTokens deletes tokens that were used or have expired.
func (r *repository) PurgeRecoveryTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("used_at IS NOT NULL OR expires_at < ?", now).
		Delete(&RecoveryToken{})
	return res.RowsAffected, res.Error
}
