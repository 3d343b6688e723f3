package admin

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"obrago/internal/domain/account"
)

// Repository holds the unscoped profile reads of the admin panel.
type Repository interface {
	List(ctx context.Context, role account.Role, search string, limit, offset int) ([]account.Profile, int64, error)
	Stats(ctx context.Context) (*Stats, error)
	ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, role account.Role, search string, limit, offset int) ([]account.Profile, int64, error) {
	var profiles []account.Profile
	var total int64

	db := r.db.WithContext(ctx).Model(&account.Profile{})
	if role != "" {
		db = db.Where("role = ?", role)
	}
	if q := strings.TrimSpace(search); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		db = db.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Order("created_at DESC").Offset(offset).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var rows []struct {
		Role               account.Role
		SubscriptionStatus account.SubscriptionStatus
		N                  int64
	}
	err := r.db.WithContext(ctx).Model(&account.Profile{}).
		Select("role, subscription_status, COUNT(*) AS n").
		Group("role, subscription_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	st := &Stats{}
	for _, row := range rows {
		st.Total += row.N
		switch row.Role {
		case account.RolePending:
			st.Pending += row.N
		case account.RoleBlocked:
			st.Blocked += row.N
		case account.RoleAdmin:
			st.Admins += row.N
		case account.RoleUser:
			if row.SubscriptionStatus == account.SubscriptionActive {
				st.Active += row.N
			}
		}
		if row.SubscriptionStatus == account.SubscriptionOverdue {
			st.Overdue += row.N
		}
	}
	return st, nil
}

// ExpireSubscriptions moves active subscriptions past their expiry to overdue.
func (r *repository) ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&account.Profile{}).
		Where("subscription_status = ? AND subscription_expires_at IS NOT NULL AND subscription_expires_at < ?", account.SubscriptionActive, now).
		Updates(map[string]any{
			"subscription_status": account.SubscriptionOverdue,
			"updated_at":          now,
		})
	return res.RowsAffected, res.Error
}
