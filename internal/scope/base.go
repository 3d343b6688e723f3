package scope

import "time"

// Base is embedded by every owner-scoped row.
type Base struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"column:user_id;index;not null;type:varchar(36)" json:"user_id"`
	Version   int       `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// OwnedBase exposes the embedded Base to the generic repository.
func (b *Base) OwnedBase() *Base { return b }

// Row is satisfied by a pointer to any struct embedding Base.
type Row[T any] interface {
	*T
	OwnedBase() *Base
}
