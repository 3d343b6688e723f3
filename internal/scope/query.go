package scope

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Filter narrows a scoped query. It never sees rows of other owners.
type Filter func(*gorm.DB) *gorm.DB

// Query describes a list request.
type Query struct {
	Search  string
	Filters []Filter
	Order   string
	Limit   int
	Offset  int
}

// Eq matches column = value. Empty strings are ignored.
func Eq(column string, value any) Filter {
	return func(db *gorm.DB) *gorm.DB {
		if s, ok := value.(string); ok && s == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// Not matches column <> value.
func Not(column string, value any) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" <> ?", value)
	}
}

// In matches column IN values.
func In[V any](column string, values ...V) Filter {
	return func(db *gorm.DB) *gorm.DB {
		if len(values) == 0 {
			return db
		}
		return db.Where(column+" IN ?", values)
	}
}

// Between matches an inclusive time range; zero bounds are open.
func Between(column string, from, to time.Time) Filter {
	return func(db *gorm.DB) *gorm.DB {
		if !from.IsZero() {
			db = db.Where(column+" >= ?", from)
		}
		if !to.IsZero() {
			db = db.Where(column+" <= ?", to)
		}
		return db
	}
}

// Like matches a case-insensitive substring on a single column.
func Like(column, needle string) Filter {
	return func(db *gorm.DB) *gorm.DB {
		needle = strings.TrimSpace(needle)
		if needle == "" {
			return db
		}
		return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(needle)+"%")
	}
}

func search(columns []string, needle string) Filter {
	return func(db *gorm.DB) *gorm.DB {
		needle = strings.TrimSpace(needle)
		if needle == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(needle) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}
