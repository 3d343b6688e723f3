package admin

import "obrago/internal/domain/account"

// StatusFilter selects profiles on the admin listing. Active means role user.
type StatusFilter string

const (
	FilterAll     StatusFilter = "all"
	FilterPending StatusFilter = "pending"
	FilterActive  StatusFilter = "active"
	FilterBlocked StatusFilter = "blocked"
	FilterAdmin   StatusFilter = "admin"
)

func (f StatusFilter) role() (account.Role, bool) {
	switch f {
	case FilterAll, "":
		return "", true
	case FilterPending:
		return account.RolePending, true
	case FilterActive:
		return account.RoleUser, true
	case FilterBlocked:
		return account.RoleBlocked, true
	case FilterAdmin:
		return account.RoleAdmin, true
	}
	return "", false
}

type ListFilter struct {
	Status StatusFilter
	Search string
	Limit  int
	Offset int
}

type ListResponse struct {
	Profiles []account.Profile `json:"profiles"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// Stats are the counters on top of the admin panel.
type Stats struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Active  int64 `json:"active"`
	Overdue int64 `json:"overdue"`
	Blocked int64 `json:"blocked"`
	Admins  int64 `json:"admins"`
}

type SubscriptionRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive overdue"`
}
