package scope

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrVersionConflict  = errors.New("record was modified by another request")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrMissingOwner     = errors.New("owner id is required")
)
