package admin

import "errors"

var (
	ErrSelfAction          = errors.New("admins cannot change their own role")
	ErrInvalidFilter       = errors.New("invalid status filter")
	ErrInvalidSubscription = errors.New("invalid subscription status")
)
