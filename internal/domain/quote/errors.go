package quote

import "errors"

var (
	ErrInvalidAmount   = errors.New("valor must be greater than zero")
	ErrMissingValidity = errors.New("validade is required")
	ErrExpiredValidity = errors.New("validade must not be before data_criacao")
	ErrQuoteLocked     = errors.New("accepted quotes cannot be edited")
)
