package material

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantidade must be greater than zero")
	ErrNegativeValue   = errors.New("valor must not be negative")
)
