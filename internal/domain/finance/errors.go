package finance

import "errors"

var (
	ErrInvalidKind     = errors.New("tipo must be receita or despesa")
	ErrInvalidCategory = errors.New("categoria does not belong to tipo")
	ErrInvalidAmount   = errors.New("valor must be greater than zero")
	ErrInvalidRange    = errors.New("start must not be after end")
)
