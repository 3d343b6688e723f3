package schedule

import "errors"

var (
	ErrMissingDates = errors.New("data_inicio and data_fim are required")
	ErrDateOrder    = errors.New("data_fim must not be before data_inicio")
)
