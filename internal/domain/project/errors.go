package project

import "errors"

var (
	ErrNegativeBudget = errors.New("orcamento must not be negative")
	ErrDateOrder      = errors.New("previsao_fim must not be before data_inicio")
	ErrProjectInUse   = errors.New("project still has linked records")
)
