package crew

import "errors"

var (
	ErrInvalidPayType  = errors.New("tipo_remuneracao must be diaria or salario")
	ErrNegativePayment = errors.New("valor_remuneracao must not be negative")
)
