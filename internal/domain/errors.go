package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrOrderNotFound     = errors.New("orden no encontrada")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrConflict señala un fallo de serialización/deadlock en la BD.
	// Es el único error transitorio: el caller puede reintentar la operación completa.
	ErrConflict = errors.New("conflicto de transacción, reintentar")
)

// IsConflict verifica si un error es un conflicto transitorio de transacción.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
