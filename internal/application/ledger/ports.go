package ledger

import (
	"context"

	"github.com/jhoicas/order-manager-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el decremento de stock y la
// inserción/borrado de la orden se confirmen (o reviertan) como una unidad.
// La serialización entre llamadas concurrentes viene del motor de BD
// (bloqueo de fila), no de exclusión mutua en el proceso.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
