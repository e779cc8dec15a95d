package memory

import (
	"context"

	"github.com/jhoicas/order-manager-api/internal/application/ledger"
	"github.com/jhoicas/order-manager-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner versión en memoria del runner transaccional: toma el mutex del
// Store (serializando las transacciones por completo) y revierte el estado al
// snapshot previo si fn falla. Todo-o-nada, igual que la versión PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la "transacción" (sin locking propio:
// el mutex ya está tomado). El contexto se acepta por simetría con el puerto.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	_ = ctx
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, orders := r.store.snapshot()
	err := fn(
		&ProductRepo{store: r.store, inTx: true},
		&OrderRepo{store: r.store, inTx: true},
	)
	if err != nil {
		r.store.restore(products, orders)
		return err
	}
	return nil
}
