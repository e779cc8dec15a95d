package memory

import (
	"sync"

	"github.com/jhoicas/order-manager-api/internal/domain/entity"
)

// Store estado compartido en memoria para productos y órdenes.
// Sustituye a PostgreSQL en tests y desarrollo local; el TxRunner de este
// paquete serializa las transacciones con el mutex del Store, que cumple aquí
// el papel del bloqueo de fila.
type Store struct {
	mu       sync.Mutex
	products map[string]entity.Product
	orders   map[string]entity.Order
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]entity.Product),
		orders:   make(map[string]entity.Order),
	}
}

// snapshot copia el estado completo para poder revertir una transacción.
func (s *Store) snapshot() (map[string]entity.Product, map[string]entity.Order) {
	products := make(map[string]entity.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	orders := make(map[string]entity.Order, len(s.orders))
	for k, v := range s.orders {
		orders[k] = v
	}
	return products, orders
}

func (s *Store) restore(products map[string]entity.Product, orders map[string]entity.Order) {
	s.products = products
	s.orders = orders
}
