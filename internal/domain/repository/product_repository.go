package repository

import "github.com/jhoicas/order-manager-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetByIDForUpdate(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe el campo stock. Reservado al ledger: todo ajuste de stock
	// pasa por PlaceOrder/CancelOrder/AmendOrder dentro de una transacción.
	UpdateStock(id string, stock int64) error
	Delete(id string) error
}
