package repository

import "github.com/jhoicas/order-manager-api/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes.
// GetByID devuelve (nil, nil) si la orden no existe.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetByIDForUpdate obtiene la orden bloqueando la fila, para que dos
	// cancelaciones concurrentes de la misma orden no liberen stock dos veces.
	GetByIDForUpdate(id string) (*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, error)
	Update(order *entity.Order) error
	Delete(id string) error
}
