package dto

import "time"

// CreateOrderRequest entrada para crear una orden (reserva stock del producto).
type CreateOrderRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Customer  string `json:"customer"`
	OrderDate string `json:"order_date"`
}

// UpdateOrderRequest entrada para modificar una orden. Cambiar Quantity o
// ProductID re-ejecuta la lógica de reserva/liberación del ledger.
type UpdateOrderRequest struct {
	ProductID *string `json:"product_id"`
	Quantity  *int64  `json:"quantity"`
	Customer  *string `json:"customer"`
	OrderDate *string `json:"order_date"`
	Status    *string `json:"status"`
}

// OrderResponse salida de una orden. Product embebe el producto referenciado
// (null si fue eliminado después de crear la orden).
type OrderResponse struct {
	ID        string           `json:"id"`
	Product   *ProductResponse `json:"product"`
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	Customer  string           `json:"customer"`
	OrderDate string           `json:"order_date"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
