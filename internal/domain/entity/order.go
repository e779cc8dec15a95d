package entity

import "time"

// OrderStatusOpen estado por defecto de una orden recién creada.
// Status es texto libre (no hay máquina de estados); solo el default está fijado.
const OrderStatusOpen = "open"

// Order representa una orden que reserva Quantity unidades del producto referenciado.
// La reserva se toma al crear la orden y se libera al eliminarla.
type Order struct {
	ID        string
	ProductID string // referencia por id; sin back-reference viva al producto
	Quantity  int64  // positivo, fijado al crear (no hay despacho parcial)
	Customer  string
	OrderDate string // texto descriptivo, solo se valida presencia
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
