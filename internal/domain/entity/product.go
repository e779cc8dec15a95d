package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es el único campo mutado por el ledger de órdenes: ninguna otra ruta
// de código debe escribirlo directamente o el invariante stock/órdenes se rompe.
type Product struct {
	ID        string
	Name      string
	Brand     string
	Price     decimal.Decimal // precio de venta (NUMERIC en BD)
	Stock     int64           // unidades disponibles para reservar, nunca negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
