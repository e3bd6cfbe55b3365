package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Articulo es un material del inventario de la chatarrería
// (cobre, aluminio, chatarra ferrosa, etc.). El stock se maneja en
// decimal porque se compra y vende por peso.
type Articulo struct {
	ID           string
	Nombre       string
	Unidad       string // kg, unidad
	PrecioCompra decimal.Decimal
	PrecioVenta  decimal.Decimal
	Stock        decimal.Decimal // >= 0 siempre
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
