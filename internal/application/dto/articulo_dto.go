package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticuloRequest alta o edición de un material del catálogo.
type ArticuloRequest struct {
	Nombre       string          `json:"nombre"`
	Unidad       string          `json:"unidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}

// AjusteStockRequest ajuste administrativo de stock (conteo físico).
type AjusteStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// ArticuloResponse material del catálogo con su stock actual.
type ArticuloResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Unidad       string          `json:"unidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Stock        decimal.Decimal `json:"stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
