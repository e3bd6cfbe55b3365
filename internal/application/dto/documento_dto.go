package dto

import "github.com/shopspring/decimal"

// ItemDocumento línea de artículo en una compra, venta o remisión.
type ItemDocumento struct {
	ArticuloID     string          `json:"articulo_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"` // 0 = usar el precio del catálogo
}

// CompraRequest compra de material a un reciclador. Entra stock y, si se
// paga en efectivo, sale dinero de la caja.
type CompraRequest struct {
	Reciclador string          `json:"reciclador"`
	FormaPago  string          `json:"forma_pago"` // efectivo | transferencia
	Items      []ItemDocumento `json:"items"`
}

// VentaRequest venta de material (al por mayor o de mostrador). Sale stock
// y, si es en efectivo, entra dinero a la caja.
type VentaRequest struct {
	Cliente   string          `json:"cliente"`
	FormaPago string          `json:"forma_pago"`
	Items     []ItemDocumento `json:"items"`
}

// GastoRequest comprobante de egreso. Solo toca la caja.
type GastoRequest struct {
	Beneficiario string          `json:"beneficiario"`
	Concepto     string          `json:"concepto"`
	Monto        decimal.Decimal `json:"monto"`
}

// RemisionRequest remisión de entrega: documento numerado sin efecto en
// caja ni stock (la venta asociada ya los movió).
type RemisionRequest struct {
	Cliente string          `json:"cliente"`
	Items   []ItemDocumento `json:"items"`
}

// DetalleResponse línea de un documento emitido.
type DetalleResponse struct {
	ArticuloID     string          `json:"articulo_id"`
	NombreArticulo string          `json:"nombre_articulo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// DocumentoResponse documento emitido con su número de serie ya asignado.
type DocumentoResponse struct {
	ID        string            `json:"id"`
	Modulo    string            `json:"modulo"`
	Numero    string            `json:"numero"`
	Serial    int64             `json:"serial"`
	EquipoID  string            `json:"equipo_id"`
	Tercero   string            `json:"tercero,omitempty"`
	Concepto  string            `json:"concepto,omitempty"`
	FormaPago string            `json:"forma_pago,omitempty"`
	Total     decimal.Decimal   `json:"total"`
	Fecha     string            `json:"fecha"`
	Detalles  []DetalleResponse `json:"detalles,omitempty"`
	SaldoCaja *decimal.Decimal  `json:"saldo_caja,omitempty"` // saldo tras el movimiento, si hubo
}
