package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago aceptadas.
const (
	FormaPagoEfectivo      = "efectivo"
	FormaPagoTransferencia = "transferencia"
)

// Documento es la cabecera común de todos los comprobantes numerados:
// facturas de compra, facturas de venta, ventas de mostrador, comprobantes
// de egreso y remisiones. El módulo distingue la serie; Numero es el
// consecutivo ya formateado (FAC00001, REM-000001, ...).
type Documento struct {
	ID         string
	Modulo     Modulo
	Serial     int64  // consecutivo sin formato
	Numero     string // consecutivo formateado, único por módulo
	EquipoID   string
	UsuarioUID string
	Tercero    string // reciclador (compras), cliente (ventas/remisiones) o beneficiario (gastos)
	Concepto   string // descripción libre; obligatorio en gastos
	FormaPago  string
	Total      decimal.Decimal
	CreatedAt  time.Time
}

// DetalleDocumento es una línea de artículo dentro de un documento.
// Los gastos no tienen detalle.
type DetalleDocumento struct {
	ID             string
	DocumentoID    string
	ArticuloID     string
	NombreArticulo string // copia del nombre al momento de emitir
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
