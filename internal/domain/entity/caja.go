package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Caja es la base de efectivo compartida entre todos los equipos.
// Invariante: BaseActual nunca queda negativa después de un débito
// confirmado; la verificación ocurre dentro de la misma transacción
// que escribe, nunca contra una lectura vieja de la UI.
type Caja struct {
	BaseActual decimal.Decimal
	UpdatedAt  time.Time
}

// Tipos de movimiento de caja (para el historial).
const (
	MovimientoCajaCredito = "credito" // ingreso de efectivo
	MovimientoCajaDebito  = "debito"  // egreso: compra o gasto
	MovimientoCajaAjuste  = "ajuste"  // fijación administrativa de la base
)

// MovimientoCaja registra cada mutación de la base para auditoría de turno.
type MovimientoCaja struct {
	ID            string
	Tipo          string
	Monto         decimal.Decimal
	SaldoAnterior decimal.Decimal
	SaldoNuevo    decimal.Decimal
	Referencia    string // número de documento asociado, si aplica
	UsuarioUID    string
	EquipoID      string
	CreatedAt     time.Time
}
