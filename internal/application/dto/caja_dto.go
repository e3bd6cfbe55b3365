package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MontoRequest monto para acreditar, debitar o fijar la base de caja.
type MontoRequest struct {
	Monto      decimal.Decimal `json:"monto"`
	Referencia string          `json:"referencia,omitempty"`
}

// SaldoResponse saldo de caja tras una operación (o consulta).
type SaldoResponse struct {
	BaseActual decimal.Decimal `json:"base_actual"`
}

// MovimientoCajaResponse entrada del historial de caja.
type MovimientoCajaResponse struct {
	ID            string          `json:"id"`
	Tipo          string          `json:"tipo"`
	Monto         decimal.Decimal `json:"monto"`
	SaldoAnterior decimal.Decimal `json:"saldo_anterior"`
	SaldoNuevo    decimal.Decimal `json:"saldo_nuevo"`
	Referencia    string          `json:"referencia,omitempty"`
	UsuarioUID    string          `json:"usuario_uid"`
	EquipoID      string          `json:"equipo_id"`
	Fecha         time.Time       `json:"fecha"`
}
