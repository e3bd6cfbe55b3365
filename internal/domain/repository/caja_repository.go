package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// CajaRepository puerto sobre la base de caja compartida (configuracion/caja)
// y su historial de movimientos.
type CajaRepository interface {
	// Get lectura simple para mostrar saldo (puede quedar vieja en la UI;
	// las mutaciones siempre releen con GetForUpdate).
	Get(ctx context.Context) (*entity.Caja, error)
	// GetForUpdate lee y bloquea la fila de la caja dentro de la transacción.
	GetForUpdate(ctx context.Context) (*entity.Caja, error)
	// Set escribe la nueva base.
	Set(ctx context.Context, base decimal.Decimal) error
	// RegistrarMovimiento agrega una entrada al historial de caja.
	RegistrarMovimiento(ctx context.Context, mov *entity.MovimientoCaja) error
	// ListarMovimientos historial reciente, más nuevo primero.
	ListarMovimientos(ctx context.Context, limit, offset int) ([]*entity.MovimientoCaja, error)
}
