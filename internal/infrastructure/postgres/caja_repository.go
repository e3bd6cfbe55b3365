package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

var _ repository.CajaRepository = (*CajaRepo)(nil)

// CajaRepo implementación de CajaRepository sobre PostgreSQL (usable con
// pool o tx). La caja es una sola fila (id = 1) que nace con las
// migraciones; el historial vive en movimientos_caja.
type CajaRepo struct {
	q Querier
}

// NewCajaRepository construye el adaptador de caja. Pasar pool o tx (Querier).
func NewCajaRepository(q Querier) *CajaRepo {
	return &CajaRepo{q: q}
}

// Get lectura simple de la base actual. nil, nil si la fila no existe.
func (r *CajaRepo) Get(ctx context.Context) (*entity.Caja, error) {
	const q = `SELECT base_actual, updated_at FROM caja WHERE id = 1`
	return r.scanCaja(ctx, q)
}

// GetForUpdate lee y bloquea la fila de la caja. El lock serializa todas
// las mutaciones de la base entre equipos.
func (r *CajaRepo) GetForUpdate(ctx context.Context) (*entity.Caja, error) {
	const q = `SELECT base_actual, updated_at FROM caja WHERE id = 1 FOR UPDATE`
	return r.scanCaja(ctx, q)
}

// Set escribe la nueva base.
func (r *CajaRepo) Set(ctx context.Context, base decimal.Decimal) error {
	const q = `UPDATE caja SET base_actual = $1, updated_at = now() WHERE id = 1`
	tag, err := r.q.Exec(ctx, q, base)
	if err != nil {
		return fmt.Errorf("update caja: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update caja: fila ausente")
	}
	return nil
}

// RegistrarMovimiento agrega una entrada al historial de caja.
func (r *CajaRepo) RegistrarMovimiento(ctx context.Context, mov *entity.MovimientoCaja) error {
	const q = `
		INSERT INTO movimientos_caja
			(id, tipo, monto, saldo_anterior, saldo_nuevo, referencia, usuario_uid, equipo_id, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, q,
		mov.ID, mov.Tipo, mov.Monto, mov.SaldoAnterior, mov.SaldoNuevo,
		mov.Referencia, mov.UsuarioUID, mov.EquipoID, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento_caja: %w", err)
	}
	return nil
}

// ListarMovimientos historial de caja, más reciente primero.
func (r *CajaRepo) ListarMovimientos(ctx context.Context, limit, offset int) ([]*entity.MovimientoCaja, error) {
	const q = `
		SELECT id, tipo, monto, saldo_anterior, saldo_nuevo, referencia, usuario_uid, equipo_id, created_at
		FROM movimientos_caja
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos_caja: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoCaja
	for rows.Next() {
		var m entity.MovimientoCaja
		if err := rows.Scan(
			&m.ID, &m.Tipo, &m.Monto, &m.SaldoAnterior, &m.SaldoNuevo,
			&m.Referencia, &m.UsuarioUID, &m.EquipoID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento_caja: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *CajaRepo) scanCaja(ctx context.Context, query string) (*entity.Caja, error) {
	var c entity.Caja
	err := r.q.QueryRow(ctx, query).Scan(&c.BaseActual, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caja: %w", err)
	}
	return &c, nil
}
