package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metalrec/chatarreria-api/internal/application/caja"
	"github.com/metalrec/chatarreria-api/internal/application/consecutivos"
	"github.com/metalrec/chatarreria-api/internal/application/inventario"
	"github.com/metalrec/chatarreria-api/internal/application/operaciones"
	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// TxRunner implementa los puertos de transacción de cada paquete.
var _ consecutivos.TxRunner = (*TxRunner)(nil)
var _ caja.TxRunner = (*TxRunner)(nil)
var _ inventario.TxRunner = (*TxRunner)(nil)
var _ operaciones.TxRunner = (*TxRunner)(nil)

// maxReintentosTx reintentos ante serialization_failure o deadlock antes
// de rendirse con ErrTransaccionAbortada.
const maxReintentosTx = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los
// fallos transitorios de concurrencia (40001, 40P01) se reintentan con la
// transacción completa desde cero, por lo que fn puede ejecutarse más de
// una vez; agotados los reintentos devuelve ErrTransaccionAbortada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAtomic inicia una transacción con los repos de consecutivos atados a
// la tx (reserva de bloques).
func (r *TxRunner) RunAtomic(ctx context.Context, fn func(
	contadorRepo repository.ContadorRepository,
	bloqueRepo repository.BloqueRepository,
) error) error {
	return r.conReintentos(ctx, func(tx Querier) error {
		return fn(NewContadorRepository(tx), NewBloqueRepository(tx))
	})
}

// RunCaja inicia una transacción con el repo de caja atado a la tx.
func (r *TxRunner) RunCaja(ctx context.Context, fn func(cajaRepo repository.CajaRepository) error) error {
	return r.conReintentos(ctx, func(tx Querier) error {
		return fn(NewCajaRepository(tx))
	})
}

// RunInventario inicia una transacción con el repo de artículos atado a
// la tx (ajustes administrativos de stock).
func (r *TxRunner) RunInventario(ctx context.Context, fn func(articuloRepo repository.ArticuloRepository) error) error {
	return r.conReintentos(ctx, func(tx Querier) error {
		return fn(NewArticuloRepository(tx))
	})
}

// RunOperacion inicia una transacción con todos los repos que toca la
// emisión de un documento: consecutivo, bloque, caja, stock y documento.
func (r *TxRunner) RunOperacion(ctx context.Context, fn func(
	contadorRepo repository.ContadorRepository,
	bloqueRepo repository.BloqueRepository,
	cajaRepo repository.CajaRepository,
	articuloRepo repository.ArticuloRepository,
	documentoRepo repository.DocumentoRepository,
) error) error {
	return r.conReintentos(ctx, func(tx Querier) error {
		return fn(
			NewContadorRepository(tx),
			NewBloqueRepository(tx),
			NewCajaRepository(tx),
			NewArticuloRepository(tx),
			NewDocumentoRepository(tx),
		)
	})
}

// conReintentos ejecuta una transacción completa; ante un error
// retryable la repite desde Begin hasta agotar los intentos.
func (r *TxRunner) conReintentos(ctx context.Context, fn func(tx Querier) error) error {
	var lastErr error
	for intento := 0; intento < maxReintentosTx; intento++ {
		err := r.unaTransaccion(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w tras %d intentos: %v", domain.ErrTransaccionAbortada, maxReintentosTx, lastErr)
}

func (r *TxRunner) unaTransaccion(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
