package caja

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// UseCase opera la base de caja compartida. Toda mutación relee el saldo
// con bloqueo de fila dentro de la transacción que escribe: dos créditos
// concurrentes nunca se pisan y un débito jamás deja la base negativa,
// aunque la UI haya mostrado un saldo viejo.
type UseCase struct {
	tx       TxRunner
	equipoID string
}

// NewUseCase construye el caso de uso de caja.
func NewUseCase(tx TxRunner, equipoID string) *UseCase {
	return &UseCase{tx: tx, equipoID: equipoID}
}

// Movimiento metadatos del movimiento para el historial.
type Movimiento struct {
	Referencia string // número de documento asociado, si aplica
	UsuarioUID string
}

// Acreditar suma monto a la base y devuelve el saldo nuevo.
// Monto no positivo devuelve ErrMontoInvalido.
func (uc *UseCase) Acreditar(ctx context.Context, monto decimal.Decimal, mov Movimiento) (decimal.Decimal, error) {
	var nuevo decimal.Decimal
	err := uc.tx.RunCaja(ctx, func(cajaRepo repository.CajaRepository) error {
		var errTx error
		nuevo, errTx = uc.AcreditarEnTx(ctx, cajaRepo, monto, mov)
		return errTx
	})
	if err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}

// Debitar resta monto de la base y devuelve el saldo nuevo. Si monto es
// mayor que la base al momento de la transacción, ErrSaldoInsuficiente
// y la base queda intacta.
func (uc *UseCase) Debitar(ctx context.Context, monto decimal.Decimal, mov Movimiento) (decimal.Decimal, error) {
	var nuevo decimal.Decimal
	err := uc.tx.RunCaja(ctx, func(cajaRepo repository.CajaRepository) error {
		var errTx error
		nuevo, errTx = uc.DebitarEnTx(ctx, cajaRepo, monto, mov)
		return errTx
	})
	if err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}

// EstablecerBase fija la base en un valor absoluto (apertura de turno).
// Es una anulación administrativa: no verifica suficiencia, solo que el
// valor no sea negativo.
func (uc *UseCase) EstablecerBase(ctx context.Context, monto decimal.Decimal, mov Movimiento) (decimal.Decimal, error) {
	if monto.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrMontoInvalido, monto)
	}
	err := uc.tx.RunCaja(ctx, func(cajaRepo repository.CajaRepository) error {
		caja, err := cajaRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if caja == nil {
			return domain.ErrNotFound
		}
		if err := cajaRepo.Set(ctx, monto); err != nil {
			return err
		}
		return cajaRepo.RegistrarMovimiento(ctx, uc.movimiento(entity.MovimientoCajaAjuste, monto, caja.BaseActual, monto, mov))
	})
	if err != nil {
		return decimal.Zero, err
	}
	return monto, nil
}

// Saldo lectura simple de la base (puede quedar vieja; solo informativa).
func (uc *UseCase) Saldo(ctx context.Context) (decimal.Decimal, error) {
	var base decimal.Decimal
	err := uc.tx.RunCaja(ctx, func(cajaRepo repository.CajaRepository) error {
		caja, err := cajaRepo.Get(ctx)
		if err != nil {
			return err
		}
		if caja == nil {
			return domain.ErrNotFound
		}
		base = caja.BaseActual
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return base, nil
}

// AcreditarEnTx ejecuta el crédito con un repositorio ya atado a la
// transacción del caller (venta que ingresa efectivo a la caja).
func (uc *UseCase) AcreditarEnTx(ctx context.Context, cajaRepo repository.CajaRepository, monto decimal.Decimal, mov Movimiento) (decimal.Decimal, error) {
	if !monto.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrMontoInvalido, monto)
	}
	caja, err := cajaRepo.GetForUpdate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if caja == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	nuevo := caja.BaseActual.Add(monto)
	if err := cajaRepo.Set(ctx, nuevo); err != nil {
		return decimal.Zero, err
	}
	if err := cajaRepo.RegistrarMovimiento(ctx, uc.movimiento(entity.MovimientoCajaCredito, monto, caja.BaseActual, nuevo, mov)); err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}

// DebitarEnTx ejecuta el débito con un repositorio ya atado a la
// transacción del caller (compra o gasto pagado en efectivo). La
// verificación de fondos ocurre aquí, contra el saldo releído.
func (uc *UseCase) DebitarEnTx(ctx context.Context, cajaRepo repository.CajaRepository, monto decimal.Decimal, mov Movimiento) (decimal.Decimal, error) {
	if !monto.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrMontoInvalido, monto)
	}
	caja, err := cajaRepo.GetForUpdate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if caja == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	if monto.GreaterThan(caja.BaseActual) {
		return decimal.Zero, fmt.Errorf("%w: base %s, solicitado %s", domain.ErrSaldoInsuficiente, caja.BaseActual, monto)
	}
	nuevo := caja.BaseActual.Sub(monto)
	if err := cajaRepo.Set(ctx, nuevo); err != nil {
		return decimal.Zero, err
	}
	if err := cajaRepo.RegistrarMovimiento(ctx, uc.movimiento(entity.MovimientoCajaDebito, monto, caja.BaseActual, nuevo, mov)); err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}

// Movimientos historial reciente de caja.
func (uc *UseCase) Movimientos(ctx context.Context, limit, offset int) ([]*entity.MovimientoCaja, error) {
	var movs []*entity.MovimientoCaja
	err := uc.tx.RunCaja(ctx, func(cajaRepo repository.CajaRepository) error {
		var errTx error
		movs, errTx = cajaRepo.ListarMovimientos(ctx, limit, offset)
		return errTx
	})
	if err != nil {
		return nil, err
	}
	return movs, nil
}

func (uc *UseCase) movimiento(tipo string, monto, anterior, nuevo decimal.Decimal, mov Movimiento) *entity.MovimientoCaja {
	return &entity.MovimientoCaja{
		ID:            uuid.New().String(),
		Tipo:          tipo,
		Monto:         monto,
		SaldoAnterior: anterior,
		SaldoNuevo:    nuevo,
		Referencia:    mov.Referencia,
		UsuarioUID:    mov.UsuarioUID,
		EquipoID:      uc.equipoID,
		CreatedAt:     time.Now(),
	}
}
