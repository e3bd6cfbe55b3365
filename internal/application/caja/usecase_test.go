package caja_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalrec/chatarreria-api/internal/application/caja"
	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Caja en memoria con semántica transaccional: los cambios de un fn que
// falla se descartan completos.
// ──────────────────────────────────────────────────────────────────────────────

type cajaEnMemoria struct {
	base        decimal.Decimal
	movimientos []*entity.MovimientoCaja
}

type fakeCajaRunner struct {
	st *cajaEnMemoria
}

func (r *fakeCajaRunner) RunCaja(_ context.Context, fn func(cajaRepo repository.CajaRepository) error) error {
	baseSnap := r.st.base
	movSnap := len(r.st.movimientos)
	if err := fn(&fakeCajaRepo{st: r.st}); err != nil {
		r.st.base = baseSnap
		r.st.movimientos = r.st.movimientos[:movSnap]
		return err
	}
	return nil
}

type fakeCajaRepo struct{ st *cajaEnMemoria }

func (f *fakeCajaRepo) Get(_ context.Context) (*entity.Caja, error) {
	return &entity.Caja{BaseActual: f.st.base}, nil
}

func (f *fakeCajaRepo) GetForUpdate(ctx context.Context) (*entity.Caja, error) {
	return f.Get(ctx)
}

func (f *fakeCajaRepo) Set(_ context.Context, base decimal.Decimal) error {
	f.st.base = base
	return nil
}

func (f *fakeCajaRepo) RegistrarMovimiento(_ context.Context, mov *entity.MovimientoCaja) error {
	f.st.movimientos = append(f.st.movimientos, mov)
	return nil
}

func (f *fakeCajaRepo) ListarMovimientos(_ context.Context, limit, offset int) ([]*entity.MovimientoCaja, error) {
	out := make([]*entity.MovimientoCaja, len(f.st.movimientos))
	// más reciente primero, como el almacén real
	for i, m := range f.st.movimientos {
		out[len(out)-1-i] = m
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func nuevaCaja(base string) (*caja.UseCase, *cajaEnMemoria) {
	st := &cajaEnMemoria{base: decimal.RequireFromString(base)}
	return caja.NewUseCase(&fakeCajaRunner{st: st}, "eq-1"), st
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCaja_AcreditarYDebitar(t *testing.T) {
	uc, st := nuevaCaja("1000")
	ctx := context.Background()

	nuevo, err := uc.Acreditar(ctx, dec("500.50"), caja.Movimiento{Referencia: "FAV00001", UsuarioUID: "u-1"})
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(dec("1500.50")), "saldo tras el crédito: %s", nuevo)

	nuevo, err = uc.Debitar(ctx, dec("300"), caja.Movimiento{Referencia: "GAS00001", UsuarioUID: "u-1"})
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(dec("1200.50")), "saldo tras el débito: %s", nuevo)

	require.Len(t, st.movimientos, 2, "cada mutación deja su rastro en el historial")
	assert.Equal(t, entity.MovimientoCajaCredito, st.movimientos[0].Tipo)
	assert.Equal(t, entity.MovimientoCajaDebito, st.movimientos[1].Tipo)
	assert.True(t, st.movimientos[1].SaldoAnterior.Equal(dec("1500.50")))
	assert.True(t, st.movimientos[1].SaldoNuevo.Equal(dec("1200.50")))
	assert.Equal(t, "eq-1", st.movimientos[0].EquipoID)
}

func TestCaja_DebitarMasQueElSaldo(t *testing.T) {
	uc, st := nuevaCaja("100")

	_, err := uc.Debitar(context.Background(), dec("100.01"), caja.Movimiento{UsuarioUID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrSaldoInsuficiente)
	assert.True(t, st.base.Equal(dec("100")), "un débito rechazado no toca la base")
	assert.Empty(t, st.movimientos, "un débito rechazado no deja movimiento")
}

func TestCaja_DebitarExactamenteElSaldo(t *testing.T) {
	uc, _ := nuevaCaja("250")

	nuevo, err := uc.Debitar(context.Background(), dec("250"), caja.Movimiento{UsuarioUID: "u-1"})
	require.NoError(t, err, "la base puede quedar exactamente en cero")
	assert.True(t, nuevo.IsZero())
}

func TestCaja_MontosInvalidos(t *testing.T) {
	uc, _ := nuevaCaja("100")
	ctx := context.Background()

	for _, monto := range []string{"0", "-5"} {
		_, err := uc.Acreditar(ctx, dec(monto), caja.Movimiento{UsuarioUID: "u-1"})
		assert.ErrorIs(t, err, domain.ErrMontoInvalido, "acreditar %s", monto)

		_, err = uc.Debitar(ctx, dec(monto), caja.Movimiento{UsuarioUID: "u-1"})
		assert.ErrorIs(t, err, domain.ErrMontoInvalido, "debitar %s", monto)
	}
}

func TestCaja_EstablecerBase(t *testing.T) {
	uc, st := nuevaCaja("750")
	ctx := context.Background()

	// La apertura de turno puede bajar la base sin verificación de fondos.
	nuevo, err := uc.EstablecerBase(ctx, dec("50"), caja.Movimiento{UsuarioUID: "admin"})
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(dec("50")))
	require.Len(t, st.movimientos, 1)
	assert.Equal(t, entity.MovimientoCajaAjuste, st.movimientos[0].Tipo)
	assert.True(t, st.movimientos[0].SaldoAnterior.Equal(dec("750")))

	// Cero es válido (caja vacía); negativo no.
	_, err = uc.EstablecerBase(ctx, dec("0"), caja.Movimiento{UsuarioUID: "admin"})
	assert.NoError(t, err)

	_, err = uc.EstablecerBase(ctx, dec("-1"), caja.Movimiento{UsuarioUID: "admin"})
	assert.ErrorIs(t, err, domain.ErrMontoInvalido)
}

func TestCaja_Saldo(t *testing.T) {
	uc, _ := nuevaCaja("123.45")

	base, err := uc.Saldo(context.Background())
	require.NoError(t, err)
	assert.True(t, base.Equal(dec("123.45")))
}

func TestCaja_MovimientosMasRecientePrimero(t *testing.T) {
	uc, _ := nuevaCaja("0")
	ctx := context.Background()

	_, err := uc.Acreditar(ctx, dec("10"), caja.Movimiento{Referencia: "a", UsuarioUID: "u-1"})
	require.NoError(t, err)
	_, err = uc.Acreditar(ctx, dec("20"), caja.Movimiento{Referencia: "b", UsuarioUID: "u-1"})
	require.NoError(t, err)

	movs, err := uc.Movimientos(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "b", movs[0].Referencia, "el más reciente va primero")
	assert.Equal(t, "a", movs[1].Referencia)
}
