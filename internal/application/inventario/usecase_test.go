package inventario_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalrec/chatarreria-api/internal/application/inventario"
	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

type articulosEnMemoria struct {
	articulos map[string]*entity.Articulo
}

type fakeInventarioRunner struct {
	st *articulosEnMemoria
}

func (r *fakeInventarioRunner) RunInventario(_ context.Context, fn func(articuloRepo repository.ArticuloRepository) error) error {
	snap := make(map[string]*entity.Articulo, len(r.st.articulos))
	for k, v := range r.st.articulos {
		c := *v
		snap[k] = &c
	}
	if err := fn(&fakeArticuloRepo{st: r.st}); err != nil {
		r.st.articulos = snap
		return err
	}
	return nil
}

type fakeArticuloRepo struct{ st *articulosEnMemoria }

func (f *fakeArticuloRepo) Create(_ context.Context, a *entity.Articulo) error {
	c := *a
	f.st.articulos[a.ID] = &c
	return nil
}

func (f *fakeArticuloRepo) Update(_ context.Context, a *entity.Articulo) error {
	existente, ok := f.st.articulos[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existente.Nombre, existente.Unidad = a.Nombre, a.Unidad
	existente.PrecioCompra, existente.PrecioVenta = a.PrecioCompra, a.PrecioVenta
	return nil
}

func (f *fakeArticuloRepo) GetByID(_ context.Context, id string) (*entity.Articulo, error) {
	a, ok := f.st.articulos[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (f *fakeArticuloRepo) GetForUpdate(ctx context.Context, id string) (*entity.Articulo, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeArticuloRepo) SetStock(_ context.Context, id string, stock decimal.Decimal) error {
	a, ok := f.st.articulos[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Stock = stock
	return nil
}

func (f *fakeArticuloRepo) List(_ context.Context, _, _ int) ([]*entity.Articulo, error) {
	out := make([]*entity.Articulo, 0, len(f.st.articulos))
	for _, a := range f.st.articulos {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func nuevoInventario(stock string) (*inventario.UseCase, *articulosEnMemoria) {
	st := &articulosEnMemoria{articulos: map[string]*entity.Articulo{
		"cobre": {ID: "cobre", Nombre: "Cobre", Stock: decimal.RequireFromString(stock)},
	}}
	return inventario.NewUseCase(&fakeInventarioRunner{st: st}), st
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAjustarStock_EntradaYSalida(t *testing.T) {
	uc, st := nuevoInventario("10.5")
	ctx := context.Background()

	nuevo, err := uc.AjustarStock(ctx, "cobre", dec("4.5"))
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(dec("15")))

	nuevo, err = uc.AjustarStock(ctx, "cobre", dec("-15"))
	require.NoError(t, err, "bajar el stock exactamente a cero es válido")
	assert.True(t, nuevo.IsZero())
	assert.True(t, st.articulos["cobre"].Stock.IsZero())
}

func TestAjustarStock_SalidaMayorQueElStock(t *testing.T) {
	uc, st := nuevoInventario("3")

	_, err := uc.AjustarStock(context.Background(), "cobre", dec("-3.001"))
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.True(t, st.articulos["cobre"].Stock.Equal(dec("3")),
		"un ajuste rechazado no toca el stock")
}

func TestAjustarStock_ArticuloInexistente(t *testing.T) {
	uc, _ := nuevoInventario("1")

	_, err := uc.AjustarStock(context.Background(), "oro", dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
