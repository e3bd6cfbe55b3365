package equipo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalrec/chatarreria-api/internal/application/equipo"
)

// almacenEnMemoria implementa el puerto Almacen sobre un mapa, con un error
// inyectable para simular un disco dañado.
type almacenEnMemoria struct {
	valores map[string]string
	fallo   error
}

func nuevoAlmacen() *almacenEnMemoria {
	return &almacenEnMemoria{valores: map[string]string{}}
}

func (a *almacenEnMemoria) GetEquipoID(_ context.Context) (string, error) {
	return a.valores["equipo_id"], a.fallo
}

func (a *almacenEnMemoria) SetEquipoID(_ context.Context, id string) error {
	if a.fallo != nil {
		return a.fallo
	}
	a.valores["equipo_id"] = id
	return nil
}

func (a *almacenEnMemoria) GetAlias(_ context.Context) (string, error) {
	return a.valores["alias"], a.fallo
}

func (a *almacenEnMemoria) SetAlias(_ context.Context, alias string) error {
	if a.fallo != nil {
		return a.fallo
	}
	a.valores["alias"] = alias
	return nil
}

func TestObtenerOCrearEquipoID_EsIdempotente(t *testing.T) {
	almacen := nuevoAlmacen()
	prov := equipo.NewProveedor(almacen)
	ctx := context.Background()

	id, err := prov.ObtenerOCrearEquipoID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, almacen.valores["equipo_id"], "el id generado queda persistido")

	otra, err := prov.ObtenerOCrearEquipoID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, otra, "llamadas repetidas devuelven la misma identidad")
}

func TestObtenerOCrearEquipoID_RespetaElPersistido(t *testing.T) {
	almacen := nuevoAlmacen()
	almacen.valores["equipo_id"] = "id-ya-existente"

	id, err := equipo.NewProveedor(almacen).ObtenerOCrearEquipoID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id-ya-existente", id)
}

func TestObtenerOCrearEquipoID_PropagaErrorDeDisco(t *testing.T) {
	almacen := nuevoAlmacen()
	almacen.fallo = errors.New("disco dañado")

	_, err := equipo.NewProveedor(almacen).ObtenerOCrearEquipoID(context.Background())
	assert.Error(t, err)
}

func TestAlias_PorDefectoYPersonalizado(t *testing.T) {
	almacen := nuevoAlmacen()
	prov := equipo.NewProveedor(almacen)
	ctx := context.Background()

	alias, err := prov.Alias(ctx, "abcdef12-3456")
	require.NoError(t, err)
	assert.Equal(t, "EQUIPO-ABCDEF12", alias, "sin alias configurado se sintetiza uno del id")

	fijado, err := prov.EstablecerAlias(ctx, "  Caja principal  ", "abcdef12-3456")
	require.NoError(t, err)
	assert.Equal(t, "Caja principal", fijado, "el alias se recorta antes de persistir")

	alias, err = prov.Alias(ctx, "abcdef12-3456")
	require.NoError(t, err)
	assert.Equal(t, "Caja principal", alias)
}

func TestEstablecerAlias_VacioCaeAlPorDefecto(t *testing.T) {
	prov := equipo.NewProveedor(nuevoAlmacen())

	alias, err := prov.EstablecerAlias(context.Background(), "   ", "abcdef12-3456")
	require.NoError(t, err)
	assert.Equal(t, "EQUIPO-ABCDEF12", alias)
}

func TestIdentidad(t *testing.T) {
	almacen := nuevoAlmacen()
	prov := equipo.NewProveedor(almacen)

	identidad, err := prov.Identidad(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, identidad.EquipoID)
	assert.Contains(t, identidad.Alias, "EQUIPO-", "sin configuración el alias es el sintetizado")
}
