package consecutivos_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalrec/chatarreria-api/internal/application/consecutivos"
	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria: mismo contrato que el almacén real, con inyección
// determinista de conflictos de concurrencia.
// ──────────────────────────────────────────────────────────────────────────────

type llaveBloque struct {
	modulo  entity.Modulo
	equipo  string
	usuario string
}

type almacen struct {
	mu         sync.Mutex
	contadores map[entity.Modulo]int64 // presencia = serie aprovisionada
	bloques    map[llaveBloque]*entity.Bloque
	conflictos int // transacciones que fallarán con conflicto antes de la primera exitosa
}

func nuevoAlmacen(modulos ...entity.Modulo) *almacen {
	st := &almacen{
		contadores: make(map[entity.Modulo]int64),
		bloques:    make(map[llaveBloque]*entity.Bloque),
	}
	for _, m := range modulos {
		st.contadores[m] = 0
	}
	return st
}

var errConflictoSimulado = errors.New("simulado: could not serialize access")

// fakeRunner aplica la misma política del runner real: reintenta la
// transacción completa ante conflicto y, agotados los intentos, devuelve
// ErrTransaccionAbortada. Los efectos de un intento fallido se descartan.
type fakeRunner struct {
	st *almacen
}

const maxIntentosFake = 3

func (r *fakeRunner) RunAtomic(ctx context.Context, fn func(
	contadorRepo repository.ContadorRepository,
	bloqueRepo repository.BloqueRepository,
) error) error {
	var lastErr error
	for intento := 0; intento < maxIntentosFake; intento++ {
		err := r.unaTransaccion(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errConflictoSimulado) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w tras %d intentos: %v", domain.ErrTransaccionAbortada, maxIntentosFake, lastErr)
}

func (r *fakeRunner) unaTransaccion(ctx context.Context, fn func(
	contadorRepo repository.ContadorRepository,
	bloqueRepo repository.BloqueRepository,
) error) error {
	r.st.mu.Lock()
	if r.st.conflictos > 0 {
		r.st.conflictos--
		r.st.mu.Unlock()
		return errConflictoSimulado
	}
	// Snapshot para revertir si fn falla, como el rollback real.
	contSnap := make(map[entity.Modulo]int64, len(r.st.contadores))
	for k, v := range r.st.contadores {
		contSnap[k] = v
	}
	bloqSnap := make(map[llaveBloque]*entity.Bloque, len(r.st.bloques))
	for k, v := range r.st.bloques {
		c := *v
		bloqSnap[k] = &c
	}
	r.st.mu.Unlock()

	err := fn(&fakeContadorRepo{st: r.st}, &fakeBloqueRepo{st: r.st})
	if err != nil {
		r.st.mu.Lock()
		r.st.contadores = contSnap
		r.st.bloques = bloqSnap
		r.st.mu.Unlock()
	}
	return err
}

type fakeContadorRepo struct{ st *almacen }

func (f *fakeContadorRepo) Get(_ context.Context, modulo entity.Modulo) (*entity.ContadorSerie, error) {
	return f.GetForUpdate(context.Background(), modulo)
}

func (f *fakeContadorRepo) GetForUpdate(_ context.Context, modulo entity.Modulo) (*entity.ContadorSerie, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	ultimo, ok := f.st.contadores[modulo]
	if !ok {
		return nil, nil
	}
	return &entity.ContadorSerie{Modulo: modulo, UltimoReservado: ultimo}, nil
}

func (f *fakeContadorRepo) Set(_ context.Context, modulo entity.Modulo, ultimoReservado int64) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.st.contadores[modulo] = ultimoReservado
	return nil
}

type fakeBloqueRepo struct{ st *almacen }

func (f *fakeBloqueRepo) Get(_ context.Context, modulo entity.Modulo, equipoID, usuarioUID string) (*entity.Bloque, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	b, ok := f.st.bloques[llaveBloque{modulo, equipoID, usuarioUID}]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (f *fakeBloqueRepo) Upsert(_ context.Context, bloque *entity.Bloque) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	c := *bloque
	f.st.bloques[llaveBloque{bloque.Modulo, bloque.EquipoID, bloque.UsuarioUID}] = &c
	return nil
}

func (f *fakeBloqueRepo) TomarSiguiente(_ context.Context, modulo entity.Modulo, equipoID, usuarioUID string) (int64, bool, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	b, ok := f.st.bloques[llaveBloque{modulo, equipoID, usuarioUID}]
	if !ok || b.Siguiente > b.Fin {
		return 0, false, nil
	}
	n := b.Siguiente
	b.Siguiente++
	return n, true, nil
}

func nuevoAsignador(st *almacen) *consecutivos.Asignador {
	return consecutivos.NewAsignador(&fakeRunner{st: st})
}

func nuevoConsumidor(st *almacen, equipoID string, tamano int) *consecutivos.Consumidor {
	return consecutivos.NewConsumidor(nuevoAsignador(st), &fakeBloqueRepo{st: st}, equipoID, equipoID, tamano)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del asignador de bloques
// ──────────────────────────────────────────────────────────────────────────────

func TestReservarBloque_PrimerBloqueArrancaEnUno(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	a := nuevoAsignador(st)

	bloque, err := a.ReservarBloque(context.Background(), "eq-1", "u-1", entity.ModuloCompras, 0, "admin")
	require.NoError(t, err)

	assert.Equal(t, int64(1), bloque.Inicio, "el primer bloque debe arrancar en 1")
	assert.Equal(t, int64(100), bloque.Fin, "tamaño por defecto de 100")
	assert.Equal(t, int64(1), bloque.Siguiente, "el cursor debe arrancar en Inicio")
	assert.Equal(t, int64(100), st.contadores[entity.ModuloCompras], "el contador global avanza al fin del bloque")
}

func TestReservarBloque_BloquesConsecutivosNoSeSolapan(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloVentas)
	a := nuevoAsignador(st)
	ctx := context.Background()

	b1, err := a.ReservarBloque(ctx, "eq-1", "u-1", entity.ModuloVentas, 0, "admin")
	require.NoError(t, err)
	b2, err := a.ReservarBloque(ctx, "eq-1", "u-1", entity.ModuloVentas, 0, "admin")
	require.NoError(t, err)

	assert.Equal(t, int64(1), b1.Inicio)
	assert.Equal(t, int64(100), b1.Fin)
	assert.Equal(t, b1.Fin+1, b2.Inicio, "el segundo bloque arranca justo después del primero")
	assert.Equal(t, int64(200), b2.Fin)
}

func TestReservarBloque_DosEquiposRangosDisjuntos(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	a := nuevoAsignador(st)
	ctx := context.Background()

	b1, err := a.ReservarBloque(ctx, "eq-1", "u-1", entity.ModuloCompras, 0, "admin")
	require.NoError(t, err)
	b2, err := a.ReservarBloque(ctx, "eq-2", "u-2", entity.ModuloCompras, 0, "admin")
	require.NoError(t, err)

	assert.True(t, b1.Fin < b2.Inicio || b2.Fin < b1.Inicio,
		"los bloques de equipos distintos nunca se solapan: [%d-%d] vs [%d-%d]",
		b1.Inicio, b1.Fin, b2.Inicio, b2.Fin)
}

func TestReservarBloque_TamanoPersonalizado(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloGastos)
	a := nuevoAsignador(st)

	bloque, err := a.ReservarBloque(context.Background(), "eq-1", "u-1", entity.ModuloGastos, 25, "admin")
	require.NoError(t, err)

	assert.Equal(t, int64(1), bloque.Inicio)
	assert.Equal(t, int64(25), bloque.Fin)
	assert.Equal(t, 25, bloque.Tamano)
}

func TestReservarBloque_PropietarioVacio(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	a := nuevoAsignador(st)

	_, err := a.ReservarBloque(context.Background(), "eq-1", "   ", entity.ModuloCompras, 0, "admin")
	assert.ErrorIs(t, err, domain.ErrPropietarioInvalido)
}

func TestReservarBloque_ModuloDesconocido(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	a := nuevoAsignador(st)

	_, err := a.ReservarBloque(context.Background(), "eq-1", "u-1", entity.Modulo("devoluciones"), 0, "admin")
	assert.ErrorIs(t, err, domain.ErrModuloDesconocido)
}

func TestReservarBloque_ContadorNoAprovisionado(t *testing.T) {
	st := nuevoAlmacen() // sin series
	a := nuevoAsignador(st)

	_, err := a.ReservarBloque(context.Background(), "eq-1", "u-1", entity.ModuloVentas, 0, "admin")
	assert.ErrorIs(t, err, domain.ErrContadorNoExiste)
}

func TestReservarBloque_ContencionReintentaYGana(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	st.conflictos = maxIntentosFake - 1 // los primeros intentos chocan, el último gana
	a := nuevoAsignador(st)

	bloque, err := a.ReservarBloque(context.Background(), "eq-1", "u-1", entity.ModuloCompras, 0, "admin")
	require.NoError(t, err, "la contención transitoria se resuelve con reintentos")
	assert.Equal(t, int64(1), bloque.Inicio)
}

func TestReservarBloque_ContencionAgotada(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	st.conflictos = maxIntentosFake // nunca deja pasar una transacción
	a := nuevoAsignador(st)

	_, err := a.ReservarBloque(context.Background(), "eq-1", "u-1", entity.ModuloCompras, 0, "admin")
	assert.ErrorIs(t, err, domain.ErrConflictoAsignacion)
	assert.Equal(t, int64(0), st.contadores[entity.ModuloCompras],
		"una reserva fallida no debe mover el contador global")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del consumidor
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumidor_NumeracionSecuencialYFormato(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	c := nuevoConsumidor(st, "eq-1", 0)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		numero, err := c.SiguienteNumero(ctx, entity.ModuloCompras, "u-1")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("FAC%05d", i), numero)
	}
}

func TestConsumidor_AgotamientoReservaNuevoBloque(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloVentas)
	c := nuevoConsumidor(st, "eq-1", 5)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		n, err := c.SiguienteSerial(ctx, entity.ModuloVentas, "u-1")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	// El sexto consumo agota el bloque 1-5 y reserva 6-10 sin intervención.
	n, err := c.SiguienteSerial(ctx, entity.ModuloVentas, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), n, "el nuevo bloque continúa donde terminó el anterior")

	vigente, err := c.BloqueVigente(ctx, entity.ModuloVentas, "u-1")
	require.NoError(t, err)
	require.NotNil(t, vigente)
	assert.Equal(t, int64(6), vigente.Inicio)
	assert.Equal(t, int64(10), vigente.Fin)
}

func TestConsumidor_SinDuplicadosEntreDosEquipos(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	c1 := nuevoConsumidor(st, "eq-1", 100)
	c2 := nuevoConsumidor(st, "eq-2", 100)
	ctx := context.Background()

	vistos := make(map[int64]string)
	consumir := func(c *consecutivos.Consumidor, usuario string, cuantos int) {
		for i := 0; i < cuantos; i++ {
			n, err := c.SiguienteSerial(ctx, entity.ModuloCompras, usuario)
			require.NoError(t, err)
			if previo, repetido := vistos[n]; repetido {
				t.Fatalf("serial %d emitido por %s y por %s", n, previo, usuario)
			}
			vistos[n] = usuario
		}
	}

	// Consumo intercalado que cruza el límite de bloque de ambos equipos.
	consumir(c1, "u-1", 80)
	consumir(c2, "u-2", 80)
	consumir(c1, "u-1", 70)
	consumir(c2, "u-2", 70)

	assert.Len(t, vistos, 300, "300 consumos deben producir 300 seriales únicos")
}

func TestConsumidor_UsuariosDelMismoEquipoNoComparten(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloVentasMenores)
	c := nuevoConsumidor(st, "eq-1", 0)
	ctx := context.Background()

	n1, err := c.SiguienteSerial(ctx, entity.ModuloVentasMenores, "cajero-a")
	require.NoError(t, err)
	n2, err := c.SiguienteSerial(ctx, entity.ModuloVentasMenores, "cajero-b")
	require.NoError(t, err)

	assert.Equal(t, int64(1), n1, "cada usuario consume de su propio bloque")
	assert.Equal(t, int64(101), n2, "el bloque del segundo usuario viene después del primero")
}

func TestConsumidor_ReservaFallidaConBloqueAgotado(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloGastos)
	c := nuevoConsumidor(st, "eq-1", 2)
	ctx := context.Background()

	_, err := c.SiguienteSerial(ctx, entity.ModuloGastos, "u-1")
	require.NoError(t, err)
	_, err = c.SiguienteSerial(ctx, entity.ModuloGastos, "u-1")
	require.NoError(t, err)

	// Bloque agotado y el contador global inalcanzable por contención.
	st.conflictos = maxIntentosFake * maxIntentosFake
	_, err = c.SiguienteSerial(ctx, entity.ModuloGastos, "u-1")
	assert.ErrorIs(t, err, domain.ErrBloqueAgotado,
		"si había bloque y la reasignación falla, el error es de bloque agotado")
}

func TestConsumidor_ModuloDesconocido(t *testing.T) {
	st := nuevoAlmacen(entity.ModuloCompras)
	c := nuevoConsumidor(st, "eq-1", 0)

	_, err := c.SiguienteSerial(context.Background(), entity.Modulo("notas"), "u-1")
	assert.ErrorIs(t, err, domain.ErrModuloDesconocido)
}
