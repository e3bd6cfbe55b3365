package local_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalrec/chatarreria-api/internal/infrastructure/local"
)

func abrirStore(t *testing.T, path string) *local.EquipoStore {
	t.Helper()
	store, err := local.NewEquipoStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEquipoStore_ValorAusenteEsCadenaVacia(t *testing.T) {
	store := abrirStore(t, filepath.Join(t.TempDir(), "equipo.db"))
	ctx := context.Background()

	id, err := store.GetEquipoID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	alias, err := store.GetAlias(ctx)
	require.NoError(t, err)
	assert.Empty(t, alias)
}

func TestEquipoStore_GuardaYRelee(t *testing.T) {
	store := abrirStore(t, filepath.Join(t.TempDir(), "equipo.db"))
	ctx := context.Background()

	require.NoError(t, store.SetEquipoID(ctx, "uuid-del-equipo"))
	require.NoError(t, store.SetAlias(ctx, "Caja principal"))

	id, err := store.GetEquipoID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "uuid-del-equipo", id)

	alias, err := store.GetAlias(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Caja principal", alias)
}

func TestEquipoStore_SobreviveReapertura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equipo.db")
	ctx := context.Background()

	store, err := local.NewEquipoStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetEquipoID(ctx, "uuid-persistente"))
	require.NoError(t, store.Close())

	// La identidad del terminal debe sobrevivir reinicios del proceso.
	reabierto := abrirStore(t, path)
	id, err := reabierto.GetEquipoID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "uuid-persistente", id)
}
