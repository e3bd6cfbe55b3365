package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

func TestFormatearNumero_TablaDeSeries(t *testing.T) {
	casos := []struct {
		modulo entity.Modulo
		serial int64
		quiere string
	}{
		{entity.ModuloCompras, 1, "FAC00001"},
		{entity.ModuloCompras, 99999, "FAC99999"},
		{entity.ModuloVentas, 42, "FAV00042"},
		{entity.ModuloGastos, 7, "GAS00007"},
		{entity.ModuloVentasMenores, 123, "FAVMI00123"},
		{entity.ModuloRemisiones, 1, "REM-000001"},
		{entity.ModuloRemisiones, 123456, "REM-123456"},
	}
	for _, c := range casos {
		assert.Equal(t, c.quiere, c.modulo.FormatearNumero(c.serial),
			"módulo %s, serial %d", c.modulo, c.serial)
	}
}

func TestFormatearNumero_DesbordaElRelleno(t *testing.T) {
	// Un serial más ancho que el relleno no se trunca: la serie sigue.
	assert.Equal(t, "FAC100000", entity.ModuloCompras.FormatearNumero(100000))
}

func TestParseModulo(t *testing.T) {
	for _, m := range entity.Modulos() {
		parsed, err := entity.ParseModulo(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := entity.ParseModulo("devoluciones")
	assert.ErrorIs(t, err, domain.ErrModuloDesconocido)

	_, err = entity.ParseModulo("")
	assert.ErrorIs(t, err, domain.ErrModuloDesconocido)

	// El nombre es sensible a mayúsculas: la serie se guarda tal cual.
	_, err = entity.ParseModulo("Compras")
	assert.ErrorIs(t, err, domain.ErrModuloDesconocido)
}

func TestBloque_AgotadoYRestantes(t *testing.T) {
	b := &entity.Bloque{Inicio: 1, Fin: 5, Siguiente: 1}

	assert.False(t, b.Agotado())
	assert.Equal(t, int64(5), b.Restantes())

	b.Siguiente = 5
	assert.False(t, b.Agotado(), "el último número aún está disponible")
	assert.Equal(t, int64(1), b.Restantes())

	b.Siguiente = 6
	assert.True(t, b.Agotado())
	assert.Equal(t, int64(0), b.Restantes())
}
