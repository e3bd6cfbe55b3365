package entity

import (
	"fmt"

	"github.com/metalrec/chatarreria-api/internal/domain"
)

// Modulo identifica cada serie de numeración de documentos del negocio.
// Es una enumeración cerrada: cualquier otro valor es ErrModuloDesconocido.
type Modulo string

const (
	ModuloCompras       Modulo = "compras"       // facturas de compra a recicladores
	ModuloVentas        Modulo = "ventas"        // facturas de venta al por mayor
	ModuloGastos        Modulo = "gastos"        // comprobantes de egreso
	ModuloVentasMenores Modulo = "ventasMenores" // ventas de mostrador
	ModuloRemisiones    Modulo = "remisiones"    // remisiones de entrega
)

// FormatoSerie define cómo se imprime el número de una serie:
// prefijo + separador + serial rellenado con ceros.
type FormatoSerie struct {
	Prefijo   string
	Separador string
	Relleno   int
}

// formatos tabla exhaustiva por módulo. Los prefijos y anchos son fijos
// porque aparecen en documentos ya emitidos; cambiarlos rompe la serie.
var formatos = map[Modulo]FormatoSerie{
	ModuloCompras:       {Prefijo: "FAC", Separador: "", Relleno: 5},
	ModuloVentas:        {Prefijo: "FAV", Separador: "", Relleno: 5},
	ModuloGastos:        {Prefijo: "GAS", Separador: "", Relleno: 5},
	ModuloVentasMenores: {Prefijo: "FAVMI", Separador: "", Relleno: 5},
	ModuloRemisiones:    {Prefijo: "REM", Separador: "-", Relleno: 6},
}

// Modulos devuelve los cinco módulos conocidos en orden estable.
func Modulos() []Modulo {
	return []Modulo{ModuloCompras, ModuloVentas, ModuloGastos, ModuloVentasMenores, ModuloRemisiones}
}

// ParseModulo valida un nombre de módulo recibido por la API.
func ParseModulo(s string) (Modulo, error) {
	m := Modulo(s)
	if !m.Valido() {
		return "", domain.ErrModuloDesconocido
	}
	return m, nil
}

// Valido indica si el módulo pertenece a la enumeración.
func (m Modulo) Valido() bool {
	_, ok := formatos[m]
	return ok
}

// Formato devuelve el formato de impresión de la serie.
func (m Modulo) Formato() FormatoSerie {
	return formatos[m]
}

// FormatearNumero produce el número de documento imprimible.
// Ej: compras 1 → "FAC00001"; remisiones 123456 → "REM-123456".
func (m Modulo) FormatearNumero(n int64) string {
	f := formatos[m]
	return fmt.Sprintf("%s%s%0*d", f.Prefijo, f.Separador, f.Relleno, n)
}
