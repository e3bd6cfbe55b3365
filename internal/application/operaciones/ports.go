package operaciones

import (
	"context"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción atómica con todos los
// repositorios que toca la emisión de un documento atados a esa
// transacción: consecutivo, bloque, caja, stock y el documento mismo son
// todo-o-nada. Un solo fallo (stock insuficiente en cualquier artículo,
// saldo insuficiente, contador ausente) revierte el conjunto completo.
type TxRunner interface {
	RunOperacion(ctx context.Context, fn func(
		contadorRepo repository.ContadorRepository,
		bloqueRepo repository.BloqueRepository,
		cajaRepo repository.CajaRepository,
		articuloRepo repository.ArticuloRepository,
		documentoRepo repository.DocumentoRepository,
	) error) error
}

// RemisionPDFGenerator genera la representación imprimible de una remisión.
type RemisionPDFGenerator interface {
	GenerarRemisionPDF(ctx context.Context, doc *entity.Documento, detalles []*entity.DetalleDocumento, negocio DatosNegocio) ([]byte, error)
}

// DatosNegocio encabezado del negocio para los documentos impresos.
type DatosNegocio struct {
	Nombre    string
	NIT       string
	Direccion string
	Telefono  string
}
