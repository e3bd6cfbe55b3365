package inventario

import (
	"context"

	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción atómica con el repositorio
// de artículos atado a esa transacción.
type TxRunner interface {
	RunInventario(ctx context.Context, fn func(articuloRepo repository.ArticuloRepository) error) error
}
