package consecutivos

import (
	"context"

	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción atómica contra el almacén
// compartido, pasando repositorios atados a esa transacción. Ante un
// conflicto de escritura concurrente el runner reintenta fn un número
// acotado de veces; si los agota devuelve domain.ErrTransaccionAbortada.
// fn debe releer todo lo que escriba: puede ejecutarse más de una vez.
type TxRunner interface {
	RunAtomic(ctx context.Context, fn func(
		contadorRepo repository.ContadorRepository,
		bloqueRepo repository.BloqueRepository,
	) error) error
}
