package caja

import (
	"context"

	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción atómica con el repositorio
// de caja atado a esa transacción. Reintenta ante conflictos un número
// acotado de veces y devuelve domain.ErrTransaccionAbortada si los agota.
type TxRunner interface {
	RunCaja(ctx context.Context, fn func(cajaRepo repository.CajaRepository) error) error
}
