package inventario

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// UseCase muta el stock de artículos. El delta siempre se aplica sobre el
// stock releído con bloqueo de fila dentro de la transacción del caller:
// en los flujos de compra y venta nunca se llama por fuera de la
// transacción que también toca la caja y el consecutivo.
type UseCase struct {
	tx TxRunner
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// AplicarDeltaEnTx suma delta (negativo para salidas) al stock del artículo
// usando el repositorio atado a la transacción del caller y devuelve el
// stock nuevo. Si el delta es negativo y excede el stock actual,
// ErrStockInsuficiente: la transacción completa del caller debe abortar
// sin efectos parciales.
func (uc *UseCase) AplicarDeltaEnTx(ctx context.Context, articuloRepo repository.ArticuloRepository, articuloID string, delta decimal.Decimal) (decimal.Decimal, error) {
	articulo, err := articuloRepo.GetForUpdate(ctx, articuloID)
	if err != nil {
		return decimal.Zero, err
	}
	if articulo == nil {
		return decimal.Zero, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, articuloID)
	}
	if delta.IsNegative() && delta.Neg().GreaterThan(articulo.Stock) {
		return decimal.Zero, fmt.Errorf("%w: %s tiene %s, solicitado %s",
			domain.ErrStockInsuficiente, articulo.Nombre, articulo.Stock, delta.Neg())
	}
	nuevo := articulo.Stock.Add(delta)
	if err := articuloRepo.SetStock(ctx, articuloID, nuevo); err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}

// AjustarStock ajuste administrativo aislado (conteo físico). Abre su
// propia transacción; los flujos de compra/venta no pasan por aquí.
func (uc *UseCase) AjustarStock(ctx context.Context, articuloID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var nuevo decimal.Decimal
	err := uc.tx.RunInventario(ctx, func(articuloRepo repository.ArticuloRepository) error {
		var errTx error
		nuevo, errTx = uc.AplicarDeltaEnTx(ctx, articuloRepo, articuloID, delta)
		return errTx
	})
	if err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}
