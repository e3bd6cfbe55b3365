package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// ArticuloRepository puerto sobre el catálogo de materiales y su stock.
type ArticuloRepository interface {
	Create(ctx context.Context, articulo *entity.Articulo) error
	Update(ctx context.Context, articulo *entity.Articulo) error
	GetByID(ctx context.Context, id string) (*entity.Articulo, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para
	// mutar stock dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Articulo, error)
	// SetStock escribe el stock ya calculado por el caso de uso.
	SetStock(ctx context.Context, id string, stock decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Articulo, error)
}
