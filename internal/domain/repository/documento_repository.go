package repository

import (
	"context"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// DocumentoRepository puerto sobre los comprobantes emitidos y sus detalles.
type DocumentoRepository interface {
	Create(ctx context.Context, doc *entity.Documento) error
	CreateDetalle(ctx context.Context, det *entity.DetalleDocumento) error
	GetByID(ctx context.Context, id string) (*entity.Documento, error)
	GetDetalles(ctx context.Context, documentoID string) ([]*entity.DetalleDocumento, error)
	ListByModulo(ctx context.Context, modulo entity.Modulo, limit, offset int) ([]*entity.Documento, error)
}
