package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/metalrec/chatarreria-api/internal/application/dto"
	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// ArticuloUseCase CRUD del catálogo de materiales. El stock no se edita
// aquí: lo mueven las compras, las ventas y el ajuste de inventario.
type ArticuloUseCase struct {
	repo repository.ArticuloRepository
}

// NewArticuloUseCase construye el caso de uso.
func NewArticuloUseCase(repo repository.ArticuloRepository) *ArticuloUseCase {
	return &ArticuloUseCase{repo: repo}
}

// Create da de alta un material con stock cero.
func (uc *ArticuloUseCase) Create(ctx context.Context, in dto.ArticuloRequest) (*dto.ArticuloResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" || in.PrecioCompra.IsNegative() || in.PrecioVenta.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	unidad := strings.TrimSpace(in.Unidad)
	if unidad == "" {
		unidad = "kg"
	}
	now := time.Now()
	articulo := &entity.Articulo{
		ID:           uuid.New().String(),
		Nombre:       nombre,
		Unidad:       unidad,
		PrecioCompra: in.PrecioCompra,
		PrecioVenta:  in.PrecioVenta,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, articulo); err != nil {
		return nil, err
	}
	return toArticuloResponse(articulo), nil
}

// Update edita nombre, unidad y precios.
func (uc *ArticuloUseCase) Update(ctx context.Context, id string, in dto.ArticuloRequest) (*dto.ArticuloResponse, error) {
	articulo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, domain.ErrNotFound
	}
	if nombre := strings.TrimSpace(in.Nombre); nombre != "" {
		articulo.Nombre = nombre
	}
	if unidad := strings.TrimSpace(in.Unidad); unidad != "" {
		articulo.Unidad = unidad
	}
	if in.PrecioCompra.IsNegative() || in.PrecioVenta.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	if !in.PrecioCompra.IsZero() {
		articulo.PrecioCompra = in.PrecioCompra
	}
	if !in.PrecioVenta.IsZero() {
		articulo.PrecioVenta = in.PrecioVenta
	}
	articulo.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, articulo); err != nil {
		return nil, err
	}
	return toArticuloResponse(articulo), nil
}

// GetByID obtiene un material.
func (uc *ArticuloUseCase) GetByID(ctx context.Context, id string) (*dto.ArticuloResponse, error) {
	articulo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, domain.ErrNotFound
	}
	return toArticuloResponse(articulo), nil
}

// List lista el catálogo.
func (uc *ArticuloUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ArticuloResponse, error) {
	articulos, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ArticuloResponse, 0, len(articulos))
	for _, a := range articulos {
		out = append(out, toArticuloResponse(a))
	}
	return out, nil
}

func toArticuloResponse(a *entity.Articulo) *dto.ArticuloResponse {
	return &dto.ArticuloResponse{
		ID:           a.ID,
		Nombre:       a.Nombre,
		Unidad:       a.Unidad,
		PrecioCompra: a.PrecioCompra,
		PrecioVenta:  a.PrecioVenta,
		Stock:        a.Stock,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
