package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

var _ repository.ArticuloRepository = (*ArticuloRepo)(nil)

// ArticuloRepo implementación de ArticuloRepository sobre PostgreSQL
// (usable con pool o tx).
type ArticuloRepo struct {
	q Querier
}

// NewArticuloRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewArticuloRepository(q Querier) *ArticuloRepo {
	return &ArticuloRepo{q: q}
}

// Create inserta un artículo nuevo del catálogo.
func (r *ArticuloRepo) Create(ctx context.Context, articulo *entity.Articulo) error {
	const q = `
		INSERT INTO articulos
			(id, nombre, unidad, precio_compra, precio_venta, stock, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(ctx, q,
		articulo.ID, articulo.Nombre, articulo.Unidad,
		articulo.PrecioCompra, articulo.PrecioVenta, articulo.Stock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: nombre %s", domain.ErrEntradaInvalida, articulo.Nombre)
		}
		return fmt.Errorf("insert articulo: %w", err)
	}
	return nil
}

// Update actualiza nombre, unidad y precios. El stock no se toca aquí:
// solo los flujos transaccionales lo mueven vía SetStock.
func (r *ArticuloRepo) Update(ctx context.Context, articulo *entity.Articulo) error {
	const q = `
		UPDATE articulos
		SET nombre = $2, unidad = $3, precio_compra = $4, precio_venta = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, q,
		articulo.ID, articulo.Nombre, articulo.Unidad,
		articulo.PrecioCompra, articulo.PrecioVenta,
	)
	if err != nil {
		return fmt.Errorf("update articulo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un artículo. nil, nil si no existe.
func (r *ArticuloRepo) GetByID(ctx context.Context, id string) (*entity.Articulo, error) {
	const q = `
		SELECT id, nombre, unidad, precio_compra, precio_venta, stock, created_at, updated_at
		FROM articulos WHERE id = $1`
	return r.scanArticulo(ctx, q, id)
}

// GetForUpdate obtiene el artículo y bloquea su fila (SELECT FOR UPDATE)
// para mutar stock dentro de una transacción.
func (r *ArticuloRepo) GetForUpdate(ctx context.Context, id string) (*entity.Articulo, error) {
	const q = `
		SELECT id, nombre, unidad, precio_compra, precio_venta, stock, created_at, updated_at
		FROM articulos WHERE id = $1
		FOR UPDATE`
	return r.scanArticulo(ctx, q, id)
}

// SetStock escribe el stock ya calculado por el caso de uso.
func (r *ArticuloRepo) SetStock(ctx context.Context, id string, stock decimal.Decimal) error {
	const q = `UPDATE articulos SET stock = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, q, id, stock)
	if err != nil {
		return fmt.Errorf("update stock articulo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List catálogo ordenado por nombre.
func (r *ArticuloRepo) List(ctx context.Context, limit, offset int) ([]*entity.Articulo, error) {
	const q = `
		SELECT id, nombre, unidad, precio_compra, precio_venta, stock, created_at, updated_at
		FROM articulos
		ORDER BY nombre
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articulos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Articulo
	for rows.Next() {
		a, err := scanArticuloRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan articulo: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *ArticuloRepo) scanArticulo(ctx context.Context, query, id string) (*entity.Articulo, error) {
	a, err := scanArticuloRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get articulo: %w", err)
	}
	return a, nil
}

func scanArticuloRow(row pgxScanner) (*entity.Articulo, error) {
	var a entity.Articulo
	err := row.Scan(
		&a.ID, &a.Nombre, &a.Unidad,
		&a.PrecioCompra, &a.PrecioVenta, &a.Stock,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
