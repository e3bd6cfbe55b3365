package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

var _ repository.ContadorRepository = (*ContadorRepo)(nil)

// ContadorRepo implementación de ContadorRepository sobre PostgreSQL
// (usable con pool o tx). La fila de cada serie nace con las migraciones;
// este repo nunca la crea.
type ContadorRepo struct {
	q Querier
}

// NewContadorRepository construye el adaptador de contadores. Pasar pool o tx (Querier).
func NewContadorRepository(q Querier) *ContadorRepo {
	return &ContadorRepo{q: q}
}

// Get lectura simple del contador de la serie. nil, nil si no existe.
func (r *ContadorRepo) Get(ctx context.Context, modulo entity.Modulo) (*entity.ContadorSerie, error) {
	const q = `
		SELECT modulo, ultimo_reservado, updated_at
		FROM consecutivo_contadores WHERE modulo = $1`
	return r.scanContador(ctx, q, modulo)
}

// GetForUpdate lee y bloquea la fila del contador. El lock serializa las
// reservas de bloques de todos los equipos sobre la misma serie.
func (r *ContadorRepo) GetForUpdate(ctx context.Context, modulo entity.Modulo) (*entity.ContadorSerie, error) {
	const q = `
		SELECT modulo, ultimo_reservado, updated_at
		FROM consecutivo_contadores WHERE modulo = $1
		FOR UPDATE`
	return r.scanContador(ctx, q, modulo)
}

// Set escribe el nuevo máximo reservado de la serie.
func (r *ContadorRepo) Set(ctx context.Context, modulo entity.Modulo, ultimoReservado int64) error {
	const q = `
		UPDATE consecutivo_contadores
		SET ultimo_reservado = $2, updated_at = now()
		WHERE modulo = $1`
	tag, err := r.q.Exec(ctx, q, modulo, ultimoReservado)
	if err != nil {
		return fmt.Errorf("update consecutivo_contador: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update consecutivo_contador %s: fila ausente", modulo)
	}
	return nil
}

func (r *ContadorRepo) scanContador(ctx context.Context, query string, modulo entity.Modulo) (*entity.ContadorSerie, error) {
	var c entity.ContadorSerie
	err := r.q.QueryRow(ctx, query, modulo).Scan(&c.Modulo, &c.UltimoReservado, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consecutivo_contador: %w", err)
	}
	return &c, nil
}
