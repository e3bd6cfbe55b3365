package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

var _ repository.BloqueRepository = (*BloqueRepo)(nil)

// BloqueRepo implementación de BloqueRepository sobre PostgreSQL
// (usable con pool o tx).
type BloqueRepo struct {
	q Querier
}

// NewBloqueRepository construye el adaptador de bloques. Pasar pool o tx (Querier).
func NewBloqueRepository(q Querier) *BloqueRepo {
	return &BloqueRepo{q: q}
}

// Get devuelve el bloque vigente del par (equipo, usuario) para el módulo.
// nil, nil si nunca se ha reservado.
func (r *BloqueRepo) Get(ctx context.Context, modulo entity.Modulo, equipoID, usuarioUID string) (*entity.Bloque, error) {
	const q = `
		SELECT modulo, equipo_id, usuario_uid, inicio, fin, siguiente,
		       tamano, asignado_por, created_at, updated_at
		FROM consecutivo_bloques
		WHERE modulo = $1 AND equipo_id = $2 AND usuario_uid = $3`
	b, err := scanBloque(r.q.QueryRow(ctx, q, modulo, equipoID, usuarioUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consecutivo_bloque: %w", err)
	}
	return b, nil
}

// Upsert crea o sobrescribe el bloque de su llave. Se invoca solo desde la
// reserva de bloques, con el contador de la serie ya bloqueado.
func (r *BloqueRepo) Upsert(ctx context.Context, bloque *entity.Bloque) error {
	const q = `
		INSERT INTO consecutivo_bloques
			(modulo, equipo_id, usuario_uid, inicio, fin, siguiente, tamano, asignado_por, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (modulo, equipo_id, usuario_uid)
		DO UPDATE SET
			inicio = EXCLUDED.inicio, fin = EXCLUDED.fin,
			siguiente = EXCLUDED.siguiente, tamano = EXCLUDED.tamano,
			asignado_por = EXCLUDED.asignado_por, updated_at = now()`
	_, err := r.q.Exec(ctx, q,
		bloque.Modulo, bloque.EquipoID, bloque.UsuarioUID,
		bloque.Inicio, bloque.Fin, bloque.Siguiente, bloque.Tamano, bloque.AsignadoPor,
	)
	if err != nil {
		return fmt.Errorf("upsert consecutivo_bloque: %w", err)
	}
	return nil
}

// TomarSiguiente avanza el cursor del bloque en una sola sentencia y
// devuelve el número tomado. La condición siguiente <= fin hace que un
// bloque agotado (o ausente) no afecte ninguna fila: ok=false sin
// consumir nada. Una sola escritura, así que un crash entre lectura y
// escritura no puede repetir un número.
func (r *BloqueRepo) TomarSiguiente(ctx context.Context, modulo entity.Modulo, equipoID, usuarioUID string) (int64, bool, error) {
	const q = `
		UPDATE consecutivo_bloques
		SET siguiente = siguiente + 1, updated_at = now()
		WHERE modulo = $1 AND equipo_id = $2 AND usuario_uid = $3
		  AND siguiente <= fin
		RETURNING siguiente - 1`
	var n int64
	err := r.q.QueryRow(ctx, q, modulo, equipoID, usuarioUID).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("tomar siguiente consecutivo: %w", err)
	}
	return n, true, nil
}

func scanBloque(row pgxScanner) (*entity.Bloque, error) {
	var b entity.Bloque
	err := row.Scan(
		&b.Modulo, &b.EquipoID, &b.UsuarioUID,
		&b.Inicio, &b.Fin, &b.Siguiente,
		&b.Tamano, &b.AsignadoPor, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
