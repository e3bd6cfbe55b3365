package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL
// (usable con pool o tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create inserta un usuario nuevo.
func (r *UsuarioRepo) Create(ctx context.Context, usuario *entity.Usuario) error {
	const q = `
		INSERT INTO usuarios
			(id, email, nombre, password_hash, rol, estado, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(ctx, q,
		usuario.ID, usuario.Email, usuario.Nombre,
		usuario.PasswordHash, usuario.Rol, usuario.Estado,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// FindByEmail busca por email. nil, nil si no existe.
func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	const q = `
		SELECT id, email, nombre, password_hash, rol, estado, created_at, updated_at
		FROM usuarios WHERE email = $1`
	return r.scanUsuario(ctx, q, email)
}

// GetByID obtiene un usuario. nil, nil si no existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	const q = `
		SELECT id, email, nombre, password_hash, rol, estado, created_at, updated_at
		FROM usuarios WHERE id = $1`
	return r.scanUsuario(ctx, q, id)
}

// List todos los usuarios, más reciente primero.
func (r *UsuarioRepo) List(ctx context.Context) ([]*entity.Usuario, error) {
	const q = `
		SELECT id, email, nombre, password_hash, rol, estado, created_at, updated_at
		FROM usuarios
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuarioRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UsuarioRepo) scanUsuario(ctx context.Context, query, arg string) (*entity.Usuario, error) {
	u, err := scanUsuarioRow(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

func scanUsuarioRow(row pgxScanner) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Email, &u.Nombre, &u.PasswordHash,
		&u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
