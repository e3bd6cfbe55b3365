package repository

import (
	"context"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// UsuarioRepository puerto sobre los usuarios de la aplicación.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	List(ctx context.Context) ([]*entity.Usuario, error)
}
