package repository

import (
	"context"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// BloqueRepository puerto sobre los bloques de consecutivos
// (consecutivo_bloques/{modulo}__{equipo}__{usuario}).
type BloqueRepository interface {
	// Get devuelve el bloque vigente del par (equipo, usuario) para el
	// módulo. nil, nil si nunca se ha reservado.
	Get(ctx context.Context, modulo entity.Modulo, equipoID, usuarioUID string) (*entity.Bloque, error)
	// Upsert crea o sobrescribe (merge) el bloque de su llave.
	Upsert(ctx context.Context, bloque *entity.Bloque) error
	// TomarSiguiente avanza el cursor en una sola operación atómica y
	// devuelve el número tomado. ok=false si no hay bloque o está agotado;
	// en ese caso no se consume nada. Al ser una sola escritura, un crash
	// entre lectura y escritura no puede repetir un número.
	TomarSiguiente(ctx context.Context, modulo entity.Modulo, equipoID, usuarioUID string) (n int64, ok bool, err error)
}
