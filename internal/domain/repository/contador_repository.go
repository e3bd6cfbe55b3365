package repository

import (
	"context"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// ContadorRepository puerto sobre el contador global de cada serie
// (configuracion/consecutivos). Solo el asignador de bloques escribe aquí.
type ContadorRepository interface {
	// Get lectura simple (consultas/administración). nil, nil si no existe.
	Get(ctx context.Context, modulo entity.Modulo) (*entity.ContadorSerie, error)
	// GetForUpdate lee y bloquea la fila del contador dentro de la
	// transacción en curso (SELECT FOR UPDATE). nil, nil si no existe.
	GetForUpdate(ctx context.Context, modulo entity.Modulo) (*entity.ContadorSerie, error)
	// Set escribe el nuevo máximo reservado.
	Set(ctx context.Context, modulo entity.Modulo, ultimoReservado int64) error
}
