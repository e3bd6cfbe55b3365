package equipo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// Almacen puerto de persistencia local del terminal (archivo en disco).
// Un valor ausente se reporta como cadena vacía, no como error.
type Almacen interface {
	GetEquipoID(ctx context.Context) (string, error)
	SetEquipoID(ctx context.Context, id string) error
	GetAlias(ctx context.Context) (string, error)
	SetAlias(ctx context.Context, alias string) error
}

// Proveedor asigna y conserva la identidad estable del terminal. El id se
// genera una sola vez y sobrevive reinicios; los bloques de consecutivos
// reservados por este equipo quedan atados a él.
type Proveedor struct {
	almacen Almacen
}

// NewProveedor construye el proveedor de identidad.
func NewProveedor(almacen Almacen) *Proveedor {
	return &Proveedor{almacen: almacen}
}

// ObtenerOCrearEquipoID devuelve el id persistido o genera uno nuevo y lo
// persiste antes de devolverlo. Idempotente durante la vida del terminal.
func (p *Proveedor) ObtenerOCrearEquipoID(ctx context.Context) (string, error) {
	id, err := p.almacen.GetEquipoID(ctx)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	id = nuevoEquipoID()
	if err := p.almacen.SetEquipoID(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// Identidad id + alias vigentes del terminal.
func (p *Proveedor) Identidad(ctx context.Context) (*entity.EquipoIdentidad, error) {
	id, err := p.ObtenerOCrearEquipoID(ctx)
	if err != nil {
		return nil, err
	}
	alias, err := p.Alias(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.EquipoIdentidad{EquipoID: id, Alias: alias}, nil
}

// Alias devuelve el alias persistido o sintetiza el alias por defecto
// ("EQUIPO-" + primeros 8 caracteres del id en mayúsculas).
func (p *Proveedor) Alias(ctx context.Context, equipoID string) (string, error) {
	alias, err := p.almacen.GetAlias(ctx)
	if err != nil {
		return "", err
	}
	if alias == "" {
		return entity.AliasPorDefecto(equipoID), nil
	}
	return alias, nil
}

// EstablecerAlias normaliza y persiste el alias; entrada vacía o solo
// espacios cae al alias por defecto.
func (p *Proveedor) EstablecerAlias(ctx context.Context, alias, equipoID string) (string, error) {
	alias = entity.NormalizarAlias(alias, equipoID)
	if err := p.almacen.SetAlias(ctx, alias); err != nil {
		return "", err
	}
	return alias, nil
}

// nuevoEquipoID genera un identificador único: UUID aleatorio, o
// timestamp + sufijo aleatorio si el generador criptográfico falla.
func nuevoEquipoID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("eq-%d-%06d", time.Now().UnixMilli(), rand.Intn(1_000_000))
}
