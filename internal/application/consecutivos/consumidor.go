package consecutivos

import (
	"context"
	"fmt"
	"sync"

	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// Consumidor entrega el siguiente número de documento de cada módulo para
// este equipo. Consume del bloque vigente del par (equipo, usuario) con un
// avance de cursor atómico; cuando el bloque se agota pide uno nuevo al
// asignador. Mantiene en memoria el bloque vigente por (módulo, usuario)
// para poder seguir numerando sin esperar el viaje al contador global.
type Consumidor struct {
	asignador *Asignador
	bloques   repository.BloqueRepository
	equipoID  string
	alias     string // etiqueta del actor en los bloques que reserve
	tamano    int

	mu       sync.Mutex
	vigentes map[claveBloque]*entity.Bloque
}

type claveBloque struct {
	modulo     entity.Modulo
	usuarioUID string
}

// NewConsumidor construye el consumidor para la identidad de este equipo.
// tamano <= 0 usa entity.TamanoBloquePorDefecto.
func NewConsumidor(asignador *Asignador, bloques repository.BloqueRepository, equipoID, alias string, tamano int) *Consumidor {
	if tamano <= 0 {
		tamano = entity.TamanoBloquePorDefecto
	}
	return &Consumidor{
		asignador: asignador,
		bloques:   bloques,
		equipoID:  equipoID,
		alias:     alias,
		tamano:    tamano,
		vigentes:  make(map[claveBloque]*entity.Bloque),
	}
}

// SiguienteNumero devuelve el siguiente número formateado del módulo para
// el usuario indicado (p. ej. "FAC00101"). Si el bloque vigente se agotó,
// reserva uno nuevo de forma transparente; si esa reasignación falla
// devuelve ErrBloqueAgotado.
func (c *Consumidor) SiguienteNumero(ctx context.Context, modulo entity.Modulo, usuarioUID string) (string, error) {
	n, err := c.SiguienteSerial(ctx, modulo, usuarioUID)
	if err != nil {
		return "", err
	}
	return modulo.FormatearNumero(n), nil
}

// SiguienteSerial igual que SiguienteNumero pero devuelve el serial crudo.
func (c *Consumidor) SiguienteSerial(ctx context.Context, modulo entity.Modulo, usuarioUID string) (int64, error) {
	if !modulo.Valido() {
		return 0, fmt.Errorf("%w: %q", domain.ErrModuloDesconocido, string(modulo))
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	clave := claveBloque{modulo: modulo, usuarioUID: usuarioUID}

	// Avance atómico sobre el bloque vigente. El bloque es propiedad
	// exclusiva de este par (equipo, usuario): no hay contención entre
	// equipos, solo protección contra nuestro propio crash.
	n, ok, err := c.bloques.TomarSiguiente(ctx, modulo, c.equipoID, usuarioUID)
	if err != nil {
		return 0, err
	}
	if !ok {
		teniaBloque := c.vigentes[clave] != nil
		bloque, err := c.asignador.ReservarBloque(ctx, c.equipoID, usuarioUID, modulo, c.tamano, c.alias)
		if err != nil {
			if teniaBloque {
				return 0, fmt.Errorf("%w: %v", domain.ErrBloqueAgotado, err)
			}
			return 0, err
		}
		c.vigentes[clave] = bloque

		n, ok, err = c.bloques.TomarSiguiente(ctx, modulo, c.equipoID, usuarioUID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("%w: módulo %s", domain.ErrBloqueAgotado, modulo)
		}
	}

	if vigente := c.vigentes[clave]; vigente != nil {
		vigente.Siguiente = n + 1
	}
	return n, nil
}

// SiguienteSerialEnTx consume un número usando repositorios atados a la
// transacción del caller, de modo que el avance del cursor sea todo-o-nada
// junto con las demás escrituras de esa transacción (stock, caja,
// documento). Si el bloque se agota, la reserva del nuevo bloque ocurre en
// la misma transacción.
func (c *Consumidor) SiguienteSerialEnTx(
	ctx context.Context,
	contadorRepo repository.ContadorRepository,
	bloqueRepo repository.BloqueRepository,
	modulo entity.Modulo,
	usuarioUID string,
) (int64, error) {
	if !modulo.Valido() {
		return 0, fmt.Errorf("%w: %q", domain.ErrModuloDesconocido, string(modulo))
	}
	n, ok, err := bloqueRepo.TomarSiguiente(ctx, modulo, c.equipoID, usuarioUID)
	if err != nil {
		return 0, err
	}
	if ok {
		return n, nil
	}
	if _, err := c.asignador.ReservarBloqueEnTx(ctx, contadorRepo, bloqueRepo, c.equipoID, usuarioUID, modulo, c.tamano, c.alias); err != nil {
		return 0, err
	}
	n, ok, err = bloqueRepo.TomarSiguiente(ctx, modulo, c.equipoID, usuarioUID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: módulo %s", domain.ErrBloqueAgotado, modulo)
	}
	return n, nil
}

// BloqueVigente devuelve el estado del bloque del par (módulo, usuario)
// según el almacén, para la pantalla de configuración de consecutivos.
func (c *Consumidor) BloqueVigente(ctx context.Context, modulo entity.Modulo, usuarioUID string) (*entity.Bloque, error) {
	if !modulo.Valido() {
		return nil, fmt.Errorf("%w: %q", domain.ErrModuloDesconocido, string(modulo))
	}
	return c.bloques.Get(ctx, modulo, c.equipoID, usuarioUID)
}

// EquipoID identidad del terminal a la que está atado este consumidor.
func (c *Consumidor) EquipoID() string { return c.equipoID }
