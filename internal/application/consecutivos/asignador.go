package consecutivos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// Asignador reserva bloques de consecutivos: recorta un rango contiguo del
// contador global del módulo y lo registra como bloque del par
// (equipo, usuario). Toda la operación es una sola transacción atómica, así
// que dos equipos reservando a la vez nunca obtienen rangos solapados.
//
// Los números de un bloque abandonado no se reutilizan jamás: se tolera el
// hueco en la serie a cambio de no colisionar nunca entre equipos offline.
type Asignador struct {
	tx TxRunner
}

// NewAsignador construye el asignador.
func NewAsignador(tx TxRunner) *Asignador {
	return &Asignador{tx: tx}
}

// ReservarBloque reserva un rango de tamano números para (equipo, usuario)
// en el módulo indicado y devuelve el bloque con el cursor en Inicio.
//
// tamano <= 0 usa entity.TamanoBloquePorDefecto. usuarioUID vacío devuelve
// ErrPropietarioInvalido; un módulo fuera de la enumeración,
// ErrModuloDesconocido; contador sin aprovisionar, ErrContadorNoExiste; y
// si el runner agota sus reintentos por contención, ErrConflictoAsignacion.
func (a *Asignador) ReservarBloque(ctx context.Context, equipoID, usuarioUID string, modulo entity.Modulo, tamano int, asignadoPor string) (*entity.Bloque, error) {
	var bloque *entity.Bloque
	err := a.tx.RunAtomic(ctx, func(
		contadorRepo repository.ContadorRepository,
		bloqueRepo repository.BloqueRepository,
	) error {
		var errTx error
		bloque, errTx = a.ReservarBloqueEnTx(ctx, contadorRepo, bloqueRepo, equipoID, usuarioUID, modulo, tamano, asignadoPor)
		return errTx
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransaccionAbortada) {
			return nil, fmt.Errorf("%w: módulo %s", domain.ErrConflictoAsignacion, modulo)
		}
		return nil, err
	}
	return bloque, nil
}

// ReservarBloqueEnTx ejecuta la reserva con repositorios ya atados a la
// transacción del caller (por ejemplo, dentro de la emisión de un documento
// cuyo bloque se agotó a mitad de camino).
func (a *Asignador) ReservarBloqueEnTx(
	ctx context.Context,
	contadorRepo repository.ContadorRepository,
	bloqueRepo repository.BloqueRepository,
	equipoID, usuarioUID string,
	modulo entity.Modulo,
	tamano int,
	asignadoPor string,
) (*entity.Bloque, error) {
	if strings.TrimSpace(usuarioUID) == "" {
		return nil, domain.ErrPropietarioInvalido
	}
	if !modulo.Valido() {
		return nil, fmt.Errorf("%w: %q", domain.ErrModuloDesconocido, string(modulo))
	}
	if tamano <= 0 {
		tamano = entity.TamanoBloquePorDefecto
	}

	// Releer el contador con bloqueo de fila: nunca confiar en una copia
	// previa al escribir el nuevo máximo.
	contador, err := contadorRepo.GetForUpdate(ctx, modulo)
	if err != nil {
		return nil, err
	}
	if contador == nil {
		return nil, fmt.Errorf("%w: módulo %s", domain.ErrContadorNoExiste, modulo)
	}

	inicio := contador.UltimoReservado + 1
	fin := contador.UltimoReservado + int64(tamano)
	if err := contadorRepo.Set(ctx, modulo, fin); err != nil {
		return nil, err
	}

	now := time.Now()
	bloque := &entity.Bloque{
		Modulo:      modulo,
		EquipoID:    equipoID,
		UsuarioUID:  usuarioUID,
		Inicio:      inicio,
		Fin:         fin,
		Siguiente:   inicio,
		Tamano:      tamano,
		AsignadoPor: asignadoPor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := bloqueRepo.Upsert(ctx, bloque); err != nil {
		return nil, err
	}
	return bloque, nil
}
