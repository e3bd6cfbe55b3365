package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/metalrec/chatarreria-api/internal/application/consecutivos"
	"github.com/metalrec/chatarreria-api/internal/application/dto"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// ConsecutivosHandler expone la reserva de bloques y el estado del bloque
// vigente del terminal. El consumo normal de números ocurre dentro de la
// emisión de documentos; estas rutas sirven para la pantalla de
// configuración y para pre-reservar antes de un turno pesado.
type ConsecutivosHandler struct {
	asignador  *consecutivos.Asignador
	consumidor *consecutivos.Consumidor
}

// NewConsecutivosHandler construye el handler de consecutivos.
func NewConsecutivosHandler(asignador *consecutivos.Asignador, consumidor *consecutivos.Consumidor) *ConsecutivosHandler {
	return &ConsecutivosHandler{asignador: asignador, consumidor: consumidor}
}

// ReservarBloque godoc
// @Summary      Reservar un bloque de consecutivos para este equipo
// @Tags         consecutivos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservaBloqueRequest  true  "modulo, tamano (0 = por defecto)"
// @Success      201   {object}  dto.BloqueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consecutivos/bloques [post]
func (h *ConsecutivosHandler) ReservarBloque(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.ReservaBloqueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	modulo, err := entity.ParseModulo(in.Modulo)
	if err != nil {
		return respondError(c, err)
	}
	bloque, err := h.asignador.ReservarBloque(c.Context(), h.consumidor.EquipoID(), userID, modulo, in.Tamano, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBloqueResponse(bloque))
}

// BloqueVigente godoc
// @Summary      Estado del bloque vigente del equipo para una serie
// @Tags         consecutivos
// @Produce      json
// @Param        modulo  path  string  true  "compras | ventas | gastos | ventasMenores | remisiones"
// @Success      200  {object}  dto.BloqueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consecutivos/bloques/{modulo} [get]
func (h *ConsecutivosHandler) BloqueVigente(c *fiber.Ctx) error {
	userID := GetUserID(c)
	modulo, err := entity.ParseModulo(c.Params("modulo"))
	if err != nil {
		return respondError(c, err)
	}
	bloque, err := h.consumidor.BloqueVigente(c.Context(), modulo, userID)
	if err != nil {
		return respondError(c, err)
	}
	if bloque == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin bloque reservado para esta serie"})
	}
	return c.JSON(toBloqueResponse(bloque))
}

// SiguienteNumero godoc
// @Summary      Consumir el siguiente número de la serie (fuera de un documento)
// @Tags         consecutivos
// @Produce      json
// @Param        modulo  path  string  true  "serie"
// @Success      200  {object}  dto.SiguienteNumeroResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consecutivos/{modulo}/siguiente [post]
func (h *ConsecutivosHandler) SiguienteNumero(c *fiber.Ctx) error {
	userID := GetUserID(c)
	modulo, err := entity.ParseModulo(c.Params("modulo"))
	if err != nil {
		return respondError(c, err)
	}
	serial, err := h.consumidor.SiguienteSerial(c.Context(), modulo, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SiguienteNumeroResponse{
		Modulo: string(modulo),
		Numero: modulo.FormatearNumero(serial),
		Serial: serial,
	})
}

func toBloqueResponse(b *entity.Bloque) dto.BloqueResponse {
	return dto.BloqueResponse{
		Modulo:        string(b.Modulo),
		EquipoID:      b.EquipoID,
		UsuarioUID:    b.UsuarioUID,
		Inicio:        b.Inicio,
		Fin:           b.Fin,
		Siguiente:     b.Siguiente,
		Tamano:        b.Tamano,
		Restantes:     b.Restantes(),
		AsignadoPor:   b.AsignadoPor,
		ActualizadoEn: b.UpdatedAt,
	}
}
