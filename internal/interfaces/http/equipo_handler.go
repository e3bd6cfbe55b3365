package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/metalrec/chatarreria-api/internal/application/dto"
	"github.com/metalrec/chatarreria-api/internal/application/equipo"
)

// EquipoHandler identidad del terminal que atiende esta instancia.
type EquipoHandler struct {
	proveedor *equipo.Proveedor
}

// NewEquipoHandler construye el handler de equipo.
func NewEquipoHandler(proveedor *equipo.Proveedor) *EquipoHandler {
	return &EquipoHandler{proveedor: proveedor}
}

// Identidad godoc
// @Summary      Identidad del terminal (id estable + alias)
// @Tags         equipo
// @Produce      json
// @Success      200  {object}  dto.EquipoResponse
// @Router       /api/equipo [get]
func (h *EquipoHandler) Identidad(c *fiber.Ctx) error {
	identidad, err := h.proveedor.Identidad(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.EquipoResponse{EquipoID: identidad.EquipoID, Alias: identidad.Alias})
}

// EstablecerAlias godoc
// @Summary      Cambiar el alias humano del terminal
// @Tags         equipo
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AliasRequest  true  "alias"
// @Success      200   {object}  dto.EquipoResponse
// @Router       /api/equipo/alias [put]
func (h *EquipoHandler) EstablecerAlias(c *fiber.Ctx) error {
	var in dto.AliasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	equipoID, err := h.proveedor.ObtenerOCrearEquipoID(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	alias, err := h.proveedor.EstablecerAlias(c.Context(), in.Alias, equipoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.EquipoResponse{EquipoID: equipoID, Alias: alias})
}
