package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/metalrec/chatarreria-api/internal/application/caja"
	"github.com/metalrec/chatarreria-api/internal/application/dto"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// CajaHandler expone la base de caja: saldo, movimientos manuales y el
// historial. Los movimientos que nacen de documentos (compra, venta,
// gasto) no pasan por aquí.
type CajaHandler struct {
	uc *caja.UseCase
}

// NewCajaHandler construye el handler de caja.
func NewCajaHandler(uc *caja.UseCase) *CajaHandler {
	return &CajaHandler{uc: uc}
}

// Saldo godoc
// @Summary      Saldo actual de la caja
// @Tags         caja
// @Produce      json
// @Success      200  {object}  dto.SaldoResponse
// @Router       /api/caja [get]
func (h *CajaHandler) Saldo(c *fiber.Ctx) error {
	base, err := h.uc.Saldo(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SaldoResponse{BaseActual: base})
}

// Acreditar godoc
// @Summary      Ingreso manual de efectivo a la caja
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MontoRequest  true  "monto, referencia"
// @Success      200   {object}  dto.SaldoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/caja/creditos [post]
func (h *CajaHandler) Acreditar(c *fiber.Ctx) error {
	return h.mutar(c, h.uc.Acreditar)
}

// Debitar godoc
// @Summary      Retiro manual de efectivo de la caja
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MontoRequest  true  "monto, referencia"
// @Success      200   {object}  dto.SaldoResponse
// @Failure      409   {object}  dto.ErrorResponse  "saldo insuficiente"
// @Router       /api/caja/debitos [post]
func (h *CajaHandler) Debitar(c *fiber.Ctx) error {
	return h.mutar(c, h.uc.Debitar)
}

// EstablecerBase godoc
// @Summary      Fijar la base de caja en un valor absoluto (solo admin)
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MontoRequest  true  "monto"
// @Success      200   {object}  dto.SaldoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/caja/base [put]
func (h *CajaHandler) EstablecerBase(c *fiber.Ctx) error {
	return h.mutar(c, h.uc.EstablecerBase)
}

// Movimientos godoc
// @Summary      Historial de movimientos de caja
// @Tags         caja
// @Produce      json
// @Param        limit   query  int  false  "máx. por página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MovimientoCajaResponse
// @Router       /api/caja/movimientos [get]
func (h *CajaHandler) Movimientos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movs, err := h.uc.Movimientos(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovimientoResponse(m))
	}
	return c.JSON(out)
}

func (h *CajaHandler) mutar(c *fiber.Ctx, op func(ctx context.Context, monto decimal.Decimal, mov caja.Movimiento) (decimal.Decimal, error)) error {
	var in dto.MontoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	nuevo, err := op(c.Context(), in.Monto, caja.Movimiento{
		Referencia: in.Referencia,
		UsuarioUID: GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SaldoResponse{BaseActual: nuevo})
}

func toMovimientoResponse(m *entity.MovimientoCaja) dto.MovimientoCajaResponse {
	return dto.MovimientoCajaResponse{
		ID:            m.ID,
		Tipo:          m.Tipo,
		Monto:         m.Monto,
		SaldoAnterior: m.SaldoAnterior,
		SaldoNuevo:    m.SaldoNuevo,
		Referencia:    m.Referencia,
		UsuarioUID:    m.UsuarioUID,
		EquipoID:      m.EquipoID,
		Fecha:         m.CreatedAt,
	}
}
