package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/metalrec/chatarreria-api/internal/application/dto"
	"github.com/metalrec/chatarreria-api/internal/application/inventario"
	"github.com/metalrec/chatarreria-api/internal/application/usecase"
)

// ArticuloHandler catálogo de materiales y ajustes de stock.
type ArticuloHandler struct {
	uc         *usecase.ArticuloUseCase
	inventario *inventario.UseCase
}

// NewArticuloHandler construye el handler de artículos.
func NewArticuloHandler(uc *usecase.ArticuloUseCase, inventarioUC *inventario.UseCase) *ArticuloHandler {
	return &ArticuloHandler{uc: uc, inventario: inventarioUC}
}

// Create godoc
// @Summary      Crear material del catálogo
// @Tags         articulos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ArticuloRequest  true  "nombre, unidad, precios"
// @Success      201   {object}  dto.ArticuloResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/articulos [post]
func (h *ArticuloHandler) Create(c *fiber.Ctx) error {
	var in dto.ArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	articulo, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(articulo)
}

// Update godoc
// @Summary      Editar material (nombre, unidad, precios)
// @Tags         articulos
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "id del artículo"
// @Param        body  body  dto.ArticuloRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ArticuloResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [put]
func (h *ArticuloHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	articulo, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articulo)
}

// GetByID godoc
// @Summary      Consultar un material
// @Tags         articulos
// @Produce      json
// @Param        id  path  string  true  "id del artículo"
// @Success      200  {object}  dto.ArticuloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [get]
func (h *ArticuloHandler) GetByID(c *fiber.Ctx) error {
	articulo, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articulo)
}

// List godoc
// @Summary      Listar el catálogo de materiales
// @Tags         articulos
// @Produce      json
// @Param        limit   query  int  false  "máx. por página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ArticuloResponse
// @Router       /api/articulos [get]
func (h *ArticuloHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	articulos, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articulos)
}

// AjustarStock godoc
// @Summary      Ajuste administrativo de stock (conteo físico, solo admin)
// @Tags         articulos
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id del artículo"
// @Param        body  body  dto.AjusteStockRequest  true  "delta (negativo para bajar)"
// @Success      200   {object}  dto.ArticuloResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/articulos/{id}/stock [post]
func (h *ArticuloHandler) AjustarStock(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AjusteStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.inventario.AjustarStock(c.Context(), id, in.Delta); err != nil {
		return respondError(c, err)
	}
	articulo, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articulo)
}
