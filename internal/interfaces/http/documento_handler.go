package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/metalrec/chatarreria-api/internal/application/dto"
	"github.com/metalrec/chatarreria-api/internal/application/operaciones"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// DocumentoHandler emite y consulta los documentos del negocio. Cada
// emisión sale con su número de serie ya asignado desde el bloque del
// equipo, y sus efectos en caja y stock aplicados o nada.
type DocumentoHandler struct {
	uc *operaciones.UseCase
}

// NewDocumentoHandler construye el handler de documentos.
func NewDocumentoHandler(uc *operaciones.UseCase) *DocumentoHandler {
	return &DocumentoHandler{uc: uc}
}

// RegistrarCompra godoc
// @Summary      Registrar compra de material a un reciclador
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompraRequest  true  "reciclador, forma_pago, items"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      409   {object}  dto.ErrorResponse  "saldo insuficiente"
// @Router       /api/compras [post]
func (h *DocumentoHandler) RegistrarCompra(c *fiber.Ctx) error {
	var in dto.CompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.RegistrarCompra(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// RegistrarVenta godoc
// @Summary      Registrar venta al por mayor
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "cliente, forma_pago, items"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/ventas [post]
func (h *DocumentoHandler) RegistrarVenta(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.RegistrarVenta(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// RegistrarVentaMenor godoc
// @Summary      Registrar venta de mostrador
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "cliente, forma_pago, items"
// @Success      201   {object}  dto.DocumentoResponse
// @Router       /api/ventas-menores [post]
func (h *DocumentoHandler) RegistrarVentaMenor(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.RegistrarVentaMenor(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// RegistrarGasto godoc
// @Summary      Registrar comprobante de egreso
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GastoRequest  true  "beneficiario, concepto, monto"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      409   {object}  dto.ErrorResponse  "saldo insuficiente"
// @Router       /api/gastos [post]
func (h *DocumentoHandler) RegistrarGasto(c *fiber.Ctx) error {
	var in dto.GastoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.RegistrarGasto(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// CrearRemision godoc
// @Summary      Crear remisión de entrega
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemisionRequest  true  "cliente, items"
// @Success      201   {object}  dto.DocumentoResponse
// @Router       /api/remisiones [post]
func (h *DocumentoHandler) CrearRemision(c *fiber.Ctx) error {
	var in dto.RemisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.CrearRemision(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// RemisionPDF godoc
// @Summary      Descargar el PDF de una remisión
// @Tags         documentos
// @Produce      application/pdf
// @Param        id  path  string  true  "id de la remisión"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remisiones/{id}/pdf [get]
func (h *DocumentoHandler) RemisionPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, err := h.uc.GenerarRemisionPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="remision.pdf"`)
	return c.Send(pdfBytes)
}

// GetDocumento godoc
// @Summary      Consultar un documento con sus detalles
// @Tags         documentos
// @Produce      json
// @Param        id  path  string  true  "id del documento"
// @Success      200  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id} [get]
func (h *DocumentoHandler) GetDocumento(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	doc, err := h.uc.GetDocumento(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

// ListarDocumentos godoc
// @Summary      Listar documentos de una serie
// @Tags         documentos
// @Produce      json
// @Param        modulo  path   string  true   "compras | ventas | gastos | ventasMenores | remisiones"
// @Param        limit   query  int     false  "máx. por página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.DocumentoResponse
// @Router       /api/documentos/serie/{modulo} [get]
func (h *DocumentoHandler) ListarDocumentos(c *fiber.Ctx) error {
	modulo, err := entity.ParseModulo(c.Params("modulo"))
	if err != nil {
		return respondError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	docs, err := h.uc.ListarDocumentos(c.Context(), modulo, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(docs)
}
