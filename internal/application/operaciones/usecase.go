package operaciones

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metalrec/chatarreria-api/internal/application/caja"
	"github.com/metalrec/chatarreria-api/internal/application/consecutivos"
	"github.com/metalrec/chatarreria-api/internal/application/dto"
	"github.com/metalrec/chatarreria-api/internal/application/inventario"
	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

// UseCase emite los documentos del negocio: compras a recicladores, ventas
// (mayorista y de mostrador), gastos y remisiones. Cada emisión es una sola
// transacción atómica que toma el consecutivo del bloque del equipo, mueve
// stock y caja según corresponda y guarda el documento: si cualquier paso
// falla, nada queda escrito.
type UseCase struct {
	tx         TxRunner
	consumidor *consecutivos.Consumidor
	cajaUC     *caja.UseCase
	inventario *inventario.UseCase
	documentos repository.DocumentoRepository
	articulos  repository.ArticuloRepository
	pdf        RemisionPDFGenerator
	negocio    DatosNegocio
	equipoID   string
}

// NewUseCase construye el caso de uso de operaciones.
func NewUseCase(
	tx TxRunner,
	consumidor *consecutivos.Consumidor,
	cajaUC *caja.UseCase,
	inventarioUC *inventario.UseCase,
	documentos repository.DocumentoRepository,
	articulos repository.ArticuloRepository,
	pdf RemisionPDFGenerator,
	negocio DatosNegocio,
) *UseCase {
	return &UseCase{
		tx:         tx,
		consumidor: consumidor,
		cajaUC:     cajaUC,
		inventario: inventarioUC,
		documentos: documentos,
		articulos:  articulos,
		pdf:        pdf,
		negocio:    negocio,
		equipoID:   consumidor.EquipoID(),
	}
}

// RegistrarCompra compra de material: entra stock por cada línea y, si se
// paga en efectivo, se debita la caja por el total. Número de la serie FAC.
func (uc *UseCase) RegistrarCompra(ctx context.Context, usuarioUID string, in dto.CompraRequest) (*dto.DocumentoResponse, error) {
	lineas, total, err := uc.validarItems(ctx, in.Items, true)
	if err != nil {
		return nil, err
	}
	formaPago, err := validarFormaPago(in.FormaPago)
	if err != nil {
		return nil, err
	}

	doc := &entity.Documento{
		ID:         uuid.New().String(),
		Modulo:     entity.ModuloCompras,
		EquipoID:   uc.equipoID,
		UsuarioUID: usuarioUID,
		Tercero:    strings.TrimSpace(in.Reciclador),
		FormaPago:  formaPago,
		Total:      total,
		CreatedAt:  time.Now(),
	}

	var saldo *decimal.Decimal
	err = uc.tx.RunOperacion(ctx, func(
		contadorRepo repository.ContadorRepository,
		bloqueRepo repository.BloqueRepository,
		cajaRepo repository.CajaRepository,
		articuloRepo repository.ArticuloRepository,
		documentoRepo repository.DocumentoRepository,
	) error {
		saldo = nil
		if err := uc.numerar(ctx, contadorRepo, bloqueRepo, doc); err != nil {
			return err
		}
		// Entrada de material al inventario.
		for _, l := range lineas {
			if _, err := uc.inventario.AplicarDeltaEnTx(ctx, articuloRepo, l.articuloID, l.cantidad); err != nil {
				return err
			}
		}
		// Pago al reciclador desde la caja.
		if formaPago == entity.FormaPagoEfectivo {
			nuevo, err := uc.cajaUC.DebitarEnTx(ctx, cajaRepo, total, caja.Movimiento{Referencia: doc.Numero, UsuarioUID: usuarioUID})
			if err != nil {
				return err
			}
			saldo = &nuevo
		}
		return uc.guardar(ctx, documentoRepo, doc, lineas)
	})
	if err != nil {
		return nil, err
	}
	return uc.respuesta(doc, lineas, saldo), nil
}

// RegistrarVenta venta al por mayor (serie FAV): sale stock y, si es en
// efectivo, entra dinero a la caja.
func (uc *UseCase) RegistrarVenta(ctx context.Context, usuarioUID string, in dto.VentaRequest) (*dto.DocumentoResponse, error) {
	return uc.registrarVenta(ctx, usuarioUID, in, entity.ModuloVentas)
}

// RegistrarVentaMenor venta de mostrador (serie FAVMI); misma mecánica que
// la venta mayorista, serie independiente.
func (uc *UseCase) RegistrarVentaMenor(ctx context.Context, usuarioUID string, in dto.VentaRequest) (*dto.DocumentoResponse, error) {
	return uc.registrarVenta(ctx, usuarioUID, in, entity.ModuloVentasMenores)
}

func (uc *UseCase) registrarVenta(ctx context.Context, usuarioUID string, in dto.VentaRequest, modulo entity.Modulo) (*dto.DocumentoResponse, error) {
	lineas, total, err := uc.validarItems(ctx, in.Items, false)
	if err != nil {
		return nil, err
	}
	formaPago, err := validarFormaPago(in.FormaPago)
	if err != nil {
		return nil, err
	}

	doc := &entity.Documento{
		ID:         uuid.New().String(),
		Modulo:     modulo,
		EquipoID:   uc.equipoID,
		UsuarioUID: usuarioUID,
		Tercero:    strings.TrimSpace(in.Cliente),
		FormaPago:  formaPago,
		Total:      total,
		CreatedAt:  time.Now(),
	}

	var saldo *decimal.Decimal
	err = uc.tx.RunOperacion(ctx, func(
		contadorRepo repository.ContadorRepository,
		bloqueRepo repository.BloqueRepository,
		cajaRepo repository.CajaRepository,
		articuloRepo repository.ArticuloRepository,
		documentoRepo repository.DocumentoRepository,
	) error {
		saldo = nil
		if err := uc.numerar(ctx, contadorRepo, bloqueRepo, doc); err != nil {
			return err
		}
		// Salida de material: si cualquier artículo no alcanza, aborta todo
		// (incluidos el consecutivo y el crédito de caja de esta transacción).
		for _, l := range lineas {
			if _, err := uc.inventario.AplicarDeltaEnTx(ctx, articuloRepo, l.articuloID, l.cantidad.Neg()); err != nil {
				return err
			}
		}
		if formaPago == entity.FormaPagoEfectivo {
			nuevo, err := uc.cajaUC.AcreditarEnTx(ctx, cajaRepo, total, caja.Movimiento{Referencia: doc.Numero, UsuarioUID: usuarioUID})
			if err != nil {
				return err
			}
			saldo = &nuevo
		}
		return uc.guardar(ctx, documentoRepo, doc, lineas)
	})
	if err != nil {
		return nil, err
	}
	return uc.respuesta(doc, lineas, saldo), nil
}

// RegistrarGasto comprobante de egreso (serie GAS): solo debita la caja.
func (uc *UseCase) RegistrarGasto(ctx context.Context, usuarioUID string, in dto.GastoRequest) (*dto.DocumentoResponse, error) {
	concepto := strings.TrimSpace(in.Concepto)
	if concepto == "" || !in.Monto.IsPositive() {
		return nil, domain.ErrEntradaInvalida
	}

	doc := &entity.Documento{
		ID:         uuid.New().String(),
		Modulo:     entity.ModuloGastos,
		EquipoID:   uc.equipoID,
		UsuarioUID: usuarioUID,
		Tercero:    strings.TrimSpace(in.Beneficiario),
		Concepto:   concepto,
		FormaPago:  entity.FormaPagoEfectivo,
		Total:      in.Monto,
		CreatedAt:  time.Now(),
	}

	var saldo *decimal.Decimal
	err := uc.tx.RunOperacion(ctx, func(
		contadorRepo repository.ContadorRepository,
		bloqueRepo repository.BloqueRepository,
		cajaRepo repository.CajaRepository,
		_ repository.ArticuloRepository,
		documentoRepo repository.DocumentoRepository,
	) error {
		saldo = nil
		if err := uc.numerar(ctx, contadorRepo, bloqueRepo, doc); err != nil {
			return err
		}
		nuevo, err := uc.cajaUC.DebitarEnTx(ctx, cajaRepo, in.Monto, caja.Movimiento{Referencia: doc.Numero, UsuarioUID: usuarioUID})
		if err != nil {
			return err
		}
		saldo = &nuevo
		return uc.guardar(ctx, documentoRepo, doc, nil)
	})
	if err != nil {
		return nil, err
	}
	return uc.respuesta(doc, nil, saldo), nil
}

// CrearRemision remisión de entrega (serie REM): documento numerado sin
// efecto en caja ni stock; la venta asociada ya los movió.
func (uc *UseCase) CrearRemision(ctx context.Context, usuarioUID string, in dto.RemisionRequest) (*dto.DocumentoResponse, error) {
	lineas, total, err := uc.validarItems(ctx, in.Items, false)
	if err != nil {
		return nil, err
	}

	doc := &entity.Documento{
		ID:         uuid.New().String(),
		Modulo:     entity.ModuloRemisiones,
		EquipoID:   uc.equipoID,
		UsuarioUID: usuarioUID,
		Tercero:    strings.TrimSpace(in.Cliente),
		Total:      total,
		CreatedAt:  time.Now(),
	}

	err = uc.tx.RunOperacion(ctx, func(
		contadorRepo repository.ContadorRepository,
		bloqueRepo repository.BloqueRepository,
		_ repository.CajaRepository,
		_ repository.ArticuloRepository,
		documentoRepo repository.DocumentoRepository,
	) error {
		if err := uc.numerar(ctx, contadorRepo, bloqueRepo, doc); err != nil {
			return err
		}
		return uc.guardar(ctx, documentoRepo, doc, lineas)
	})
	if err != nil {
		return nil, err
	}
	return uc.respuesta(doc, lineas, nil), nil
}

// GenerarRemisionPDF renderiza una remisión ya emitida.
func (uc *UseCase) GenerarRemisionPDF(ctx context.Context, id string) ([]byte, error) {
	doc, err := uc.documentos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Modulo != entity.ModuloRemisiones {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.documentos.GetDetalles(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerarRemisionPDF(ctx, doc, detalles, uc.negocio)
}

// GetDocumento documento emitido con sus detalles.
func (uc *UseCase) GetDocumento(ctx context.Context, id string) (*dto.DocumentoResponse, error) {
	doc, err := uc.documentos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.documentos.GetDetalles(ctx, id)
	if err != nil {
		return nil, err
	}
	lineas := make([]lineaDocumento, 0, len(detalles))
	for _, d := range detalles {
		lineas = append(lineas, lineaDocumento{
			articuloID: d.ArticuloID,
			nombre:     d.NombreArticulo,
			cantidad:   d.Cantidad,
			precio:     d.PrecioUnitario,
			subtotal:   d.Subtotal,
		})
	}
	return uc.respuesta(doc, lineas, nil), nil
}

// ListarDocumentos documentos de un módulo, más reciente primero.
func (uc *UseCase) ListarDocumentos(ctx context.Context, modulo entity.Modulo, limit, offset int) ([]*dto.DocumentoResponse, error) {
	docs, err := uc.documentos.ListByModulo(ctx, modulo, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentoResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, uc.respuesta(d, nil, nil))
	}
	return out, nil
}

// ── internos ──────────────────────────────────────────────────────────────────

type lineaDocumento struct {
	articuloID string
	nombre     string
	cantidad   decimal.Decimal
	precio     decimal.Decimal
	subtotal   decimal.Decimal
}

// validarItems valida las líneas y resuelve precios del catálogo cuando el
// request no los trae (precio de compra o de venta según el flujo).
func (uc *UseCase) validarItems(ctx context.Context, items []dto.ItemDocumento, esCompra bool) ([]lineaDocumento, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, domain.ErrEntradaInvalida
	}
	lineas := make([]lineaDocumento, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		if item.ArticuloID == "" || !item.Cantidad.IsPositive() || item.PrecioUnitario.IsNegative() {
			return nil, decimal.Zero, domain.ErrEntradaInvalida
		}
		articulo, err := uc.articulos.GetByID(ctx, item.ArticuloID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if articulo == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		precio := item.PrecioUnitario
		if precio.IsZero() {
			if esCompra {
				precio = articulo.PrecioCompra
			} else {
				precio = articulo.PrecioVenta
			}
		}
		subtotal := item.Cantidad.Mul(precio)
		total = total.Add(subtotal)
		lineas = append(lineas, lineaDocumento{
			articuloID: articulo.ID,
			nombre:     articulo.Nombre,
			cantidad:   item.Cantidad,
			precio:     precio,
			subtotal:   subtotal,
		})
	}
	return lineas, total, nil
}

// numerar toma el siguiente consecutivo del módulo dentro de la transacción
// y lo deja formateado en el documento.
func (uc *UseCase) numerar(
	ctx context.Context,
	contadorRepo repository.ContadorRepository,
	bloqueRepo repository.BloqueRepository,
	doc *entity.Documento,
) error {
	serial, err := uc.consumidor.SiguienteSerialEnTx(ctx, contadorRepo, bloqueRepo, doc.Modulo, doc.UsuarioUID)
	if err != nil {
		return err
	}
	doc.Serial = serial
	doc.Numero = doc.Modulo.FormatearNumero(serial)
	return nil
}

func (uc *UseCase) guardar(ctx context.Context, documentoRepo repository.DocumentoRepository, doc *entity.Documento, lineas []lineaDocumento) error {
	if err := documentoRepo.Create(ctx, doc); err != nil {
		return err
	}
	for _, l := range lineas {
		det := &entity.DetalleDocumento{
			ID:             uuid.New().String(),
			DocumentoID:    doc.ID,
			ArticuloID:     l.articuloID,
			NombreArticulo: l.nombre,
			Cantidad:       l.cantidad,
			PrecioUnitario: l.precio,
			Subtotal:       l.subtotal,
		}
		if err := documentoRepo.CreateDetalle(ctx, det); err != nil {
			return err
		}
	}
	return nil
}

func (uc *UseCase) respuesta(doc *entity.Documento, lineas []lineaDocumento, saldo *decimal.Decimal) *dto.DocumentoResponse {
	resp := &dto.DocumentoResponse{
		ID:        doc.ID,
		Modulo:    string(doc.Modulo),
		Numero:    doc.Numero,
		Serial:    doc.Serial,
		EquipoID:  doc.EquipoID,
		Tercero:   doc.Tercero,
		Concepto:  doc.Concepto,
		FormaPago: doc.FormaPago,
		Total:     doc.Total,
		Fecha:     doc.CreatedAt.Format("2006-01-02 15:04"),
		SaldoCaja: saldo,
	}
	for _, l := range lineas {
		resp.Detalles = append(resp.Detalles, dto.DetalleResponse{
			ArticuloID:     l.articuloID,
			NombreArticulo: l.nombre,
			Cantidad:       l.cantidad,
			PrecioUnitario: l.precio,
			Subtotal:       l.subtotal,
		})
	}
	return resp
}

func validarFormaPago(s string) (string, error) {
	switch strings.TrimSpace(s) {
	case "", entity.FormaPagoEfectivo:
		return entity.FormaPagoEfectivo, nil
	case entity.FormaPagoTransferencia:
		return entity.FormaPagoTransferencia, nil
	default:
		return "", domain.ErrEntradaInvalida
	}
}
