package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/domain/repository"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

// DocumentoRepo implementación de DocumentoRepository sobre PostgreSQL
// (usable con pool o tx). El constraint único (modulo, numero) es la red
// de seguridad final contra números repetidos: si el esquema de bloques
// fallara, el insert revienta en vez de guardar un duplicado.
type DocumentoRepo struct {
	q Querier
}

// NewDocumentoRepository construye el adaptador de documentos. Pasar pool o tx (Querier).
func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

// Create inserta el encabezado del documento.
func (r *DocumentoRepo) Create(ctx context.Context, doc *entity.Documento) error {
	const q = `
		INSERT INTO documentos
			(id, modulo, serial, numero, equipo_id, usuario_uid, tercero, concepto, forma_pago, total, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, q,
		doc.ID, doc.Modulo, doc.Serial, doc.Numero,
		doc.EquipoID, doc.UsuarioUID, doc.Tercero, doc.Concepto,
		doc.FormaPago, doc.Total, doc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert documento %s: número ya usado: %w", doc.Numero, err)
		}
		return fmt.Errorf("insert documento: %w", err)
	}
	return nil
}

// CreateDetalle inserta una línea del documento.
func (r *DocumentoRepo) CreateDetalle(ctx context.Context, det *entity.DetalleDocumento) error {
	const q = `
		INSERT INTO documento_detalles
			(id, documento_id, articulo_id, nombre_articulo, cantidad, precio_unitario, subtotal)
		VALUES
			($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, q,
		det.ID, det.DocumentoID, det.ArticuloID, det.NombreArticulo,
		det.Cantidad, det.PrecioUnitario, det.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert documento_detalle: %w", err)
	}
	return nil
}

// GetByID obtiene el encabezado. nil, nil si no existe.
func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	const q = `
		SELECT id, modulo, serial, numero, equipo_id, usuario_uid, tercero, concepto, forma_pago, total, created_at
		FROM documentos WHERE id = $1`
	doc, err := scanDocumento(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return doc, nil
}

// GetDetalles líneas del documento en orden de inserción.
func (r *DocumentoRepo) GetDetalles(ctx context.Context, documentoID string) ([]*entity.DetalleDocumento, error) {
	const q = `
		SELECT id, documento_id, articulo_id, nombre_articulo, cantidad, precio_unitario, subtotal
		FROM documento_detalles
		WHERE documento_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, q, documentoID)
	if err != nil {
		return nil, fmt.Errorf("list documento_detalles: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleDocumento
	for rows.Next() {
		var d entity.DetalleDocumento
		if err := rows.Scan(
			&d.ID, &d.DocumentoID, &d.ArticuloID, &d.NombreArticulo,
			&d.Cantidad, &d.PrecioUnitario, &d.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan documento_detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListByModulo documentos de una serie, más reciente primero.
func (r *DocumentoRepo) ListByModulo(ctx context.Context, modulo entity.Modulo, limit, offset int) ([]*entity.Documento, error) {
	const q = `
		SELECT id, modulo, serial, numero, equipo_id, usuario_uid, tercero, concepto, forma_pago, total, created_at
		FROM documentos
		WHERE modulo = $1
		ORDER BY serial DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, q, modulo, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Documento
	for rows.Next() {
		doc, err := scanDocumento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

func scanDocumento(row pgxScanner) (*entity.Documento, error) {
	var d entity.Documento
	err := row.Scan(
		&d.ID, &d.Modulo, &d.Serial, &d.Numero,
		&d.EquipoID, &d.UsuarioUID, &d.Tercero, &d.Concepto,
		&d.FormaPago, &d.Total, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
