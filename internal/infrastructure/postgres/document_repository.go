package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo consulta metadatos de documentos soporte.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// ListByAgreement documentos del convenio, más reciente primero.
func (r *DocumentRepo) ListByAgreement(ctx context.Context, agreementID string) ([]entity.Document, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, agreement_id, name, type, status, uploaded_at
		FROM documents WHERE agreement_id = $1 ORDER BY uploaded_at DESC`, agreementID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.AgreementID, &d.Name, &d.Type, &d.Status, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// CountByStatus cuenta documentos en el estado dado (p. ej. pendientes de revisión).
func (r *DocumentRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}
