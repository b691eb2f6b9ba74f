package repository

import (
	"context"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// DocumentRepository consulta los metadatos de documentos soporte.
type DocumentRepository interface {
	ListByAgreement(ctx context.Context, agreementID string) ([]entity.Document, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
