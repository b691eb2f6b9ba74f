package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

// DocumentUseCase consulta los documentos soporte de un convenio. La carga de archivos no pasa por la API.
type DocumentUseCase struct {
	documents  repository.DocumentRepository
	agreements repository.AgreementRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(documents repository.DocumentRepository, agreements repository.AgreementRepository) *DocumentUseCase {
	return &DocumentUseCase{documents: documents, agreements: agreements}
}

// ListByAgreement documentos del convenio, más reciente primero, con el conteo por estado.
func (uc *DocumentUseCase) ListByAgreement(ctx context.Context, agreementID string) (*dto.DocumentListResponse, error) {
	a, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("documentos: obtener convenio: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.documents.ListByAgreement(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	out := &dto.DocumentListResponse{AgreementID: agreementID, Items: make([]dto.DocumentResponse, 0, len(list))}
	for _, d := range list {
		out.Items = append(out.Items, dto.DocumentResponse{
			ID: d.ID, Name: d.Name, Type: d.Type, Status: d.Status, UploadedAt: d.UploadedAt,
		})
		switch d.Status {
		case entity.DocumentPending:
			out.Pending++
		case entity.DocumentApproved:
			out.Approved++
		case entity.DocumentRejected:
			out.Rejected++
		}
	}
	return out, nil
}
