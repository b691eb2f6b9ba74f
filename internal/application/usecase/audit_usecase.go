package usecase

import (
	"context"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

// AuditUseCase consulta la bitácora de auditoría. Las entradas las escriben los demás casos de uso.
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List devuelve la bitácora filtrada y paginada, más reciente primero.
func (uc *AuditUseCase) List(ctx context.Context, req dto.AuditListRequest) ([]dto.AuditLogResponse, dto.PageResponse, error) {
	req.DefaultPage()
	logs, err := uc.repo.List(ctx, repository.AuditFilter{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		UserID:     req.UserID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.AuditLogResponse{
			ID:         l.ID,
			UserID:     l.UserID,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Detail:     l.Detail,
			CreatedAt:  l.CreatedAt,
		})
	}
	return items, dto.PageResponse{Limit: req.Limit, Offset: req.Offset}, nil
}
