package repository

import (
	"context"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// AuditFilter criterios de consulta de la bitácora.
type AuditFilter struct {
	EntityType string
	EntityID   string
	UserID     string
	Limit      int
	Offset     int
}

// AuditRepository bitácora de auditoría de solo inserción.
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, f AuditFilter) ([]entity.AuditLog, error)
}
