package repository

import (
	"context"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// YieldRepository define el puerto de persistencia para rendimientos (solo inserción).
type YieldRepository interface {
	// Create inserta el registro. Un segundo registro para (convenio, período) → domain.ErrDuplicate.
	Create(ctx context.Context, y *entity.YieldRecord) error
	ExistsForPeriod(ctx context.Context, agreementID, period string) (bool, error)
	ListByAgreement(ctx context.Context, agreementID string) ([]entity.YieldRecord, error)
	// ListByPeriod rendimientos con período AAAA-MM en [fromPeriod, toPeriod]; "" no limita.
	ListByPeriod(ctx context.Context, fromPeriod, toPeriod string) ([]entity.YieldRecord, error)
}
