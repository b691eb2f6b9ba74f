package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// DisbursementRepository define el puerto de persistencia para giros.
type DisbursementRepository interface {
	Create(ctx context.Context, d *entity.Disbursement) error
	// GetByID devuelve el giro o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Disbursement, error)
	// ListByAgreement devuelve los giros en orden de programación.
	ListByAgreement(ctx context.Context, agreementID string) ([]entity.Disbursement, error)
	// UpdateStatus guarda estado y fecha de ejecución.
	UpdateStatus(ctx context.Context, d *entity.Disbursement) error
	// ListExecuted giros ejecutados con fecha de ejecución en [from, to]; extremos en cero no limitan.
	ListExecuted(ctx context.Context, from, to time.Time) ([]entity.Disbursement, error)
	// ListUnexecuted giros de todos los convenios aún sin ejecutar, por fecha programada.
	ListUnexecuted(ctx context.Context) ([]entity.Disbursement, error)
}
