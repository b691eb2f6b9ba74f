package agreement

import (
	"context"

	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// La escritura del dato y su entrada de bitácora se confirman juntas o no se confirman.
type TxRunner interface {
	RunAgreement(ctx context.Context, fn func(
		agreementRepo repository.AgreementRepository,
		auditRepo repository.AuditRepository,
	) error) error

	RunYield(ctx context.Context, fn func(
		yieldRepo repository.YieldRepository,
		auditRepo repository.AuditRepository,
	) error) error

	RunDisbursement(ctx context.Context, fn func(
		disbursementRepo repository.DisbursementRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
