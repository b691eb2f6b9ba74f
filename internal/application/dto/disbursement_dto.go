package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain/finance"
)

// CreateDisbursementRequest entrada de POST /api/agreements/:id/disbursements.
type CreateDisbursementRequest struct {
	Payer         string          `json:"entidad"`
	Amount        decimal.Decimal `json:"monto"`
	ScheduledDate string          `json:"fechaProgramada"` // AAAA-MM-DD
}

// ExecuteDisbursementRequest entrada de POST /api/disbursements/:id/execute.
type ExecuteDisbursementRequest struct {
	ExecutedDate string `json:"fechaEjecutada"` // AAAA-MM-DD
}

// DisbursementTrackingResponse giros de un convenio por pagador y colisiones de consecutivo.
type DisbursementTrackingResponse struct {
	AgreementID string                      `json:"convenio_id"`
	Summary     finance.DisbursementSummary `json:"resumen"`
	Collisions  []finance.SequenceCollision `json:"colisiones,omitempty"`
}
