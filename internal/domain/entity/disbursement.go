package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pagadores de un giro.
const (
	PayerCAR    = "CAR"
	PayerEntity = "ENTIDAD"
)

// Estados de un giro. Se crea "programado"; pasa a "ejecutado" al registrar la fecha de ejecución
// o a "pendiente" cuando vence sin ejecutarse (transición manual).
const (
	DisbursementScheduled = "programado"
	DisbursementExecuted  = "ejecutado"
	DisbursementPending   = "pendiente"
)

// Payers orden canónico de presentación.
var Payers = []string{PayerCAR, PayerEntity}

// DisbursementStatuses orden canónico de estados.
var DisbursementStatuses = []string{DisbursementScheduled, DisbursementExecuted, DisbursementPending}

// Disbursement giro programado o ejecutado de un convenio.
type Disbursement struct {
	ID            string          `json:"id"`
	AgreementID   string          `json:"-"`
	Sequence      int             `json:"numeroGiro"` // consecutivo por (convenio, pagador)
	Payer         string          `json:"entidad"`
	Amount        decimal.Decimal `json:"monto"`
	ScheduledDate time.Time       `json:"fechaProgramada"`
	ExecutedDate  *time.Time      `json:"fechaEjecutada,omitempty"`
	Status        string          `json:"estado"`
}

// IsValidPayer indica si p es CAR o ENTIDAD.
func IsValidPayer(p string) bool {
	return p == PayerCAR || p == PayerEntity
}
