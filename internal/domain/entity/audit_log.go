package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditAgreementCreated    = "agreement.created"
	AuditYieldCalculated     = "yield.calculated"
	AuditDisbursementAdded   = "disbursement.added"
	AuditDisbursementUpdated = "disbursement.updated"
	AuditLogin               = "auth.login"
	AuditLogout              = "auth.logout"
)

// AuditLog entrada de la bitácora de auditoría (solo inserción).
type AuditLog struct {
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Detail     string
	CreatedAt  time.Time
}
