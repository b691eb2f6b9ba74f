package dto

import "time"

// AuditListRequest query de GET /api/audit-logs.
type AuditListRequest struct {
	PageRequest
	EntityType string `query:"entity_type"`
	EntityID   string `query:"entity_id"`
	UserID     string `query:"user_id"`
}

// AuditLogResponse entrada de la bitácora.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
