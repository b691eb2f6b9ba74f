package dto

import "github.com/jhoicas/Convenios-api/internal/domain/entity"

// AlertListResponse salida de GET /api/alerts.
type AlertListResponse struct {
	Items  []entity.Alert `json:"items"`
	Total  int            `json:"total"`
	Unread int            `json:"no_leidas"`
	ByType map[string]int `json:"por_tipo"`
}

// MarkAllReadResponse salida de POST /api/alerts/read-all.
type MarkAllReadResponse struct {
	Marked int `json:"marcadas"`
}
