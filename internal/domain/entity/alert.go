package entity

import "time"

// Tipos de alerta.
const (
	AlertExpiration = "vencimiento"
	AlertFinancial  = "financiero"
	AlertDocument   = "documento"
	AlertExecution  = "ejecucion"
)

// Prioridades de alerta, de mayor a menor.
const (
	PriorityHigh   = "alta"
	PriorityMedium = "media"
	PriorityLow    = "baja"
)

// Alert notificación derivada del estado de los convenios. No se almacena: el ID es estable
// mientras la condición que la origina no cambie, y solo se guarda qué usuario la leyó.
type Alert struct {
	ID          string    `json:"id"`
	AgreementID string    `json:"convenioId,omitempty"`
	Type        string    `json:"tipo"`
	Priority    string    `json:"prioridad"`
	Message     string    `json:"mensaje"`
	Date        time.Time `json:"fecha"`
	Read        bool      `json:"leida"`
}

// PriorityRank orden de presentación: alta = 0, media = 1, baja = 2, desconocida al final.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}
