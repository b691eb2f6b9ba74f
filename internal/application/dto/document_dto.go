package dto

import "time"

// DocumentResponse metadatos de un documento soporte.
type DocumentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"nombre"`
	Type       string    `json:"tipo"`
	Status     string    `json:"estado"`
	UploadedAt time.Time `json:"fecha_carga"`
}

// DocumentListResponse salida de GET /api/agreements/:id/documents.
type DocumentListResponse struct {
	AgreementID string             `json:"convenio_id"`
	Items       []DocumentResponse `json:"items"`
	Pending     int                `json:"pendientes"`
	Approved    int                `json:"aprobados"`
	Rejected    int                `json:"rechazados"`
}
