package entity

import "time"

// Estados de revisión de un documento.
const (
	DocumentPending  = "pendiente"
	DocumentApproved = "aprobado"
	DocumentRejected = "rechazado"
)

// Document soporte documental asociado a un convenio (solo metadatos; el archivo vive fuera).
type Document struct {
	ID          string
	AgreementID string
	Name        string
	Type        string
	Status      string
	UploadedAt  time.Time
}
