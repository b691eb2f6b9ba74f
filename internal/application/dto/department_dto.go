package dto

// DepartmentResponse salida de una dependencia.
type DepartmentResponse struct {
	ID     string `json:"id"`
	Name   string `json:"nombre"`
	Code   string `json:"codigo,omitempty"`
	Status string `json:"estado"`
}
