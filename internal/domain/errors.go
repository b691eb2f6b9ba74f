package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrSessionEnded = errors.New("la sesión fue cerrada o expiró")
)

// ValidationError entrada de formulario o de agregador mal formada o incompleta.
// Se presenta al usuario como mensaje en línea y aborta el envío.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error para el campo indicado.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ValidationFields recorre err (incluidos los errors.Join) y devuelve campo → mensaje de
// cada *ValidationError. El primer mensaje de un campo gana. nil si no hay ninguno.
func ValidationFields(err error) map[string]string {
	var out map[string]string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if v, ok := e.(*ValidationError); ok {
			if out == nil {
				out = map[string]string{}
			}
			if _, seen := out[v.Field]; !seen {
				out[v.Field] = v.Message
			}
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

// InvalidRateError parámetro numérico negativo o fuera de rango para la calculadora de rendimientos.
type InvalidRateError struct {
	Param string
	Value decimal.Decimal
	Rule  string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("%s=%s inválido: %s", e.Param, e.Value.String(), e.Rule)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *InvalidRateError) Unwrap() error { return ErrInvalidInput }

// DataGap advertencia no fatal: un campo ausente en la fuente se reemplazó por su valor por defecto.
type DataGap struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (g DataGap) String() string { return g.Field + ": " + g.Reason }
