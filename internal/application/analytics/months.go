package analytics

import (
	"fmt"
	"sort"
	"time"
)

var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// shortMonthLabel nombre corto del mes en es-CO, ej: "ene".
func shortMonthLabel(m time.Month) string {
	return shortMonths[m-1]
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

// monthKey clave AAAA-MM del mes calendario de t.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// labelForKey convierte "2026-01" en "ene". Claves mal formadas se devuelven tal cual.
func labelForKey(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return shortMonthLabel(t.Month())
}

// sortedKeys claves AAAA-MM en orden cronológico (el orden lexicográfico coincide).
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
