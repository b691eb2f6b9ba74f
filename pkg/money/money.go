// Package money formatea y lee montos en pesos colombianos (COP).
//
// Los cálculos se hacen siempre con decimal.Decimal a precisión completa; el
// redondeo a pesos enteros ocurre únicamente aquí, al presentar el valor.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale usado para todas las cifras presentadas al usuario.
var Locale = language.MustParse("es-CO")

const currencySymbol = "$"

var printer = message.NewPrinter(Locale)

// FormatCOP devuelve el monto en formato es-CO sin decimales, ej. "$ 1.080.000".
func FormatCOP(d decimal.Decimal) string {
	whole := d.Round(0)
	sign := ""
	if whole.IsNegative() {
		sign = "-"
		whole = whole.Abs()
	}
	return sign + currencySymbol + " " + printer.Sprint(number.Decimal(whole.IntPart()))
}

// FormatPercent agrega "%" a un valor ya expresado en escala 0 a 100 (máximo 2 decimales).
func FormatPercent(d decimal.Decimal) string {
	f := d.Round(2).InexactFloat64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2))) + "%"
}

// ParseCOP lee montos escritos a la colombiana: "$ 180.000.000", "1.234,56", "1234,5" o "1234.5".
// Un único punto seguido de exactamente tres dígitos se interpreta como separador de miles.
func ParseCOP(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	clean := strings.NewReplacer(currencySymbol, "", " ", "", " ", "", "COP", "").Replace(raw)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("monto vacío")
	}

	switch {
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	case strings.Count(clean, ".") == 1:
		if i := strings.Index(clean, "."); len(clean)-i-1 == 3 {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto inválido %q: %w", raw, err)
	}
	return d, nil
}
