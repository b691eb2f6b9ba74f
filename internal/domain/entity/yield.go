package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodLayout formato del período de un rendimiento (año-mes).
const PeriodLayout = "2006-01"

// YieldRecord rendimiento financiero calculado para un convenio y un período.
// Inmutable una vez creado: el historial es de solo inserción.
type YieldRecord struct {
	ID           string          `json:"id"`
	AgreementID  string          `json:"-"`
	Period       string          `json:"periodo"`     // AAAA-MM
	InterestRate decimal.Decimal `json:"tasaInteres"` // fracción: 0.12 = 12 %
	BaseValue    decimal.Decimal `json:"valorBase"`
	GrossYield   decimal.Decimal `json:"rendimientoBruto"`
	Deductions   decimal.Decimal `json:"deducciones"`
	NetYield     decimal.Decimal `json:"rendimientoNeto"`
	CalculatedAt time.Time       `json:"fechaCalculo"`
}
