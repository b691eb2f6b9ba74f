package entity

import "github.com/shopspring/decimal"

// BudgetLine línea del presupuesto de un convenio.
// Se espera TotalValue == CARShare + EntityShare, pero no se impone: es un tema de calidad de datos.
type BudgetLine struct {
	ID          string          `json:"id"`
	AgreementID string          `json:"-"`
	Item        int             `json:"item"`
	Activity    string          `json:"actividad"`
	TotalValue  decimal.Decimal `json:"valorTotal"`
	CARShare    decimal.Decimal `json:"aporteCAR"`
	EntityShare decimal.Decimal `json:"aporteEntidad"`
}
