// Package pdf genera el informe financiero de convenios en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del informe  │  Rango de fechas              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ingresos / Egresos / Rendimientos                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Mes | Ingresos | Egresos | Rendimientos              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DEPENDENCIAS: Nombre | Convenios | % del máximo             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Advertencias de calidad de datos                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Convenios-api/internal/application/analytics"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/pkg/money"
)

var _ analytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 180, Green: 83, Blue: 9}
)

// maxWarningsInPDF limita el listado de advertencias al pie; el resto se resume en una línea.
const maxWarningsInPDF = 15

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	institution string
	now         func() time.Time
}

// NewMarotoReportGenerator construye el generador. institution aparece en el encabezado.
func NewMarotoReportGenerator(institution string) *MarotoReportGenerator {
	return &MarotoReportGenerator{institution: institution, now: time.Now}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, report *dto.ReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: informe vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe financiero de convenios", true).
		WithAuthor(g.institution, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report.Totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("SERIE MENSUAL"))
	m.AddRows(monthHeaderRow())
	m.AddRows(monthRows(report.Months)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("CONVENIOS POR DEPENDENCIA"))
	m.AddRows(departmentRows(report.Departments)...)

	if len(report.Warnings) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(warningRows(report)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: institución + título (izq) y rango + fecha de emisión (der).
func (g *MarotoReportGenerator) headerRow(r *dto.ReportDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.institution, "Convenios"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Informe financiero de convenios", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(r.From, "inicio")+" a "+nonEmpty(r.To, "hoy"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func totalsRow(t dto.ReportTotalsDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 6}),
		)
	}
	return row.New(16).Add(
		cell("Ingresos", money.FormatCOP(t.Income)),
		cell("Egresos", money.FormatCOP(t.Expense)),
		cell("Rendimientos", money.FormatCOP(t.Yield)),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func monthHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Mes", 3, align.Left),
		h("Ingresos", 3, align.Right),
		h("Egresos", 3, align.Right),
		h("Rendimientos", 3, align.Right),
	)
}

// monthRows: una fila por mes del rango.
func monthRows(months []dto.ReportMonthDTO) []core.Row {
	if len(months) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin convenios en el período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	result := make([]core.Row, 0, len(months))
	for _, m := range months {
		amount := func(s string) core.Col {
			return col.New(3).Add(text.New(s, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(m.Month, props.Text{Size: 8, Top: 1, Left: 1})),
			amount(money.FormatCOP(m.Income)),
			amount(money.FormatCOP(m.Expense)),
			amount(money.FormatCOP(m.Yield)),
		))
	}
	return result
}

func departmentRows(depts []dto.DepartmentShareDTO) []core.Row {
	result := make([]core.Row, 0, len(depts))
	for _, d := range depts {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(d.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(strconv.Itoa(d.Count), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(d.PercentageLabel, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
		))
	}
	return result
}

// warningRows: campos ausentes reemplazados por valores por defecto.
func warningRows(r *dto.ReportDTO) []core.Row {
	rows := []core.Row{sectionTitle("ADVERTENCIAS DE CALIDAD DE DATOS")}
	for i, w := range r.Warnings {
		if i == maxWarningsInPDF {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(fmt.Sprintf("... y %d advertencias más.", len(r.Warnings)-maxWarningsInPDF),
					props.Text{Size: 6.5, Color: colorGray, Left: 2}),
			)))
			break
		}
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(w.String(), props.Text{Size: 6.5, Color: colorWarn, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
