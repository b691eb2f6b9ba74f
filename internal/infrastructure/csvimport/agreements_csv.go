// Package csvimport lee el archivo plano de convenios que exporta la hoja de cálculo de la
// corporación: separado por ';', en Latin-1 y con una fila por línea de presupuesto.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Convenios-api/internal/domain/convenio"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/pkg/money"
)

// Row una fila del archivo.
type Row struct {
	Number            string `csv:"numero_convenio"`
	Supervisor        string `csv:"supervisor"`
	Department        string `csv:"dependencia"`
	Object            string `csv:"objeto"`
	CounterpartEntity string `csv:"entidad"`
	StartDate         string `csv:"fecha_inicio"`
	EndDate           string `csv:"fecha_final"`
	Status            string `csv:"estado"`
	Activity          string `csv:"actividad"`
	TotalValue        string `csv:"valor_total"`
	CARShare          string `csv:"aporte_car"`
	EntityShare       string `csv:"aporte_entidad"`
}

// RowError error de una fila concreta (1 = primera fila de datos).
type RowError struct {
	Line   int
	Number string
	Err    error
}

func (e *RowError) Error() string {
	if e.Number != "" {
		return fmt.Sprintf("fila %d (convenio %s): %v", e.Line, e.Number, e.Err)
	}
	return fmt.Sprintf("fila %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Options opciones de lectura.
type Options struct {
	// UTF8 omite la decodificación Latin-1 (archivos ya convertidos).
	UTF8 bool
}

// ReadRows decodifica el archivo completo.
func ReadRows(in io.Reader, opts Options) ([]Row, error) {
	if !opts.UTF8 {
		in = transform.NewReader(in, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(in)
	r.Comma = ';'
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows []Row
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return rows, nil
}

// GroupDrafts agrupa las filas por número de convenio, conservando el orden de aparición.
// Los datos de cabecera se toman de la primera fila de cada convenio. Si cualquier fila de un
// convenio tiene montos ilegibles, el convenio completo se descarta y no se devuelve borrador.
func GroupDrafts(rows []Row) ([]convenio.Draft, []error) {
	var (
		drafts   []convenio.Draft
		errs     []error
		index    = map[string]int{}
		rejected = map[string]bool{}
	)
	for i, row := range rows {
		line := i + 1
		number := strings.TrimSpace(row.Number)
		if number == "" {
			errs = append(errs, &RowError{Line: line, Err: fmt.Errorf("sin número de convenio")})
			continue
		}

		bl, err := budgetLine(row)
		if err != nil {
			errs = append(errs, &RowError{Line: line, Number: number, Err: err})
			rejected[number] = true
			continue
		}

		pos, ok := index[number]
		if !ok {
			pos = len(drafts)
			index[number] = pos
			drafts = append(drafts, convenio.Draft{
				Number:            number,
				Supervisor:        strings.TrimSpace(row.Supervisor),
				Department:        strings.TrimSpace(row.Department),
				Object:            strings.TrimSpace(row.Object),
				CounterpartEntity: strings.TrimSpace(row.CounterpartEntity),
				StartDate:         normalizeDate(row.StartDate),
				EndDate:           normalizeDate(row.EndDate),
				Status:            normalizeStatus(row.Status),
			})
		}
		drafts[pos].BudgetLines = append(drafts[pos].BudgetLines, bl)
	}

	if len(rejected) == 0 {
		return drafts, errs
	}
	kept := drafts[:0]
	for _, d := range drafts {
		if !rejected[d.Number] {
			kept = append(kept, d)
		}
	}
	return kept, errs
}

func budgetLine(row Row) (entity.BudgetLine, error) {
	total, err := money.ParseCOP(row.TotalValue)
	if err != nil {
		return entity.BudgetLine{}, fmt.Errorf("valor_total: %w", err)
	}
	car, err := parseOptional(row.CARShare)
	if err != nil {
		return entity.BudgetLine{}, fmt.Errorf("aporte_car: %w", err)
	}
	ent, err := parseOptional(row.EntityShare)
	if err != nil {
		return entity.BudgetLine{}, fmt.Errorf("aporte_entidad: %w", err)
	}
	return entity.BudgetLine{
		Activity:    strings.TrimSpace(row.Activity),
		TotalValue:  total,
		CARShare:    car,
		EntityShare: ent,
	}, nil
}

// parseOptional vacío = 0 (la hoja deja la celda en blanco cuando no hay aporte).
func parseOptional(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return money.ParseCOP(s)
}

// normalizeDate acepta AAAA-MM-DD o DD/MM/AAAA; otro formato se deja igual para que lo rechace la validación.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t.Format(convenio.DateLayout)
	}
	return s
}

func normalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "activo":
		return entity.AgreementStatusActive
	case "finalizado", "terminado":
		return entity.AgreementStatusFinished
	case "en proceso", "en_proceso":
		return entity.AgreementStatusInProcess
	}
	return s
}
