package csvexport_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/infrastructure/csvexport"
)

func TestGenerateReportCSV(t *testing.T) {
	report := &dto.ReportDTO{Months: []dto.ReportMonthDTO{
		{Key: "2026-01", Month: "ene", Income: decimal.NewFromInt(100), Expense: decimal.NewFromInt(40), Yield: decimal.RequireFromString("5.5")},
		{Key: "2026-02", Month: "feb", Income: decimal.Zero, Expense: decimal.Zero, Yield: decimal.Zero},
	}}

	b, err := csvexport.NewReportCSVWriter().GenerateReportCSV(context.Background(), report)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF}))), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "periodo;mes;ingresos;egresos;rendimientos", lines[0])
	assert.Equal(t, "2026-01;ene;100;40;5.5", lines[1])
	assert.Equal(t, "2026-02;feb;0;0;0", lines[2])
}

func TestGenerateReportCSV_SinMeses(t *testing.T) {
	b, err := csvexport.NewReportCSVWriter().GenerateReportCSV(context.Background(), &dto.ReportDTO{})
	require.NoError(t, err)
	assert.Contains(t, string(b), "periodo;mes;ingresos;egresos;rendimientos")
}
