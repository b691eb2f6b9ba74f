package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Convenios-api/internal/application/analytics"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

func ptr[T any](v T) *T { return &v }

func TestAdaptAgreement_RegistroCompleto(t *testing.T) {
	rec := repository.AgreementRecord{
		ID:            "c1",
		Number:        ptr("CAR-001-2025"),
		Status:        ptr(entity.AgreementStatusActive),
		StartDate:     ptr(date(2025, 3, 1)),
		EndDate:       ptr(date(2026, 2, 28)),
		ApprovedValue: ptr(dec("180000000")),
		CreatedAt:     ptr(date(2025, 2, 20)),
		Department:    &repository.DepartmentRef{Name: ptr("Planeación")},
	}

	v, gaps := analytics.AdaptAgreement(rec)
	assert.Empty(t, gaps)
	assert.Equal(t, "CAR-001-2025", v.Number)
	assert.Equal(t, "2025-2026", v.Validity)
	assert.True(t, v.HasEndDate)
	assert.True(t, v.HasCreatedAt)
	assert.Equal(t, "Planeación", v.DepartmentName)
	assert.True(t, v.ApprovedValue.Equal(dec("180000000")))
}

func TestAdaptAgreement_ValoresPorDefecto(t *testing.T) {
	v, gaps := analytics.AdaptAgreement(repository.AgreementRecord{ID: "c2", Department: &repository.DepartmentRef{Name: ptr("  ")}})

	assert.Equal(t, "", v.Number)
	assert.Equal(t, entity.AgreementStatusInProcess, v.Status)
	assert.Equal(t, analytics.NoDepartmentLabel, v.DepartmentName)
	assert.False(t, v.HasEndDate)
	assert.False(t, v.HasCreatedAt)
	assert.True(t, v.ApprovedValue.IsZero())
	assert.Equal(t, "", v.Validity)
	require.Len(t, gaps, 2)
	assert.Equal(t, "convenio[c2].fecha_creacion", gaps[0].Field)
	assert.Equal(t, "convenio[c2].valor_total_aprobado", gaps[1].Field)
}

func TestAdaptAgreement_ValorNegativoSeAnula(t *testing.T) {
	v, gaps := analytics.AdaptAgreement(repository.AgreementRecord{
		ID: "c3", ApprovedValue: ptr(dec("-5")), CreatedAt: ptr(time.Now()),
	})
	assert.True(t, v.ApprovedValue.IsZero())
	require.Len(t, gaps, 1)
}
