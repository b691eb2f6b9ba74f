package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/finance"
)

var day0 = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func giro(id, payer string, seq int, amount, status string) entity.Disbursement {
	return entity.Disbursement{
		ID: id, Payer: payer, Sequence: seq, Amount: dec(amount),
		Status: status, ScheduledDate: day0,
	}
}

func TestTrackDisbursements_ParticionYTotales(t *testing.T) {
	list := []entity.Disbursement{
		giro("1", entity.PayerCAR, 1, "100", entity.DisbursementExecuted),
		giro("2", entity.PayerEntity, 1, "50", entity.DisbursementScheduled),
		giro("3", entity.PayerCAR, 2, "200", entity.DisbursementScheduled),
		giro("4", entity.PayerCAR, 3, "300", entity.DisbursementPending),
		giro("5", entity.PayerEntity, 2, "70", entity.DisbursementExecuted),
	}

	s := finance.TrackDisbursements(list)

	require.Len(t, s.CAR.Disbursements, 3)
	assert.Equal(t, []string{"1", "3", "4"}, ids(s.CAR.Disbursements), "conserva el orden relativo")
	assert.Equal(t, []string{"2", "5"}, ids(s.Entity.Disbursements))

	assert.Equal(t, 3, s.CAR.Count)
	assert.True(t, s.CAR.Total.Equal(dec("600")))
	assert.Equal(t, 1, s.CAR.Status(entity.DisbursementExecuted).Count)
	assert.True(t, s.CAR.Status(entity.DisbursementScheduled).Amount.Equal(dec("200")))
	assert.True(t, s.CAR.Status(entity.DisbursementPending).Amount.Equal(dec("300")))

	assert.True(t, s.Entity.Status(entity.DisbursementExecuted).Amount.Equal(dec("70")))
	assert.Equal(t, 0, s.Entity.Status(entity.DisbursementPending).Count)
	assert.Empty(t, s.Warnings)
}

func TestTrackDisbursements_PagadorDesconocido(t *testing.T) {
	s := finance.TrackDisbursements([]entity.Disbursement{
		giro("1", "OTRO", 1, "100", entity.DisbursementScheduled),
		giro("2", entity.PayerCAR, 1, "10", "anulado"),
	})
	assert.Equal(t, 0, s.Entity.Count)
	assert.Equal(t, 1, s.CAR.Count)
	assert.True(t, s.CAR.Total.Equal(dec("10")))
	assert.Len(t, s.Warnings, 2)
}

func TestTrackDisbursements_SinGiros(t *testing.T) {
	s := finance.TrackDisbursements(nil)
	assert.Equal(t, 0, s.CAR.Count)
	assert.NotNil(t, s.CAR.Disbursements)
	assert.Len(t, s.CAR.ByStatus, 3)
}

func TestNextSequence_PorPagador(t *testing.T) {
	list := []entity.Disbursement{
		giro("1", entity.PayerCAR, 1, "1", entity.DisbursementScheduled),
		giro("2", entity.PayerCAR, 2, "1", entity.DisbursementScheduled),
		giro("3", entity.PayerEntity, 1, "1", entity.DisbursementScheduled),
	}
	assert.Equal(t, 3, finance.NextSequence(list, entity.PayerCAR))
	assert.Equal(t, 2, finance.NextSequence(list, entity.PayerEntity))
	assert.Equal(t, 1, finance.NextSequence(nil, entity.PayerCAR))
}

func TestDuplicateSequences_TrasEliminarGiro(t *testing.T) {
	// Giros CAR 1,2,3; se elimina el 1 y el siguiente recibe 2+1 = 3 → colisión.
	list := []entity.Disbursement{
		giro("b", entity.PayerCAR, 2, "1", entity.DisbursementScheduled),
		giro("c", entity.PayerCAR, 3, "1", entity.DisbursementScheduled),
	}
	next := finance.NextSequence(list, entity.PayerCAR)
	list = append(list, giro("d", entity.PayerCAR, next, "1", entity.DisbursementScheduled))

	collisions := finance.DuplicateSequences(list)
	require.Len(t, collisions, 1)
	assert.Equal(t, entity.PayerCAR, collisions[0].Payer)
	assert.Equal(t, 3, collisions[0].Sequence)
	assert.Equal(t, []string{"c", "d"}, collisions[0].IDs)
}

func TestExecuteDisbursement(t *testing.T) {
	d := giro("1", entity.PayerCAR, 1, "100", entity.DisbursementScheduled)

	require.NoError(t, finance.ExecuteDisbursement(&d, day0.AddDate(0, 0, 2)))
	assert.Equal(t, entity.DisbursementExecuted, d.Status)
	require.NotNil(t, d.ExecutedDate)

	err := finance.ExecuteDisbursement(&d, day0)
	assert.ErrorIs(t, err, domain.ErrConflict, "no se ejecuta dos veces")
}

func TestExecuteDisbursement_FechaAnteriorSeAcepta(t *testing.T) {
	d := giro("1", entity.PayerCAR, 1, "100", entity.DisbursementScheduled)
	assert.NoError(t, finance.ExecuteDisbursement(&d, day0.AddDate(0, 0, -10)))
}

func TestExecuteDisbursement_SinFecha(t *testing.T) {
	d := giro("1", entity.PayerCAR, 1, "100", entity.DisbursementScheduled)
	assert.ErrorIs(t, finance.ExecuteDisbursement(&d, time.Time{}), domain.ErrInvalidInput)
}

func TestMarkOverdue(t *testing.T) {
	d := giro("1", entity.PayerEntity, 1, "100", entity.DisbursementScheduled)

	assert.ErrorIs(t, finance.MarkOverdue(&d, day0), domain.ErrInvalidInput, "el mismo día no está vencido")

	require.NoError(t, finance.MarkOverdue(&d, day0.AddDate(0, 0, 1)))
	assert.Equal(t, entity.DisbursementPending, d.Status)

	exec := giro("2", entity.PayerEntity, 2, "100", entity.DisbursementExecuted)
	assert.ErrorIs(t, finance.MarkOverdue(&exec, day0.AddDate(0, 1, 0)), domain.ErrConflict)
}

func TestDaysBetween_IgnoraHora(t *testing.T) {
	today := time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 30, finance.DaysBetween(today, time.Date(2026, 1, 31, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, -1, finance.DaysBetween(today, time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, finance.DaysBetween(today, today))
}

func ids(list []entity.Disbursement) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.ID)
	}
	return out
}
