package agreement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/convenio"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

var now = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func draft() convenio.Draft {
	return convenio.Draft{
		Number:            "CAR-045-2026",
		Supervisor:        "Ana Rojas",
		Department:        "Planeación",
		Object:            "Restauración de rondas hídricas",
		CounterpartEntity: "Municipio de Zipaquirá",
		StartDate:         "2026-01-15",
		EndDate:           "2026-12-31",
		BudgetLines: []entity.BudgetLine{
			{Activity: "X", TotalValue: dec("180000000"), CARShare: dec("108000000"), EntityShare: dec("72000000")},
		},
	}
}

func submitted(t *testing.T, f *fixture) *dto.AgreementResponse {
	t.Helper()
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil).WithClock(func() time.Time { return now })
	res, err := uc.Submit(context.Background(), "user-1", draft())
	require.NoError(t, err)
	return &res.Agreement
}

// ── Envío de convenios ────────────────────────────────────────────────────────

func TestSubmit_PersisteConTotalesDerivados(t *testing.T) {
	f := newFixture()
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil).WithClock(func() time.Time { return now })

	res, err := uc.Submit(context.Background(), "user-1", draft())
	require.NoError(t, err)

	a := res.Agreement
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "2026", a.Validity)
	assert.Equal(t, "Planeación", a.DepartmentName)
	assert.True(t, a.TotalValue.Equal(dec("180000000")))
	assert.True(t, a.CARContribution.Equal(dec("108000000")))
	assert.True(t, a.EntityContribution.Equal(dec("72000000")))
	assert.Equal(t, "$ 180.000.000", a.TotalValueLabel)
	assert.Empty(t, res.Warnings)

	require.Len(t, f.audit.logs, 1)
	assert.Equal(t, entity.AuditAgreementCreated, f.audit.logs[0].Action)
	assert.Equal(t, "user-1", f.audit.logs[0].UserID)
}

func TestSubmit_BorradorInvalidoNoLlamaPersistencia(t *testing.T) {
	f := newFixture()
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil)

	d := draft()
	d.BudgetLines = nil
	_, err := uc.Submit(context.Background(), "user-1", d)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, 0, f.tx.runs)
	assert.Equal(t, 0, f.agreements.creates)
	assert.Empty(t, f.audit.logs)
}

func TestSubmit_DependenciaInexistente(t *testing.T) {
	f := newFixture()
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil)

	d := draft()
	d.Department = "Oficina inexistente"
	_, err := uc.Submit(context.Background(), "user-1", d)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.tx.runs)
}

func TestSubmit_DependenciaPorID(t *testing.T) {
	f := newFixture()
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil)

	d := draft()
	d.Department = f.departments.list[0].ID
	res, err := uc.Submit(context.Background(), "user-1", d)
	require.NoError(t, err)
	assert.Equal(t, "Planeación", res.Agreement.DepartmentName)
}

func TestSubmit_NumeroDuplicado(t *testing.T) {
	f := newFixture()
	submitted(t, f)

	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil)
	_, err := uc.Submit(context.Background(), "user-2", draft())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSubmit_AdvierteLineaInconsistente(t *testing.T) {
	f := newFixture()
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil)

	d := draft()
	d.BudgetLines[0].EntityShare = dec("70000000")
	res, err := uc.Submit(context.Background(), "user-1", d)
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 1)
}

func TestSubmit_FallaBitacoraRevierte(t *testing.T) {
	f := newFixture()
	f.audit.fail = errors.New("audit caído")
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil)

	_, err := uc.Submit(context.Background(), "user-1", draft())
	assert.Error(t, err)
}

func TestGetByIDYBudget(t *testing.T) {
	f := newFixture()
	created := submitted(t, f)
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, got.Number)

	budget, err := uc.Budget(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, budget.Consistency.Consistent)
	assert.True(t, budget.Consistency.Computed.TotalValue.Equal(dec("180000000")))

	_, err = uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_EstadoInvalido(t *testing.T) {
	f := newFixture()
	uc := agreement.NewAgreementUseCase(f.agreements, f.departments, f.tx, nil)

	_, err := uc.List(context.Background(), dto.AgreementListRequest{Status: "archivado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	submitted(t, f)
	list, err := uc.List(context.Background(), dto.AgreementListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Nil(t, list.Items[0].BudgetLines)
	assert.Equal(t, 20, list.Page.Limit)
}

// ── Rendimientos ──────────────────────────────────────────────────────────────

func TestYield_SimulateEscenarioReferencia(t *testing.T) {
	f := newFixture()
	uc := agreement.NewYieldUseCase(f.agreements, f.yields, f.tx, agreement.DefaultDeductionRates(), nil)

	res, err := uc.Simulate(dto.SimulateYieldRequest{BaseValue: dec("108000000"), AnnualRatePercent: dec("12")})
	require.NoError(t, err)
	assert.Equal(t, "$ 1.080.000", res.GrossYieldLabel)
	assert.Equal(t, "$ 32.400", res.DeductionsLabel)
	assert.Equal(t, "$ 1.047.600", res.NetYieldLabel)
}

func TestYield_SimulateTasaInvalida(t *testing.T) {
	f := newFixture()
	uc := agreement.NewYieldUseCase(f.agreements, f.yields, f.tx, agreement.DefaultDeductionRates(), nil)

	_, err := uc.Simulate(dto.SimulateYieldRequest{BaseValue: dec("1"), AnnualRatePercent: dec("-1")})
	var rateErr *domain.InvalidRateError
	assert.True(t, errors.As(err, &rateErr))
}

func TestYield_RecordUsaAporteCARYRechazaDuplicado(t *testing.T) {
	f := newFixture()
	created := submitted(t, f)
	uc := agreement.NewYieldUseCase(f.agreements, f.yields, f.tx, agreement.DefaultDeductionRates(), nil).
		WithClock(func() time.Time { return now })

	y, err := uc.Record(context.Background(), "user-1", created.ID, dto.RecordYieldRequest{Period: "2026-01", AnnualRatePercent: dec("12")})
	require.NoError(t, err)
	assert.True(t, y.BaseValue.Equal(dec("108000000")))
	assert.True(t, y.InterestRate.Equal(dec("0.12")))
	assert.True(t, y.NetYield.Equal(dec("1047600")))
	assert.Equal(t, now, y.CalculatedAt)

	_, err = uc.Record(context.Background(), "user-1", created.ID, dto.RecordYieldRequest{Period: "2026-01", AnnualRatePercent: dec("11")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.TotalNet.Equal(dec("1047600")))
	assert.True(t, list.Items[0].AnnualRatePercent.Equal(dec("12")), "la fracción guardada vuelve a porcentaje")
	assert.Equal(t, "12%", list.Items[0].AnnualRateLabel)
}

func TestYield_RecordPeriodoInvalidoYConvenioInexistente(t *testing.T) {
	f := newFixture()
	uc := agreement.NewYieldUseCase(f.agreements, f.yields, f.tx, agreement.DefaultDeductionRates(), nil)

	_, err := uc.Record(context.Background(), "u", "x", dto.RecordYieldRequest{Period: "enero", AnnualRatePercent: dec("12")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(context.Background(), "u", "x", dto.RecordYieldRequest{Period: "2026-01", AnnualRatePercent: dec("12")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Giros ─────────────────────────────────────────────────────────────────────

func TestDisbursement_ConsecutivoPorPagador(t *testing.T) {
	f := newFixture()
	created := submitted(t, f)
	uc := agreement.NewDisbursementUseCase(f.agreements, f.disbursements, f.tx, nil)
	ctx := context.Background()

	add := func(payer string) *entity.Disbursement {
		d, err := uc.Add(ctx, "u", created.ID, dto.CreateDisbursementRequest{Payer: payer, Amount: dec("1000"), ScheduledDate: "2026-03-01"})
		require.NoError(t, err)
		return d
	}
	assert.Equal(t, 1, add("CAR").Sequence)
	assert.Equal(t, 2, add("car").Sequence)
	assert.Equal(t, 1, add("ENTIDAD").Sequence)
	assert.Equal(t, entity.DisbursementScheduled, f.disbursements.list[0].Status)

	track, err := uc.Track(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, track.Summary.CAR.Count)
	assert.Equal(t, 1, track.Summary.Entity.Count)
	assert.Empty(t, track.Collisions)
}

func TestDisbursement_Validaciones(t *testing.T) {
	f := newFixture()
	created := submitted(t, f)
	uc := agreement.NewDisbursementUseCase(f.agreements, f.disbursements, f.tx, nil)
	ctx := context.Background()

	_, err := uc.Add(ctx, "u", created.ID, dto.CreateDisbursementRequest{Payer: "BANCO", Amount: dec("1"), ScheduledDate: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Add(ctx, "u", created.ID, dto.CreateDisbursementRequest{Payer: "CAR", Amount: dec("0"), ScheduledDate: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Add(ctx, "u", created.ID, dto.CreateDisbursementRequest{Payer: "CAR", Amount: dec("1"), ScheduledDate: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Add(ctx, "u", "no-existe", dto.CreateDisbursementRequest{Payer: "CAR", Amount: dec("1"), ScheduledDate: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDisbursement_EjecutarYVencer(t *testing.T) {
	f := newFixture()
	created := submitted(t, f)
	uc := agreement.NewDisbursementUseCase(f.agreements, f.disbursements, f.tx, nil).
		WithClock(func() time.Time { return time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC) })
	ctx := context.Background()

	d1, err := uc.Add(ctx, "u", created.ID, dto.CreateDisbursementRequest{Payer: "CAR", Amount: dec("500"), ScheduledDate: "2026-03-01"})
	require.NoError(t, err)
	d2, err := uc.Add(ctx, "u", created.ID, dto.CreateDisbursementRequest{Payer: "CAR", Amount: dec("700"), ScheduledDate: "2026-04-01"})
	require.NoError(t, err)

	executed, err := uc.Execute(ctx, "u", d1.ID, dto.ExecuteDisbursementRequest{ExecutedDate: "2026-02-27"})
	require.NoError(t, err, "una ejecución anterior a la fecha programada se acepta")
	assert.Equal(t, entity.DisbursementExecuted, executed.Status)

	_, err = uc.Execute(ctx, "u", d1.ID, dto.ExecuteDisbursementRequest{ExecutedDate: "2026-03-02"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.MarkOverdue(ctx, "u", d2.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "aún no vence")

	track, err := uc.Track(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, track.Summary.CAR.Status(entity.DisbursementExecuted).Amount.Equal(dec("500")))
	assert.True(t, track.Summary.CAR.Status(entity.DisbursementScheduled).Amount.Equal(dec("700")))

	actions := make([]string, 0, len(f.audit.logs))
	for _, l := range f.audit.logs {
		actions = append(actions, l.Action)
	}
	assert.Contains(t, actions, entity.AuditDisbursementUpdated)
}
