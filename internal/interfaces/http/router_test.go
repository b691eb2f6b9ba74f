package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	"github.com/jhoicas/Convenios-api/internal/application/analytics"
	"github.com/jhoicas/Convenios-api/internal/application/auth"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/application/usecase"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Convenios-api/internal/interfaces/http"
)

// ── Fakes de repositorio ──────────────────────────────────────────────────────

type stubAgreements struct {
	repository.AgreementRepository
	byID map[string]*entity.Agreement
}

func (s *stubAgreements) GetByID(ctx context.Context, id string) (*entity.Agreement, error) {
	return s.byID[id], nil
}

func (s *stubAgreements) ListRecords(ctx context.Context, from, to time.Time) ([]repository.AgreementRecord, error) {
	var out []repository.AgreementRecord
	for _, a := range s.byID {
		out = append(out, recordOf(a))
	}
	return out, nil
}

// recordOf registro crudo tal como lo devolvería ListRecords para a.
func recordOf(a *entity.Agreement) repository.AgreementRecord {
	value := a.TotalValue
	rec := repository.AgreementRecord{
		ID:            a.ID,
		Number:        &a.Number,
		Status:        &a.Status,
		ApprovedValue: &value,
		CreatedAt:     &a.CreatedAt,
		Department:    &repository.DepartmentRef{Name: &a.DepartmentName},
	}
	if !a.StartDate.IsZero() {
		rec.StartDate = &a.StartDate
	}
	if !a.EndDate.IsZero() {
		rec.EndDate = &a.EndDate
	}
	return rec
}

type stubYields struct{ repository.YieldRepository }

func (stubYields) ListByPeriod(ctx context.Context, from, to string) ([]entity.YieldRecord, error) {
	return nil, nil
}

type stubDocuments struct{ repository.DocumentRepository }

func (stubDocuments) CountByStatus(ctx context.Context, status string) (int, error) { return 2, nil }

func (stubDocuments) ListByAgreement(ctx context.Context, agreementID string) ([]entity.Document, error) {
	if agreementID != "c1" {
		return nil, nil
	}
	return []entity.Document{
		{ID: "d2", AgreementID: "c1", Name: "Póliza de cumplimiento", Type: "pdf", Status: entity.DocumentPending},
		{ID: "d1", AgreementID: "c1", Name: "Acta de inicio", Type: "pdf", Status: entity.DocumentApproved},
	}, nil
}

type stubDisbursements struct{ repository.DisbursementRepository }

func (stubDisbursements) ListExecuted(ctx context.Context, from, to time.Time) ([]entity.Disbursement, error) {
	return nil, nil
}

func (stubDisbursements) ListUnexecuted(ctx context.Context) ([]entity.Disbursement, error) {
	return []entity.Disbursement{{
		ID: "g1", AgreementID: "c1", Sequence: 1, Payer: entity.PayerCAR, Amount: decimal.NewFromInt(5000000),
		ScheduledDate: time.Now().AddDate(0, 0, -45), Status: entity.DisbursementScheduled,
	}}, nil
}

type stubAlertReads struct {
	mu   sync.Mutex
	read map[string][]string
}

func (s *stubAlertReads) ListRead(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.read[userID]...), nil
}

func (s *stubAlertReads) MarkRead(ctx context.Context, userID string, ids []string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.read[userID] = append(s.read[userID], ids...)
	return nil
}

type stubAudit struct{ repository.AuditRepository }

func (stubAudit) List(ctx context.Context, f repository.AuditFilter) ([]entity.AuditLog, error) {
	return []entity.AuditLog{{ID: "1", Action: entity.AuditLogin}}, nil
}

func newTestRouter() *fiber.App {
	agreements := &stubAgreements{byID: map[string]*entity.Agreement{
		"c1": {
			ID: "c1", Number: "CAR-001-2026", Status: entity.AgreementStatusActive,
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), CreatedAt: time.Now(),
			TotalValue: decimal.NewFromInt(180000000), DepartmentName: "Planeación",
		},
	}}
	rates := agreement.DeductionRates{Withholding: decimal.RequireFromString("2.5"), BankFee: decimal.RequireFromString("0.5")}

	alerts := analytics.NewAlertUseCase(agreements, stubDisbursements{}, stubDocuments{},
		&stubAlertReads{read: map[string][]string{}}, 30, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AgreementUC:   agreement.NewAgreementUseCase(agreements, nil, nil, nil),
		YieldUC:       agreement.NewYieldUseCase(agreements, stubYields{}, nil, rates, nil),
		DashboardUC:   analytics.NewDashboardUseCase(agreements, stubYields{}, stubDocuments{}, 30, nil),
		ReportUC:      analytics.NewReportUseCase(agreements, stubDisbursements{}, stubYields{}, nil, nil, nil),
		AlertUC:       alerts,
		DocumentUC:    usecase.NewDocumentUseCase(stubDocuments{}, agreements),
		AuditUC:       usecase.NewAuditUseCase(stubAudit{}),
		Authenticator: fakeAuthenticator{},
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRouter_Health(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodGet, "/health", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_RutaProtegidaSinToken(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodGet, "/api/agreements/c1", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ConvenioNoExiste404(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodGet, "/api/agreements/nada", "tok-consulta", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "NOT_FOUND", e.Code)
}

func TestRouter_SimularRendimiento(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodPost, "/api/yields/simulate", "tok-consulta",
		`{"valorBase": 108000000, "tasaAnual": 12}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.YieldResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "$ 1.080.000", out.GrossYieldLabel)
	assert.Equal(t, "$ 32.400", out.DeductionsLabel)
	assert.Equal(t, "$ 1.047.600", out.NetYieldLabel)
}

func TestRouter_SimularTasaNegativa400(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodPost, "/api/yields/simulate", "tok-consulta",
		`{"valorBase": 1000, "tasaAnual": -1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "INVALID_RATE", e.Code)
}

func TestRouter_ConsultaNoPuedeRegistrarConvenio(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodPost, "/api/agreements", "tok-consulta", `{}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_BorradorInvalido400(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodPost, "/api/agreements", "tok-supervisor", `{"numero_convenio": "X"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "supervisor")
	assert.Contains(t, body.Fields, "fecha_inicio")
	assert.NotContains(t, body.Fields, "numero_convenio")
}

func TestRouter_Dashboard(t *testing.T) {
	app := newTestRouter()
	resp := call(t, app, http.MethodGet, "/api/dashboard/summary", "tok-consulta", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var m dto.DashboardMetricsDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, 1, m.TotalAgreements)
	assert.Equal(t, 2, m.PendingDocuments)
	assert.Equal(t, "$ 180.000.000", m.TotalBalanceLabel)

	current := call(t, app, http.MethodGet, "/api/dashboard/current", "tok-consulta", "")
	defer current.Body.Close()
	var c dto.DashboardMetricsDTO
	require.NoError(t, json.NewDecoder(current.Body).Decode(&c))
	assert.Equal(t, m.Sequence, c.Sequence)
}

func TestRouter_InformeRangoInvalido400(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodGet, "/api/reports?from=2026-02-01&to=2026-01-01", "tok-consulta", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_InformeCSVSinExportador500(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodGet, "/api/reports/csv", "tok-consulta", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRouter_BitacoraSoloAdmin(t *testing.T) {
	app := newTestRouter()

	denied := call(t, app, http.MethodGet, "/api/audit-logs", "tok-supervisor", "")
	defer denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)

	ok := call(t, app, http.MethodGet, "/api/audit-logs?entity_type=session", "tok-admin", "")
	defer ok.Body.Close()
	assert.Equal(t, http.StatusOK, ok.StatusCode)
}

func TestRouter_DocumentosDelConvenio(t *testing.T) {
	app := newTestRouter()

	resp := call(t, app, http.MethodGet, "/api/agreements/c1/documents", "tok-consulta", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.DocumentListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Póliza de cumplimiento", out.Items[0].Name)
	assert.Equal(t, 1, out.Pending)
	assert.Equal(t, 1, out.Approved)

	missing := call(t, app, http.MethodGet, "/api/agreements/nada/documents", "tok-consulta", "")
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestRouter_AlertasListarYMarcar(t *testing.T) {
	app := newTestRouter()

	resp := call(t, app, http.MethodGet, "/api/alerts", "tok-consulta", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list dto.AlertListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Items, 2, "giro vencido y documentos pendientes")
	assert.Equal(t, "financiero:g1", list.Items[0].ID)
	assert.Equal(t, entity.PriorityHigh, list.Items[0].Priority)
	assert.Equal(t, "documento:pendientes:2", list.Items[1].ID)
	assert.Equal(t, 2, list.Unread)

	read := call(t, app, http.MethodPost, "/api/alerts/financiero:g1/read", "tok-consulta", "")
	defer read.Body.Close()
	require.Equal(t, http.StatusOK, read.StatusCode)
	var alert entity.Alert
	require.NoError(t, json.NewDecoder(read.Body).Decode(&alert))
	assert.True(t, alert.Read)

	unread := call(t, app, http.MethodGet, "/api/alerts?leida=false", "tok-consulta", "")
	defer unread.Body.Close()
	require.NoError(t, json.NewDecoder(unread.Body).Decode(&list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "documento:pendientes:2", list.Items[0].ID)

	all := call(t, app, http.MethodPost, "/api/alerts/read-all", "tok-consulta", "")
	defer all.Body.Close()
	require.Equal(t, http.StatusOK, all.StatusCode)
	var marked dto.MarkAllReadResponse
	require.NoError(t, json.NewDecoder(all.Body).Decode(&marked))
	assert.Equal(t, 1, marked.Marked)
}

func TestRouter_AlertaInexistente404(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodPost, "/api/alerts/vencimiento%3Anada/read", "tok-consulta", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_AlertasSinToken401(t *testing.T) {
	resp := call(t, newTestRouter(), http.MethodGet, "/api/alerts", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

var _ apphttp.Authenticator = (*auth.AuthUseCase)(nil)
