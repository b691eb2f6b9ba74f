package agreement_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

// ── Repositorios en memoria ───────────────────────────────────────────────────

type memAgreements struct {
	mu      sync.Mutex
	byID    map[string]*entity.Agreement
	creates int
}

func newMemAgreements() *memAgreements { return &memAgreements{byID: map[string]*entity.Agreement{}} }

func (m *memAgreements) Create(ctx context.Context, a *entity.Agreement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	for _, x := range m.byID {
		if x.Number == a.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memAgreements) GetByID(ctx context.Context, id string) (*entity.Agreement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *memAgreements) GetByNumber(ctx context.Context, number string) (*entity.Agreement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Number == number {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAgreements) List(ctx context.Context, f repository.AgreementFilter) ([]*entity.Agreement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Agreement
	for _, a := range m.byID {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *memAgreements) ListRecords(ctx context.Context, from, to time.Time) ([]repository.AgreementRecord, error) {
	return nil, nil
}

type memDepartments struct {
	list []*entity.Department
}

func (m *memDepartments) Create(ctx context.Context, d *entity.Department) error {
	m.list = append(m.list, d)
	return nil
}

func (m *memDepartments) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	for _, d := range m.list {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memDepartments) GetByName(ctx context.Context, name string) (*entity.Department, error) {
	for _, d := range m.list {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memDepartments) List(ctx context.Context) ([]*entity.Department, error) { return m.list, nil }

type memYields struct {
	list []entity.YieldRecord
}

func (m *memYields) Create(ctx context.Context, y *entity.YieldRecord) error {
	for _, x := range m.list {
		if x.AgreementID == y.AgreementID && x.Period == y.Period {
			return domain.ErrDuplicate
		}
	}
	m.list = append(m.list, *y)
	return nil
}

func (m *memYields) ExistsForPeriod(ctx context.Context, agreementID, period string) (bool, error) {
	for _, x := range m.list {
		if x.AgreementID == agreementID && x.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (m *memYields) ListByAgreement(ctx context.Context, agreementID string) ([]entity.YieldRecord, error) {
	var out []entity.YieldRecord
	for _, x := range m.list {
		if x.AgreementID == agreementID {
			out = append(out, x)
		}
	}
	return out, nil
}

func (m *memYields) ListByPeriod(ctx context.Context, from, to string) ([]entity.YieldRecord, error) {
	return m.list, nil
}

type memDisbursements struct {
	list []entity.Disbursement
}

func (m *memDisbursements) Create(ctx context.Context, d *entity.Disbursement) error {
	m.list = append(m.list, *d)
	return nil
}

func (m *memDisbursements) GetByID(ctx context.Context, id string) (*entity.Disbursement, error) {
	for _, d := range m.list {
		if d.ID == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memDisbursements) ListByAgreement(ctx context.Context, agreementID string) ([]entity.Disbursement, error) {
	var out []entity.Disbursement
	for _, d := range m.list {
		if d.AgreementID == agreementID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDisbursements) UpdateStatus(ctx context.Context, d *entity.Disbursement) error {
	for i := range m.list {
		if m.list[i].ID == d.ID {
			m.list[i].Status = d.Status
			m.list[i].ExecutedDate = d.ExecutedDate
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memDisbursements) ListExecuted(ctx context.Context, from, to time.Time) ([]entity.Disbursement, error) {
	return nil, nil
}

func (m *memDisbursements) ListUnexecuted(ctx context.Context) ([]entity.Disbursement, error) {
	return nil, nil
}

type memAudit struct {
	logs []entity.AuditLog
	fail error
}

func (m *memAudit) Create(ctx context.Context, l *entity.AuditLog) error {
	if m.fail != nil {
		return m.fail
	}
	m.logs = append(m.logs, *l)
	return nil
}

func (m *memAudit) List(ctx context.Context, f repository.AuditFilter) ([]entity.AuditLog, error) {
	return m.logs, nil
}

// fakeTx ejecuta fn con los mismos repos en memoria (sin rollback real).
type fakeTx struct {
	agreements    *memAgreements
	yields        *memYields
	disbursements *memDisbursements
	audit         *memAudit
	runs          int
}

func (t *fakeTx) RunAgreement(ctx context.Context, fn func(repository.AgreementRepository, repository.AuditRepository) error) error {
	t.runs++
	return fn(t.agreements, t.audit)
}

func (t *fakeTx) RunYield(ctx context.Context, fn func(repository.YieldRepository, repository.AuditRepository) error) error {
	t.runs++
	return fn(t.yields, t.audit)
}

func (t *fakeTx) RunDisbursement(ctx context.Context, fn func(repository.DisbursementRepository, repository.AuditRepository) error) error {
	t.runs++
	return fn(t.disbursements, t.audit)
}

type fixture struct {
	agreements    *memAgreements
	departments   *memDepartments
	yields        *memYields
	disbursements *memDisbursements
	audit         *memAudit
	tx            *fakeTx
}

func newFixture() *fixture {
	f := &fixture{
		agreements:    newMemAgreements(),
		departments:   &memDepartments{list: []*entity.Department{{ID: "5b1f3c8e-8f5e-4a61-9d2a-0c6f1b7d2e90", Name: "Planeación"}}},
		yields:        &memYields{},
		disbursements: &memDisbursements{},
		audit:         &memAudit{},
	}
	f.tx = &fakeTx{agreements: f.agreements, yields: f.yields, disbursements: f.disbursements, audit: f.audit}
	return f
}
