package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

// Ensure TxRunner implements agreement.TxRunner.
var _ agreement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAgreement inicia una transacción con los repos de convenios y bitácora (registro de convenio).
func (r *TxRunner) RunAgreement(ctx context.Context, fn func(
	agreementRepo repository.AgreementRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewAgreementRepository(tx), NewAuditRepository(tx))
	})
}

// RunYield inicia una transacción con los repos de rendimientos y bitácora.
func (r *TxRunner) RunYield(ctx context.Context, fn func(
	yieldRepo repository.YieldRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewYieldRepository(tx), NewAuditRepository(tx))
	})
}

// RunDisbursement inicia una transacción con los repos de giros y bitácora.
func (r *TxRunner) RunDisbursement(ctx context.Context, fn func(
	disbursementRepo repository.DisbursementRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewDisbursementRepository(tx), NewAuditRepository(tx))
	})
}

// run hace Begin, ejecuta fn y Commit; cualquier error deja la transacción en Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
