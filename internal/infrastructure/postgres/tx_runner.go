package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andresjj98/appagencia-api/internal/application/reservation"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

// Ensure TxRunner implements reservation.TxRunner.
var _ reservation.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunApproval inicia una transacción con los repos que participan en la
// aprobación de una reserva (reserva + consecutivo de facturación + plan de
// cuotas) y hace Commit o Rollback según el resultado de fn.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	resRepo repository.ReservationRepository,
	settingsRepo repository.SettingsRepository,
	insRepo repository.InstallmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	resRepo := NewReservationRepository(tx)
	settingsRepo := NewSettingsRepository(tx)
	insRepo := NewInstallmentRepository(tx)

	if err := fn(resRepo, settingsRepo, insRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
