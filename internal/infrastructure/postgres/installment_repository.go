package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

// InstallmentRepo implementación de InstallmentRepository (usable con pool o tx).
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

// CreateBatch persiste el plan de cuotas de una reserva.
func (r *InstallmentRepo) CreateBatch(ctx context.Context, list []*entity.Installment) error {
	query := `
		INSERT INTO installments (id, reservation_id, amount, due_date, status, receipt_path, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, ins := range list {
		if ins.ID == "" {
			ins.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, query,
			ins.ID, ins.ReservationID, ins.Amount, nullIfEmpty(ins.DueDate),
			ins.Status, ins.ReceiptPath, ins.PaymentDate, ins.CreatedAt, ins.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert installment: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una cuota; esta es la copia persistida que consultan las
// reglas de autorización, nunca una copia editada en memoria.
func (r *InstallmentRepo) GetByID(ctx context.Context, id string) (*entity.Installment, error) {
	query := `
		SELECT id, reservation_id, amount, COALESCE(due_date, ''), status,
		       receipt_path, payment_date, created_at, updated_at
		FROM installments WHERE id = $1`
	var ins entity.Installment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ins.ID, &ins.ReservationID, &ins.Amount, &ins.DueDate, &ins.Status,
		&ins.ReceiptPath, &ins.PaymentDate, &ins.CreatedAt, &ins.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return &ins, nil
}

// ListByReservation obtiene las cuotas de una reserva ordenadas por vencimiento.
func (r *InstallmentRepo) ListByReservation(ctx context.Context, reservationID string) ([]*entity.Installment, error) {
	query := `
		SELECT id, reservation_id, amount, COALESCE(due_date, ''), status,
		       receipt_path, payment_date, created_at, updated_at
		FROM installments WHERE reservation_id = $1 ORDER BY due_date NULLS LAST, id`
	rows, err := r.q.Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installment
	for rows.Next() {
		var ins entity.Installment
		if err := rows.Scan(
			&ins.ID, &ins.ReservationID, &ins.Amount, &ins.DueDate, &ins.Status,
			&ins.ReceiptPath, &ins.PaymentDate, &ins.CreatedAt, &ins.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, &ins)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el nuevo estado persistido y, si vienen, el comprobante
// y la fecha de pago (COALESCE: no se pisan con NULL).
func (r *InstallmentRepo) UpdateStatus(ctx context.Context, id, status string, receiptPath *string, paymentDate *time.Time) error {
	query := `
		UPDATE installments
		SET status = $2,
		    receipt_path = COALESCE($3, receipt_path),
		    payment_date = COALESCE($4, payment_date),
		    updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, receiptPath, paymentDate)
	if err != nil {
		return fmt.Errorf("update installment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update installment %s: sin filas afectadas", id)
	}
	return nil
}
