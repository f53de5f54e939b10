package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

var _ repository.ChangeRequestRepository = (*ChangeRequestRepo)(nil)

// ChangeRequestRepo implementación de ChangeRequestRepository (usable con pool o tx).
type ChangeRequestRepo struct {
	q Querier
}

// NewChangeRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChangeRequestRepository(q Querier) *ChangeRequestRepo {
	return &ChangeRequestRepo{q: q}
}

// Create persiste la solicitud de cambio con su payload JSONB.
func (r *ChangeRequestRepo) Create(ctx context.Context, cr *entity.ChangeRequest) error {
	if cr.ID == "" {
		cr.ID = uuid.New().String()
	}
	query := `
		INSERT INTO change_requests (id, reservation_id, section, reason, payload, status, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		cr.ID, cr.ReservationID, cr.Section, cr.Reason, []byte(cr.Payload),
		cr.Status, cr.RequestedBy, cr.CreatedAt, cr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert change request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud completa.
func (r *ChangeRequestRepo) GetByID(ctx context.Context, id string) (*entity.ChangeRequest, error) {
	query := `
		SELECT id, reservation_id, section, reason, payload, status,
		       COALESCE(reject_reason, ''), requested_by, resolved_by, resolved_at,
		       created_at, updated_at
		FROM change_requests WHERE id = $1`
	cr, err := scanChangeRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get change request: %w", err)
	}
	return cr, nil
}

// ListByReservation historial de solicitudes de una reserva, recientes primero.
func (r *ChangeRequestRepo) ListByReservation(ctx context.Context, reservationID string) ([]*entity.ChangeRequest, error) {
	query := `
		SELECT id, reservation_id, section, reason, payload, status,
		       COALESCE(reject_reason, ''), requested_by, resolved_by, resolved_at,
		       created_at, updated_at
		FROM change_requests WHERE reservation_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list change requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChangeRequest
	for rows.Next() {
		cr, err := scanChangeRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan change request: %w", err)
		}
		list = append(list, cr)
	}
	return list, rows.Err()
}

// Resolve escribe la resolución SOLO si la solicitud sigue pendiente: la
// cláusula WHERE hace cumplir en DB que una solicitud resuelta es inmutable.
func (r *ChangeRequestRepo) Resolve(ctx context.Context, cr *entity.ChangeRequest) error {
	query := `
		UPDATE change_requests
		SET status = $2, reject_reason = $3, resolved_by = $4, resolved_at = $5, updated_at = $6
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(ctx, query,
		cr.ID, cr.Status, nullIfEmpty(cr.RejectReason), cr.ResolvedBy, cr.ResolvedAt, cr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("resolve change request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resolve change request %s: ya resuelta o inexistente", cr.ID)
	}
	return nil
}

func scanChangeRequest(row pgxScanner) (*entity.ChangeRequest, error) {
	var cr entity.ChangeRequest
	var payload []byte
	err := row.Scan(
		&cr.ID, &cr.ReservationID, &cr.Section, &cr.Reason, &payload, &cr.Status,
		&cr.RejectReason, &cr.RequestedBy, &cr.ResolvedBy, &cr.ResolvedAt,
		&cr.CreatedAt, &cr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cr.Payload = payload
	return &cr, nil
}
