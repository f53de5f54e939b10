package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación de ReservationRepository (usable con pool o tx).
// Las colecciones del agregado (tramos, vuelos, hoteles, tours, asistencias,
// traslados) se guardan como JSONB: tienen forma heterogénea y ciclo de vida
// atado a la reserva; las cuotas y solicitudes de cambio, con ciclo propio,
// van en tablas aparte.
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `
	id, office_id, advisor_id, client, segments, flights, hotels, tours,
	medical_assistances, transfers, adults, children, infants,
	price_per_adult, price_per_child, price_per_infant,
	payment_option, total_amount, status, invoice_number, reject_reason,
	notes, created_at, updated_at`

// Create persiste la reserva completa.
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	cols, err := marshalCollections(res)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`
	_, err = r.q.Exec(ctx, query,
		res.ID, res.OfficeID, res.AdvisorID,
		cols.client, cols.segments, cols.flights, cols.hotels, cols.tours,
		cols.assistances, cols.transfers,
		res.AdultsCount, res.ChildrenCount, res.InfantsCount,
		res.PricePerAdult, res.PricePerChild, res.PricePerInfant,
		res.PaymentOption, res.TotalAmount, res.Status,
		nullIfEmpty(res.InvoiceNumber), nullIfEmpty(res.RejectReason),
		res.Notes, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// Update reescribe los campos mutables de la reserva (no toca estado ni
// número de factura: eso pasa por UpdateStatus).
func (r *ReservationRepo) Update(ctx context.Context, res *entity.Reservation) error {
	cols, err := marshalCollections(res)
	if err != nil {
		return err
	}
	query := `
		UPDATE reservations
		SET client = $2, segments = $3, flights = $4, hotels = $5, tours = $6,
		    medical_assistances = $7, transfers = $8,
		    adults = $9, children = $10, infants = $11,
		    price_per_adult = $12, price_per_child = $13, price_per_infant = $14,
		    payment_option = $15, total_amount = $16, notes = $17, updated_at = $18
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		res.ID,
		cols.client, cols.segments, cols.flights, cols.hotels, cols.tours,
		cols.assistances, cols.transfers,
		res.AdultsCount, res.ChildrenCount, res.InfantsCount,
		res.PricePerAdult, res.PricePerChild, res.PricePerInfant,
		res.PaymentOption, res.TotalAmount, res.Notes, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update reservation %s: sin filas afectadas", res.ID)
	}
	return nil
}

// UpdateStatus transiciona el estado. El número de factura se escribe con
// COALESCE sobre NULL: una vez asignado nunca se reasigna, aunque el caller
// lo mande de nuevo. El motivo de rechazo sí se reescribe en cada transición
// (rechazar lo fija, aprobar o reenviar lo limpia).
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id, status, rejectReason, invoiceNumber string, updatedAt time.Time) error {
	query := `
		UPDATE reservations
		SET status = $2,
		    reject_reason = $3,
		    invoice_number = COALESCE(invoice_number, $4),
		    updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, nullIfEmpty(rejectReason), nullIfEmpty(invoiceNumber), updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number ya existe: %w", err)
		}
		return fmt.Errorf("update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update reservation status %s: sin filas afectadas", id)
	}
	return nil
}

// GetByID obtiene la reserva completa.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// List lista reservas con filtros opcionales de estado, oficina y asesor.
func (r *ReservationRepo) List(ctx context.Context, f repository.ReservationFilter) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	args := []any{}
	n := 0
	add := func(cond string, v any) {
		n++
		query += fmt.Sprintf(" AND %s = $%d", cond, n)
		args = append(args, v)
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	if f.OfficeID != nil {
		add("office_id", *f.OfficeID)
	}
	if f.AdvisorID != "" {
		add("advisor_id", f.AdvisorID)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// ── helpers ───────────────────────────────────────────────────────────────────

type jsonCollections struct {
	client, segments, flights, hotels, tours, assistances, transfers []byte
}

func marshalCollections(res *entity.Reservation) (jsonCollections, error) {
	var c jsonCollections
	var err error
	marshal := func(dst *[]byte, v any) {
		if err != nil {
			return
		}
		*dst, err = json.Marshal(v)
	}
	marshal(&c.client, res.Client)
	marshal(&c.segments, res.Segments)
	marshal(&c.flights, res.Flights)
	marshal(&c.hotels, res.Hotels)
	marshal(&c.tours, res.Tours)
	marshal(&c.assistances, res.Assistances)
	marshal(&c.transfers, res.Transfers)
	if err != nil {
		return jsonCollections{}, fmt.Errorf("marshal reservation: %w", err)
	}
	return c, nil
}

// pgxScanner abstrae pgx.Row y pgx.Rows para reutilizar scanReservation.
type pgxScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row pgxScanner) (*entity.Reservation, error) {
	var res entity.Reservation
	var c jsonCollections
	var invoiceNumber, rejectReason *string
	err := row.Scan(
		&res.ID, &res.OfficeID, &res.AdvisorID,
		&c.client, &c.segments, &c.flights, &c.hotels, &c.tours,
		&c.assistances, &c.transfers,
		&res.AdultsCount, &res.ChildrenCount, &res.InfantsCount,
		&res.PricePerAdult, &res.PricePerChild, &res.PricePerInfant,
		&res.PaymentOption, &res.TotalAmount, &res.Status,
		&invoiceNumber, &rejectReason,
		&res.Notes, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.InvoiceNumber = derefStr(invoiceNumber)
	res.RejectReason = derefStr(rejectReason)

	unmarshal := func(src []byte, dst any) {
		if err != nil || len(src) == 0 {
			return
		}
		err = json.Unmarshal(src, dst)
	}
	unmarshal(c.client, &res.Client)
	unmarshal(c.segments, &res.Segments)
	unmarshal(c.flights, &res.Flights)
	unmarshal(c.hotels, &res.Hotels)
	unmarshal(c.tours, &res.Tours)
	unmarshal(c.assistances, &res.Assistances)
	unmarshal(c.transfers, &res.Transfers)
	if err != nil {
		return nil, fmt.Errorf("unmarshal reservation: %w", err)
	}
	return &res, nil
}
