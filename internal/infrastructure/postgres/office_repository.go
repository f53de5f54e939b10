package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

var _ repository.OfficeRepository = (*OfficeRepo)(nil)

// OfficeRepo implementación de OfficeRepository (usable con pool o tx).
type OfficeRepo struct {
	q Querier
}

// NewOfficeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOfficeRepository(q Querier) *OfficeRepo {
	return &OfficeRepo{q: q}
}

// Create persiste la oficina. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (r *OfficeRepo) Create(ctx context.Context, o *entity.Office) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO offices (id, name, address, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Name, o.Address, o.Phone, o.Email, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert office: %w", err)
	}
	return nil
}

// GetByID obtiene una oficina por ID.
func (r *OfficeRepo) GetByID(ctx context.Context, id string) (*entity.Office, error) {
	query := `
		SELECT id, name, address, phone, email, status, created_at, updated_at
		FROM offices WHERE id = $1`
	var o entity.Office
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Address, &o.Phone, &o.Email, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get office: %w", err)
	}
	return &o, nil
}

// List lista oficinas con paginación.
func (r *OfficeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Office, error) {
	query := `
		SELECT id, name, address, phone, email, status, created_at, updated_at
		FROM offices ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Office
	for rows.Next() {
		var o entity.Office
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Address, &o.Phone, &o.Email, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan office: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
