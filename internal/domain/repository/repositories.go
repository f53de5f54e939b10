// Package repository define los puertos de persistencia del dominio. Las
// implementaciones viven en internal/infrastructure/postgres y son usables
// tanto con el pool como dentro de una transacción.
package repository

import (
	"context"
	"time"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
)

// ReservationFilter criterios de listado de reservas.
type ReservationFilter struct {
	Status    string
	OfficeID  *string
	AdvisorID string
	Limit     int
	Offset    int
}

// ReservationRepository persistencia del agregado de reservas.
type ReservationRepository interface {
	Create(ctx context.Context, r *entity.Reservation) error
	Update(ctx context.Context, r *entity.Reservation) error
	UpdateStatus(ctx context.Context, id, status, rejectReason, invoiceNumber string, updatedAt time.Time) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	List(ctx context.Context, f ReservationFilter) ([]*entity.Reservation, error)
}

// InstallmentRepository persistencia de cuotas.
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, list []*entity.Installment) error
	GetByID(ctx context.Context, id string) (*entity.Installment, error)
	ListByReservation(ctx context.Context, reservationID string) ([]*entity.Installment, error)
	UpdateStatus(ctx context.Context, id, status string, receiptPath *string, paymentDate *time.Time) error
}

// ChangeRequestRepository persistencia de solicitudes de cambio.
type ChangeRequestRepository interface {
	Create(ctx context.Context, cr *entity.ChangeRequest) error
	GetByID(ctx context.Context, id string) (*entity.ChangeRequest, error)
	ListByReservation(ctx context.Context, reservationID string) ([]*entity.ChangeRequest, error)
	Resolve(ctx context.Context, cr *entity.ChangeRequest) error
}

// SettingsRepository persistencia del singleton de ajustes del negocio.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.BusinessSettings, error)
	Update(ctx context.Context, s *entity.BusinessSettings) error
	// NextInvoiceSeq avanza y devuelve el consecutivo de facturación. Debe
	// llamarse dentro de la transacción de aprobación.
	NextInvoiceSeq(ctx context.Context) (int, error)
}

// UserRepository persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// ListByRoles usuarios activos con alguno de los roles dados (fan-out de
	// notificaciones a quienes resuelven solicitudes).
	ListByRoles(ctx context.Context, roles []string) ([]*entity.User, error)
}

// OfficeRepository persistencia de oficinas.
type OfficeRepository interface {
	Create(ctx context.Context, o *entity.Office) error
	GetByID(ctx context.Context, id string) (*entity.Office, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Office, error)
}

// NotificationRepository persistencia de notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
