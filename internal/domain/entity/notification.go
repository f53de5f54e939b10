package entity

import "time"

// Tipos de notificación emitidos por el flujo de aprobación.
const (
	NotifReservationApproved   = "reservation.approved"
	NotifReservationRejected   = "reservation.rejected"
	NotifChangeRequestCreated  = "change_request.created"
	NotifChangeRequestResolved = "change_request.resolved"
)

// Notification aviso persistido para un usuario. Además de guardarse en DB se
// publica como evento en la cola; un fallo de publicación nunca bloquea la
// operación que lo originó.
type Notification struct {
	ID            string
	UserID        string
	Type          string
	Title         string
	Body          string
	ReservationID *string
	Read          bool
	CreatedAt     time.Time
}
