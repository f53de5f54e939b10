package entity

import (
	"encoding/json"
	"time"
)

// Estados de una solicitud de cambio. Una vez resuelta (approved, rejected o
// applied) es historial inmutable: nunca se reabre.
const (
	ChangeRequestPending  = "pending"
	ChangeRequestApproved = "approved"
	ChangeRequestRejected = "rejected"
	ChangeRequestApplied  = "applied"
)

// ChangeRequest solicitud de modificación de una reserva confirmada, creada
// por un asesor y resuelta por un gestor/administrador. Section indica qué
// parte de la reserva se quiere modificar y Payload lleva los cambios
// propuestos con la forma propia de cada sección.
type ChangeRequest struct {
	ID            string
	ReservationID string
	Section       string // ver internal/domain/changeset.Section
	Reason        string
	Payload       json.RawMessage
	Status        string
	RejectReason  string // obligatoria (mínimo 10 caracteres) al rechazar
	RequestedBy   string
	ResolvedBy    *string
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Resolved indica si la solicitud ya fue resuelta (inmutable).
func (cr *ChangeRequest) Resolved() bool {
	return cr.Status != ChangeRequestPending
}
