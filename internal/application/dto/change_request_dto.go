package dto

import (
	"encoding/json"
	"time"
)

// CreateChangeRequestRequest body para POST /api/reservations/:id/change-requests.
// Section debe ser una de las secciones soportadas; Payload son los datos
// propuestos para esa sección.
type CreateChangeRequestRequest struct {
	Section string          `json:"section" validate:"required"`
	Payload json.RawMessage `json:"payload"`
	Reason  string          `json:"reason,omitempty"`
}

// ResolveChangeRequestRequest body para POST /api/change-requests/:id/approve
// o /reject. Reason solo es obligatorio (min 10) al rechazar.
type ResolveChangeRequestRequest struct {
	Reason string `json:"reason,omitempty"`
}

// FieldChangeView un campo modificado listo para la revisión lado a lado:
// valores crudos más etiqueta y valores formateados para mostrar.
type FieldChangeView struct {
	Field      string `json:"field"`
	Label      string `json:"label"`
	OldValue   any    `json:"old_value"`
	NewValue   any    `json:"new_value"`
	OldDisplay string `json:"old_display"`
	NewDisplay string `json:"new_display"`
	IsArray    bool   `json:"is_array"`
}

// ChangeRequestResponse solicitud de cambio en respuestas, con el diff
// calculado contra el estado actual de la reserva.
type ChangeRequestResponse struct {
	ID            string            `json:"id"`
	ReservationID string            `json:"reservation_id"`
	Section       string            `json:"section"`
	Payload       json.RawMessage   `json:"payload,omitempty"`
	Status        string            `json:"status"`
	Reason        string            `json:"reason,omitempty"`
	RejectReason  string            `json:"reject_reason,omitempty"`
	RequestedBy   string            `json:"requested_by"`
	ResolvedBy    *string           `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time        `json:"resolved_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Changes       []FieldChangeView `json:"changes,omitempty"`
}
