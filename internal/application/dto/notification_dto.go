package dto

import "time"

// NotificationResponse aviso de un usuario en respuestas.
type NotificationResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Body          string    `json:"body,omitempty"`
	ReservationID *string   `json:"reservation_id,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

// NotificationListRequest filtros de GET /api/notifications.
type NotificationListRequest struct {
	PageRequest
	OnlyUnread bool `query:"unread"`
}
