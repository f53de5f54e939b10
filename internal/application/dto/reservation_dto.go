package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
)

// CreateReservationRequest body para POST /api/reservations.
// Los sub-registros de viaje (vuelos, hoteles, tours, asistencias, traslados)
// viajan con la misma forma que las entidades de dominio.
type CreateReservationRequest struct {
	OfficeID       *string                        `json:"office_id,omitempty"`
	Client         entity.Client                  `json:"client" validate:"required"`
	Segments       []entity.TravelSegment         `json:"segments"`
	Flights        []entity.ReservationFlight     `json:"flights,omitempty"`
	Hotels         []entity.ReservationHotel      `json:"hotels,omitempty"`
	Tours          []entity.ReservationTour       `json:"tours,omitempty"`
	Assistances    []entity.ReservationAssistance `json:"medical_assistances,omitempty"`
	Transfers      []entity.ReservationTransfer   `json:"transfers,omitempty"`
	AdultsCount    int                            `json:"adults_count" validate:"min=0"`
	ChildrenCount  int                            `json:"children_count" validate:"min=0"`
	InfantsCount   int                            `json:"infants_count" validate:"min=0"`
	PricePerAdult  decimal.Decimal                `json:"price_per_adult"`
	PricePerChild  decimal.Decimal                `json:"price_per_child"`
	PricePerInfant decimal.Decimal                `json:"price_per_infant"`
	PaymentOption  string                         `json:"payment_option" validate:"required,oneof=full_payment installments"`
	TotalAmount    decimal.Decimal                `json:"total_amount"`
	Notes          string                         `json:"notes,omitempty"`
	// Plan de cuotas inicial; solo aplica si payment_option = installments.
	Installments []InstallmentRequest `json:"installments,omitempty"`
}

// UpdateReservationRequest body para PUT /api/reservations/:id.
// Reemplaza el contenido editable completo del agregado; estado, número de
// factura y trazabilidad no se tocan por esta vía.
type UpdateReservationRequest struct {
	Client         entity.Client                  `json:"client"`
	Segments       []entity.TravelSegment         `json:"segments"`
	Flights        []entity.ReservationFlight     `json:"flights,omitempty"`
	Hotels         []entity.ReservationHotel      `json:"hotels,omitempty"`
	Tours          []entity.ReservationTour       `json:"tours,omitempty"`
	Assistances    []entity.ReservationAssistance `json:"medical_assistances,omitempty"`
	Transfers      []entity.ReservationTransfer   `json:"transfers,omitempty"`
	AdultsCount    int                            `json:"adults_count" validate:"min=0"`
	ChildrenCount  int                            `json:"children_count" validate:"min=0"`
	InfantsCount   int                            `json:"infants_count" validate:"min=0"`
	PricePerAdult  decimal.Decimal                `json:"price_per_adult"`
	PricePerChild  decimal.Decimal                `json:"price_per_child"`
	PricePerInfant decimal.Decimal                `json:"price_per_infant"`
	PaymentOption  string                         `json:"payment_option" validate:"omitempty,oneof=full_payment installments"`
	TotalAmount    decimal.Decimal                `json:"total_amount"`
	Notes          string                         `json:"notes,omitempty"`
}

// RejectReservationRequest body para POST /api/reservations/:id/reject.
// El motivo es obligatorio y con longitud mínima.
type RejectReservationRequest struct {
	Reason string `json:"reason" validate:"required,min=10"`
}

// ReservationResponse reserva completa en respuestas.
type ReservationResponse struct {
	ID             string                         `json:"id"`
	OfficeID       *string                        `json:"office_id,omitempty"`
	AdvisorID      string                         `json:"advisor_id"`
	Client         entity.Client                  `json:"client"`
	Segments       []entity.TravelSegment         `json:"segments"`
	Flights        []entity.ReservationFlight     `json:"flights,omitempty"`
	Hotels         []entity.ReservationHotel      `json:"hotels,omitempty"`
	Tours          []entity.ReservationTour       `json:"tours,omitempty"`
	Assistances    []entity.ReservationAssistance `json:"medical_assistances,omitempty"`
	Transfers      []entity.ReservationTransfer   `json:"transfers,omitempty"`
	AdultsCount    int                            `json:"adults_count"`
	ChildrenCount  int                            `json:"children_count"`
	InfantsCount   int                            `json:"infants_count"`
	PricePerAdult  decimal.Decimal                `json:"price_per_adult"`
	PricePerChild  decimal.Decimal                `json:"price_per_child"`
	PricePerInfant decimal.Decimal                `json:"price_per_infant"`
	PaymentOption  string                         `json:"payment_option"`
	TotalAmount    decimal.Decimal                `json:"total_amount"`
	Status         string                         `json:"status"`
	InvoiceNumber  string                         `json:"invoice_number,omitempty"`
	RejectReason   string                         `json:"reject_reason,omitempty"`
	Notes          string                         `json:"notes,omitempty"`
	CreatedAt      time.Time                      `json:"created_at"`
	UpdatedAt      time.Time                      `json:"updated_at"`
}

// ReservationListRequest filtros de GET /api/reservations.
type ReservationListRequest struct {
	PageRequest
	Status    string `query:"status"`
	OfficeID  string `query:"office_id"`
	AdvisorID string `query:"advisor_id"`
	Search    string `query:"search"` // nombre o documento del cliente, o número de factura
}
