package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva. Una reserva nunca se elimina: solo transiciona.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationRejected  = "rejected"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// Opciones de pago.
const (
	PaymentFull         = "full_payment"
	PaymentInstallments = "installments"
)

// Client datos del titular de la reserva.
type Client struct {
	Name     string `json:"name"`
	LastName string `json:"last_name,omitempty"`
	IDNumber string `json:"id_number,omitempty"` // cédula o pasaporte
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// TravelSegment un tramo del itinerario (origen, destino, fechas).
// Las fechas se manejan como fecha calendario (YYYY-MM-DD), sin hora.
type TravelSegment struct {
	ID            string `json:"id,omitempty"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
}

// ReservationFlight vuelo asociado a la reserva.
type ReservationFlight struct {
	ID            string `json:"id,omitempty"`
	Airline       string `json:"airline,omitempty"`
	FlightNumber  string `json:"flight_number,omitempty"`
	FlightClass   string `json:"flight_class,omitempty"` // economy, premium, business
	DepartureTime string `json:"departure_time,omitempty"`
}

// ReservationHotel hospedaje asociado a la reserva.
type ReservationHotel struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	RoomCategory string `json:"room_category,omitempty"`
	MealPlan     string `json:"meal_plan,omitempty"`
}

// ReservationTour actividad/tour contratado.
type ReservationTour struct {
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name,omitempty"`
	Date string          `json:"date,omitempty"`
	Cost decimal.Decimal `json:"cost,omitempty"`
}

// ReservationAssistance asistencia médica en viaje.
type ReservationAssistance struct {
	ID        string `json:"id,omitempty"`
	PlanType  string `json:"plan_type,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// ReservationTransfer traslado (in/out) asociado a un tramo del itinerario.
// SegmentID referencia explícita al tramo; si falta, el emparejamiento se hace
// por igualdad de origen/destino contra los tramos.
type ReservationTransfer struct {
	ID           string  `json:"id,omitempty"`
	SegmentID    *string `json:"segment_id,omitempty"`
	Origin       string  `json:"origin,omitempty"`
	Destination  string  `json:"destination,omitempty"`
	TransferType string  `json:"transfer_type,omitempty"` // in, out, full
}

// Reservation agregado principal: cliente, itinerario, sub-registros de viaje,
// pago y estado. Creada por un asesor; mutada según las reglas de authz;
// InvoiceNumber se asigna una sola vez al confirmar y nunca se reasigna.
type Reservation struct {
	ID            string
	OfficeID      *string
	AdvisorID     string
	Client        Client
	Segments      []TravelSegment
	Flights       []ReservationFlight
	Hotels        []ReservationHotel
	Tours         []ReservationTour
	Assistances   []ReservationAssistance
	Transfers     []ReservationTransfer
	AdultsCount   int
	ChildrenCount int
	InfantsCount  int
	PricePerAdult  decimal.Decimal
	PricePerChild  decimal.Decimal
	PricePerInfant decimal.Decimal
	PaymentOption string // full_payment | installments
	TotalAmount   decimal.Decimal
	Status        string
	InvoiceNumber string // vacío hasta la confirmación
	RejectReason  string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidStatusTransition valida las transiciones permitidas del agregado.
// pending -> confirmed | rejected | cancelled
// rejected -> pending (el asesor corrige y reenvía)
// confirmed -> completed | cancelled
func ValidStatusTransition(from, to string) bool {
	switch from {
	case ReservationPending:
		return to == ReservationConfirmed || to == ReservationRejected || to == ReservationCancelled
	case ReservationRejected:
		return to == ReservationPending || to == ReservationCancelled
	case ReservationConfirmed:
		return to == ReservationCompleted || to == ReservationCancelled
	}
	return false
}
