// Package docs construye la carga canónica de datos para los documentos de la
// agencia (factura, voucher, contrato) a partir de registros de reserva con
// formas heterogéneas: el respaldo actual usa snake_case pero conviven datos
// históricos en camelCase y colecciones bajo nombres viejos. El normalizador
// prueba una lista ordenada de nombres candidatos por valor lógico y toma el
// primero definido; la salida es una sola estructura canónica, sin alias.
package docs

import "github.com/shopspring/decimal"

// DocumentTypeInvoice marcador de idempotencia: una carga ya canónica se
// reconoce por Meta.DocumentType y se devuelve sin retrabajo.
const DocumentTypeInvoice = "invoice"

// Meta metadatos de la carga canónica.
type Meta struct {
	DocumentType string `json:"document_type"`
}

// AgencyInfo identidad de la agencia (desde los ajustes del negocio).
type AgencyInfo struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ClientInfo titular de la reserva.
type ClientInfo struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// SegmentLine tramo del itinerario con las métricas derivadas de viaje.
type SegmentLine struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
	Nights        int    `json:"nights"`
	Days          int    `json:"days"`
}

// FlightLine vuelo normalizado.
type FlightLine struct {
	Airline       string `json:"airline,omitempty"`
	FlightNumber  string `json:"flight_number,omitempty"`
	FlightClass   string `json:"flight_class,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
}

// HotelLine hospedaje normalizado.
type HotelLine struct {
	Name         string `json:"name,omitempty"`
	RoomCategory string `json:"room_category,omitempty"`
	MealPlan     string `json:"meal_plan,omitempty"`
}

// TourLine tour normalizado.
type TourLine struct {
	Name string          `json:"name,omitempty"`
	Date string          `json:"date,omitempty"`
	Cost decimal.Decimal `json:"cost"`
}

// AssistanceLine asistencia médica normalizada.
type AssistanceLine struct {
	PlanType  string `json:"plan_type,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// TransferLine traslado normalizado, etiquetado con el tramo al que pertenece.
type TransferLine struct {
	Origin       string `json:"origin,omitempty"`
	Destination  string `json:"destination,omitempty"`
	TransferType string `json:"transfer_type,omitempty"`
	SegmentLabel string `json:"segment_label,omitempty"` // "Tramo N: ORIGEN - DESTINO"
}

// PaymentLine renglón de cobro por categoría de pasajero. Solo existen
// renglones para categorías con cantidad y precio unitario positivos.
type PaymentLine struct {
	Concept   string          `json:"concept"`
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// InstallmentLine cuota del plan de pagos.
type InstallmentLine struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date,omitempty"`
	Status  string          `json:"status,omitempty"`
}

// InvoicePayload carga canónica para todas las plantillas de documentos. Cada
// colección vive bajo una sola clave.
type InvoicePayload struct {
	Meta          Meta              `json:"meta"`
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	IssueDate     string            `json:"issue_date,omitempty"`
	Agency        AgencyInfo        `json:"agency"`
	Client        ClientInfo        `json:"client"`
	Segments      []SegmentLine     `json:"segments"`
	TotalNights   int               `json:"total_nights"`
	TotalDays     int               `json:"total_days"`
	FlightCycle   string            `json:"flight_cycle,omitempty"`
	Flights       []FlightLine      `json:"flights"`
	Hotels        []HotelLine       `json:"hotels"`
	Tours         []TourLine        `json:"tours"`
	Assistances   []AssistanceLine  `json:"assistances"`
	Transfers     []TransferLine    `json:"transfers"`
	PaymentLines  []PaymentLine     `json:"payment_lines"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Total         decimal.Decimal   `json:"total"`
	PaymentOption string            `json:"payment_option,omitempty"`
	Installments  []InstallmentLine `json:"installments"`
	Currency      string            `json:"currency,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}
