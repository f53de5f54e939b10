// Package changeset implementa el motor de diferencias de las solicitudes de
// cambio: cada sección de la reserva tiene una proyección fija que sirve de
// línea base, y los cambios propuestos se comparan campo a campo contra ella
// para la revisión lado a lado del gestor.
package changeset

import (
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
)

// Section conjunto cerrado de secciones modificables de una reserva. Se usa un
// tipo propio (no strings libres) para que el switch del proyector sea
// exhaustivo y no exista un default silencioso.
type Section string

const (
	SectionClient             Section = "client"
	SectionPassengers         Section = "passengers"
	SectionItinerary          Section = "itinerary"
	SectionPayment            Section = "payment"
	SectionFlights            Section = "flights"
	SectionHotels             Section = "hotels"
	SectionTours              Section = "tours"
	SectionMedicalAssistances Section = "medicalAssistances"
	SectionTransfers          Section = "transfers"
	SectionCancellation       Section = "cancellation"
)

var allSections = []Section{
	SectionClient, SectionPassengers, SectionItinerary, SectionPayment,
	SectionFlights, SectionHotels, SectionTours, SectionMedicalAssistances,
	SectionTransfers, SectionCancellation,
}

// ParseSection valida una etiqueta de sección recibida por la API.
func ParseSection(s string) (Section, bool) {
	for _, sec := range allSections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// CurrentData devuelve la proyección de la reserva que sirve de línea base
// para la sección. Retorna nil cuando la sección no tiene estado previo
// comparable (una cancelación no modifica campos: pide terminar la reserva).
func CurrentData(sec Section, r *entity.Reservation) map[string]any {
	if r == nil {
		return nil
	}
	switch sec {
	case SectionClient:
		return map[string]any{
			"name":      r.Client.Name,
			"last_name": r.Client.LastName,
			"id_number": r.Client.IDNumber,
			"email":     r.Client.Email,
			"phone":     r.Client.Phone,
			"address":   r.Client.Address,
		}
	case SectionPassengers:
		return map[string]any{
			"adults":   r.AdultsCount,
			"children": r.ChildrenCount,
			"infants":  r.InfantsCount,
		}
	case SectionItinerary:
		// Solo el primer tramo: es el que edita el formulario de itinerario.
		var first entity.TravelSegment
		if len(r.Segments) > 0 {
			first = r.Segments[0]
		}
		return map[string]any{
			"origin":         first.Origin,
			"destination":    first.Destination,
			"departure_date": first.DepartureDate,
			"return_date":    first.ReturnDate,
		}
	case SectionPayment:
		return map[string]any{
			"payment_option":   r.PaymentOption,
			"total_amount":     r.TotalAmount,
			"price_per_adult":  r.PricePerAdult,
			"price_per_child":  r.PricePerChild,
			"price_per_infant": r.PricePerInfant,
		}
	case SectionFlights:
		return map[string]any{"flights": toAnySlice(r.Flights)}
	case SectionHotels:
		return map[string]any{"hotels": toAnySlice(r.Hotels)}
	case SectionTours:
		return map[string]any{"tours": toAnySlice(r.Tours)}
	case SectionMedicalAssistances:
		return map[string]any{"medical_assistances": toAnySlice(r.Assistances)}
	case SectionTransfers:
		return map[string]any{"transfers": toAnySlice(r.Transfers)}
	case SectionCancellation:
		// Una cancelación no tiene "estado actual" análogo.
		return nil
	}
	return nil
}

func toAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
