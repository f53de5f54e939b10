package changeset

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
)

// Apply escribe sobre la reserva los datos propuestos de una sección, una vez
// aprobada la solicitud. Los campos escalares ausentes en el payload se dejan
// como están; las colecciones se reemplazan completas, que es como las edita
// el formulario. La cancelación no pasa por aquí: es una transición de estado,
// no una mutación de campos.
func Apply(sec Section, r *entity.Reservation, payload json.RawMessage) error {
	if r == nil {
		return domain.ErrInvalidInput
	}
	switch sec {
	case SectionClient:
		var in struct {
			Name     *string `json:"name"`
			LastName *string `json:"last_name"`
			IDNumber *string `json:"id_number"`
			Email    *string `json:"email"`
			Phone    *string `json:"phone"`
			Address  *string `json:"address"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		setStr(&r.Client.Name, in.Name)
		setStr(&r.Client.LastName, in.LastName)
		setStr(&r.Client.IDNumber, in.IDNumber)
		setStr(&r.Client.Email, in.Email)
		setStr(&r.Client.Phone, in.Phone)
		setStr(&r.Client.Address, in.Address)
		return nil
	case SectionPassengers:
		var in struct {
			Adults   *int `json:"adults"`
			Children *int `json:"children"`
			Infants  *int `json:"infants"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		setInt(&r.AdultsCount, in.Adults)
		setInt(&r.ChildrenCount, in.Children)
		setInt(&r.InfantsCount, in.Infants)
		return nil
	case SectionItinerary:
		var in struct {
			Origin        *string `json:"origin"`
			Destination   *string `json:"destination"`
			DepartureDate *string `json:"departure_date"`
			ReturnDate    *string `json:"return_date"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		if len(r.Segments) == 0 {
			r.Segments = append(r.Segments, entity.TravelSegment{})
		}
		seg := &r.Segments[0]
		setStr(&seg.Origin, in.Origin)
		setStr(&seg.Destination, in.Destination)
		setStr(&seg.DepartureDate, in.DepartureDate)
		setStr(&seg.ReturnDate, in.ReturnDate)
		return nil
	case SectionPayment:
		var in struct {
			PaymentOption  *string          `json:"payment_option"`
			TotalAmount    *decimal.Decimal `json:"total_amount"`
			PricePerAdult  *decimal.Decimal `json:"price_per_adult"`
			PricePerChild  *decimal.Decimal `json:"price_per_child"`
			PricePerInfant *decimal.Decimal `json:"price_per_infant"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		setStr(&r.PaymentOption, in.PaymentOption)
		setDec(&r.TotalAmount, in.TotalAmount)
		setDec(&r.PricePerAdult, in.PricePerAdult)
		setDec(&r.PricePerChild, in.PricePerChild)
		setDec(&r.PricePerInfant, in.PricePerInfant)
		return nil
	case SectionFlights:
		var in struct {
			Flights []entity.ReservationFlight `json:"flights"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		r.Flights = in.Flights
		return nil
	case SectionHotels:
		var in struct {
			Hotels []entity.ReservationHotel `json:"hotels"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		r.Hotels = in.Hotels
		return nil
	case SectionTours:
		var in struct {
			Tours []entity.ReservationTour `json:"tours"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		r.Tours = in.Tours
		return nil
	case SectionMedicalAssistances:
		var in struct {
			Assistances []entity.ReservationAssistance `json:"medical_assistances"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		r.Assistances = in.Assistances
		return nil
	case SectionTransfers:
		var in struct {
			Transfers []entity.ReservationTransfer `json:"transfers"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return err
		}
		r.Transfers = in.Transfers
		return nil
	}
	return domain.ErrInvalidInput
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDec(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}
