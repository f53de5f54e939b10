package docs

import (
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
)

// RecordFromReservation arma el registro snake_case (contrato actual del
// respaldo) a partir del agregado persistido, para pasarlo por el mismo camino
// de normalización que los registros históricos: una sola ruta de construcción
// de documentos, venga el dato de DB o de un payload externo.
func RecordFromReservation(r *entity.Reservation, installments []*entity.Installment, s *entity.BusinessSettings) map[string]any {
	if r == nil {
		return nil
	}
	rec := map[string]any{
		"invoice_number": r.InvoiceNumber,
		"issue_date":     r.UpdatedAt.Format("2006-01-02"),
		"payment_option": r.PaymentOption,
		"total_amount":   r.TotalAmount,
		"adults":         r.AdultsCount,
		"children":       r.ChildrenCount,
		"infants":        r.InfantsCount,
		"price_per_adult":  r.PricePerAdult,
		"price_per_child":  r.PricePerChild,
		"price_per_infant": r.PricePerInfant,
		"notes":          r.Notes,
		"client": map[string]any{
			"name":      r.Client.Name,
			"last_name": r.Client.LastName,
			"id_number": r.Client.IDNumber,
			"email":     r.Client.Email,
			"phone":     r.Client.Phone,
			"address":   r.Client.Address,
		},
	}

	segments := make([]any, 0, len(r.Segments))
	for _, seg := range r.Segments {
		segments = append(segments, map[string]any{
			"id":             seg.ID,
			"origin":         seg.Origin,
			"destination":    seg.Destination,
			"departure_date": seg.DepartureDate,
			"return_date":    seg.ReturnDate,
		})
	}
	rec["segments"] = segments

	flights := make([]any, 0, len(r.Flights))
	for _, f := range r.Flights {
		flights = append(flights, map[string]any{
			"airline":        f.Airline,
			"flight_number":  f.FlightNumber,
			"flight_class":   f.FlightClass,
			"departure_time": f.DepartureTime,
		})
	}
	rec["flights"] = flights

	hotels := make([]any, 0, len(r.Hotels))
	for _, h := range r.Hotels {
		hotels = append(hotels, map[string]any{
			"name":          h.Name,
			"room_category": h.RoomCategory,
			"meal_plan":     h.MealPlan,
		})
	}
	rec["hotels"] = hotels

	tours := make([]any, 0, len(r.Tours))
	for _, t := range r.Tours {
		tours = append(tours, map[string]any{
			"name": t.Name,
			"date": t.Date,
			"cost": t.Cost,
		})
	}
	rec["tours"] = tours

	assistances := make([]any, 0, len(r.Assistances))
	for _, a := range r.Assistances {
		assistances = append(assistances, map[string]any{
			"plan_type":  a.PlanType,
			"start_date": a.StartDate,
			"end_date":   a.EndDate,
		})
	}
	rec["medical_assistances"] = assistances

	transfers := make([]any, 0, len(r.Transfers))
	for _, t := range r.Transfers {
		tm := map[string]any{
			"origin":        t.Origin,
			"destination":   t.Destination,
			"transfer_type": t.TransferType,
		}
		if t.SegmentID != nil {
			tm["segment_id"] = *t.SegmentID
		}
		transfers = append(transfers, tm)
	}
	rec["transfers"] = transfers

	ins := make([]any, 0, len(installments))
	for _, i := range installments {
		if i == nil {
			continue
		}
		ins = append(ins, map[string]any{
			"amount":   i.Amount,
			"due_date": i.DueDate,
			"status":   i.Status,
		})
	}
	rec["installments"] = ins

	if s != nil {
		rec["currency"] = s.Currency
		rec["agency"] = map[string]any{
			"name":    s.AgencyName,
			"tax_id":  s.TaxID,
			"address": s.Address,
			"phone":   s.Phone,
			"email":   s.Email,
		}
	}

	return rec
}
