package docs

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BuildInvoicePayload normaliza un registro de reserva de forma heterogénea a
// la carga canónica de factura. Es idempotente: una carga ya canónica (marcada
// con meta.document_type == "invoice") se devuelve tal cual.
//
// Retorna nil cuando la entrada no es un objeto o no contiene nada parecido a
// una reserva (ni directamente ni bajo "_original"/"reservation"): el caller
// debe tratarlo como "no se puede generar el documento", nunca renderizar un
// documento a medias.
func BuildInvoicePayload(raw any) *InvoicePayload {
	switch v := raw.(type) {
	case nil:
		return nil
	case *InvoicePayload:
		if v != nil && v.Meta.DocumentType == DocumentTypeInvoice {
			return v
		}
		return nil
	case InvoicePayload:
		if v.Meta.DocumentType == DocumentTypeInvoice {
			return &v
		}
		return nil
	case json.RawMessage:
		var m map[string]any
		if err := json.Unmarshal(v, &m); err != nil {
			return nil
		}
		return BuildInvoicePayload(m)
	case []byte:
		return BuildInvoicePayload(json.RawMessage(v))
	case map[string]any:
		return fromRecord(v)
	}
	return nil
}

func fromRecord(m map[string]any) *InvoicePayload {
	// Carga ya canónica: decodificar y devolver sin retrabajo.
	if meta, ok := asMap(m["meta"]); ok {
		if dt, _ := meta["document_type"].(string); dt == DocumentTypeInvoice {
			return decodeCanonical(m)
		}
		if dt, _ := meta["documentType"].(string); dt == DocumentTypeInvoice {
			return decodeCanonical(m)
		}
	}

	rec, ok := extractReservation(m)
	if !ok {
		return nil
	}

	p := &InvoicePayload{Meta: Meta{DocumentType: DocumentTypeInvoice}}

	p.InvoiceNumber = str(rec, "invoice_number", "invoiceNumber")
	p.IssueDate = str(rec, "issue_date", "issueDate", "created_at", "createdAt")
	if len(p.IssueDate) > 10 {
		p.IssueDate = p.IssueDate[:10]
	}
	p.PaymentOption = str(rec, "payment_option", "paymentOption")
	p.Currency = str(rec, "currency")
	p.Notes = str(rec, "notes", "observations")

	p.Agency = normalizeAgency(rec)
	p.Client = normalizeClient(rec)

	segments := slice(rec, "segments", "travel_segments", "reservation_segments", "segmentList")
	p.Segments, p.TotalNights, p.TotalDays = normalizeSegments(segments)
	p.FlightCycle = flightCycle(segments)

	for _, it := range slice(rec, "flights", "reservation_flights", "flightList") {
		fm, ok := asMap(it)
		if !ok {
			continue
		}
		p.Flights = append(p.Flights, FlightLine{
			Airline:       str(fm, "airline", "airline_name", "airlineName"),
			FlightNumber:  str(fm, "flight_number", "flightNumber"),
			FlightClass:   str(fm, "flight_class", "flightClass", "category"),
			DepartureTime: str(fm, "departure_time", "departureTime"),
		})
	}
	for _, it := range slice(rec, "hotels", "reservation_hotels", "hotelList") {
		hm, ok := asMap(it)
		if !ok {
			continue
		}
		p.Hotels = append(p.Hotels, HotelLine{
			Name:         str(hm, "name", "hotel_name", "hotelName"),
			RoomCategory: str(hm, "room_category", "roomCategory", "room_type"),
			MealPlan:     str(hm, "meal_plan", "mealPlan", "accommodation_plan"),
		})
	}
	for _, it := range slice(rec, "tours", "reservation_tours", "tourList") {
		tm, ok := asMap(it)
		if !ok {
			continue
		}
		p.Tours = append(p.Tours, TourLine{
			Name: str(tm, "name", "tour_name", "tourName"),
			Date: str(tm, "date", "tour_date", "tourDate"),
			Cost: dec(tm, "cost", "price", "amount"),
		})
	}
	for _, it := range slice(rec, "medical_assistances", "medicalAssistances", "reservation_medical_assistances", "assistances") {
		am, ok := asMap(it)
		if !ok {
			continue
		}
		p.Assistances = append(p.Assistances, AssistanceLine{
			PlanType:  str(am, "plan_type", "planType", "plan"),
			StartDate: str(am, "start_date", "startDate"),
			EndDate:   str(am, "end_date", "endDate"),
		})
	}

	p.Transfers = normalizeTransfers(rec, segments)
	p.PaymentLines, p.Subtotal = paymentLines(rec)

	if total := dec(rec, "total_amount", "totalAmount", "total"); total.IsPositive() {
		p.Total = total
	} else {
		p.Total = p.Subtotal
	}

	for _, it := range slice(rec, "installments", "reservation_installments", "payments") {
		im, ok := asMap(it)
		if !ok {
			continue
		}
		p.Installments = append(p.Installments, InstallmentLine{
			Amount:  dec(im, "amount", "value"),
			DueDate: str(im, "due_date", "dueDate"),
			Status:  str(im, "status"),
		})
	}

	return p
}

// extractReservation busca el objeto reserva: el propio mapa si tiene forma de
// reserva, o los envoltorios históricos "_original"/"reservation".
func extractReservation(m map[string]any) (map[string]any, bool) {
	if inner, ok := asMap(m["_original"]); ok {
		return inner, true
	}
	if inner, ok := asMap(m["reservation"]); ok {
		return inner, true
	}
	if reservationLike(m) {
		return m, true
	}
	return nil, false
}

// reservationLike heurística mínima: alguno de los campos que toda reserva
// (vieja o nueva) trae.
func reservationLike(m map[string]any) bool {
	for _, k := range []string{
		"client", "client_name", "clientName",
		"segments", "travel_segments", "reservation_segments",
		"total_amount", "totalAmount",
		"payment_option", "paymentOption",
		"invoice_number", "invoiceNumber",
	} {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func decodeCanonical(m map[string]any) *InvoicePayload {
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var p InvoicePayload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil
	}
	p.Meta.DocumentType = DocumentTypeInvoice
	return &p
}

func normalizeAgency(rec map[string]any) AgencyInfo {
	am, _ := asMap(first(rec, "agency", "business_settings", "businessSettings"))
	if am == nil {
		return AgencyInfo{}
	}
	return AgencyInfo{
		Name:    str(am, "name", "agency_name", "agencyName", "legal_name"),
		TaxID:   str(am, "tax_id", "taxId", "nit"),
		Address: str(am, "address"),
		Phone:   str(am, "phone"),
		Email:   str(am, "email"),
	}
}

func normalizeClient(rec map[string]any) ClientInfo {
	if cm, ok := asMap(first(rec, "client", "clients", "titular")); ok {
		name := str(cm, "name", "full_name", "fullName")
		if last := str(cm, "last_name", "lastName"); last != "" && !strings.Contains(name, last) {
			name = strings.TrimSpace(name + " " + last)
		}
		return ClientInfo{
			Name:     name,
			IDNumber: str(cm, "id_number", "idNumber", "document", "dni"),
			Email:    str(cm, "email"),
			Phone:    str(cm, "phone"),
			Address:  str(cm, "address"),
		}
	}
	// Formato plano histórico: client_name, client_email... en la raíz.
	return ClientInfo{
		Name:     str(rec, "client_name", "clientName"),
		IDNumber: str(rec, "client_id_number", "clientId"),
		Email:    str(rec, "client_email", "clientEmail"),
		Phone:    str(rec, "client_phone", "clientPhone"),
		Address:  str(rec, "client_address", "clientAddress"),
	}
}

func normalizeSegments(items []any) (out []SegmentLine, totalNights, totalDays int) {
	for _, it := range items {
		sm, ok := asMap(it)
		if !ok {
			continue
		}
		dep := str(sm, "departure_date", "departureDate", "start_date", "startDate")
		ret := str(sm, "return_date", "returnDate", "end_date", "endDate")
		nights, days := travelMetrics(dep, ret)
		out = append(out, SegmentLine{
			Origin:        endpointName(first(sm, "origin", "from")),
			Destination:   endpointName(first(sm, "destination", "to")),
			DepartureDate: dep,
			ReturnDate:    ret,
			Nights:        nights,
			Days:          days,
		})
		totalNights += nights
		totalDays += days
	}
	return out, totalNights, totalDays
}

// travelMetrics noches = diferencia de días calendario entre regreso y salida
// (0 si falta alguna fecha o la diferencia no es positiva); días = noches+1
// cuando noches > 0, si no 0.
func travelMetrics(departure, ret string) (nights, days int) {
	d1, ok1 := parseDate(departure)
	d2, ok2 := parseDate(ret)
	if !ok1 || !ok2 {
		return 0, 0
	}
	n := int(d2.Sub(d1).Hours() / 24)
	if n <= 0 {
		return 0, 0
	}
	return n, n + 1
}

func parseDate(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// flightCycle concatena el origen del primer tramo y el destino de cada tramo,
// unidos por " -> ". Los extremos pueden venir como string plano o como objeto
// de ubicación (se prefiere el código IATA, con ciudad/nombre de respaldo).
func flightCycle(items []any) string {
	var parts []string
	for i, it := range items {
		sm, ok := asMap(it)
		if !ok {
			continue
		}
		if i == 0 {
			if o := endpointName(first(sm, "origin", "from")); o != "" {
				parts = append(parts, o)
			}
		}
		if d := endpointName(first(sm, "destination", "to")); d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, " -> ")
}

// endpointName resuelve un extremo de tramo: string plano, u objeto de
// ubicación con código IATA/aeropuerto preferido y ciudad/nombre de respaldo.
func endpointName(v any) string {
	switch ep := v.(type) {
	case string:
		return ep
	case map[string]any:
		if code := str(ep, "iata_code", "iataCode", "code", "airport_code"); code != "" {
			return code
		}
		return str(ep, "city", "name")
	}
	return ""
}

// normalizeTransfers empareja cada traslado con su tramo: primero por
// referencia explícita segment_id, con respaldo por igualdad de
// origen/destino, para poder etiquetarlo "Tramo N: ORIGEN - DESTINO" aunque
// el dato original solo traiga strings sueltos.
func normalizeTransfers(rec map[string]any, segments []any) []TransferLine {
	type segRef struct {
		id, origin, destination string
		index                   int
	}
	refs := make([]segRef, 0, len(segments))
	for i, it := range segments {
		sm, ok := asMap(it)
		if !ok {
			continue
		}
		refs = append(refs, segRef{
			id:          str(sm, "id", "segment_id"),
			origin:      endpointName(first(sm, "origin", "from")),
			destination: endpointName(first(sm, "destination", "to")),
			index:       i + 1,
		})
	}

	var out []TransferLine
	for _, it := range slice(rec, "transfers", "reservation_transfers", "transferList") {
		tm, ok := asMap(it)
		if !ok {
			continue
		}
		line := TransferLine{
			Origin:       str(tm, "origin", "from"),
			Destination:  str(tm, "destination", "to"),
			TransferType: str(tm, "transfer_type", "transferType", "type"),
		}
		segID := str(tm, "segment_id", "segmentId")
		var match *segRef
		for i := range refs {
			if segID != "" && refs[i].id == segID {
				match = &refs[i]
				break
			}
		}
		if match == nil && segID == "" {
			for i := range refs {
				if refs[i].origin == line.Origin && refs[i].destination == line.Destination {
					match = &refs[i]
					break
				}
			}
		}
		if match != nil {
			line.SegmentLabel = fmt.Sprintf("Tramo %d: %s - %s", match.index, match.origin, match.destination)
		}
		out = append(out, line)
	}
	return out
}

// paymentLines arma los renglones por categoría de pasajero: solo categorías
// con cantidad y precio positivos; amount = cantidad × precio; el subtotal es
// la suma de todos los renglones.
func paymentLines(rec map[string]any) ([]PaymentLine, decimal.Decimal) {
	categories := []struct {
		concept   string
		countKeys []string
		priceKeys []string
	}{
		{"Adultos", []string{"adults", "adults_count", "adultsCount"}, []string{"price_per_adult", "pricePerAdult", "adult_price"}},
		{"Niños", []string{"children", "children_count", "childrenCount"}, []string{"price_per_child", "pricePerChild", "child_price"}},
		{"Infantes", []string{"infants", "infants_count", "infantsCount"}, []string{"price_per_infant", "pricePerInfant", "infant_price"}},
	}

	var lines []PaymentLine
	subtotal := decimal.Zero
	for _, cat := range categories {
		count := intval(rec, cat.countKeys...)
		price := dec(rec, cat.priceKeys...)
		if count <= 0 || !price.IsPositive() {
			continue
		}
		amount := price.Mul(decimal.NewFromInt(int64(count)))
		lines = append(lines, PaymentLine{
			Concept:   cat.concept,
			Count:     count,
			UnitPrice: price,
			Amount:    amount,
		})
		subtotal = subtotal.Add(amount)
	}
	return lines, subtotal
}

// ── helpers de acceso tolerante ───────────────────────────────────────────────

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// first devuelve el primer valor definido entre los nombres candidatos.
func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(decimal.NewFromFloat(v).String(), "0"), ".")
		}
	}
	return ""
}

func dec(m map[string]any, keys ...string) decimal.Decimal {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case int:
			return decimal.NewFromInt(int64(v))
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		case decimal.Decimal:
			return v
		case json.Number:
			if d, err := decimal.NewFromString(v.String()); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

func intval(m map[string]any, keys ...string) int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return int(n)
			}
		}
	}
	return 0
}

func slice(m map[string]any, keys ...string) []any {
	for _, k := range keys {
		if s, ok := m[k].([]any); ok {
			return s
		}
	}
	return nil
}
