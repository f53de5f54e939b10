package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/andresjj98/appagencia-api/internal/domain/docs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registroCrudo simula un registro de reserva con nombres snake_case, como
// los exporta el respaldo actual.
func registroCrudo() map[string]any {
	return map[string]any{
		"invoice_number": "FAC-000042",
		"created_at":     "2024-05-10T14:22:00Z",
		"payment_option": "installments",
		"client": map[string]any{
			"name":      "Laura",
			"last_name": "Pérez",
			"id_number": "1023456789",
			"email":     "laura@example.com",
		},
		"segments": []any{
			map[string]any{
				"id":             "seg-1",
				"origin":         "BOG",
				"destination":    "MIA",
				"departure_date": "2024-07-10",
				"return_date":    "2024-07-17",
			},
		},
		"adults":           float64(2),
		"children":         float64(1),
		"infants":          float64(0),
		"price_per_adult":  float64(1_500_000),
		"price_per_child":  float64(900_000),
		"price_per_infant": float64(0),
		"total_amount":     float64(3_900_000),
		"installments": []any{
			map[string]any{"amount": float64(1_950_000), "due_date": "2024-06-01", "status": "paid"},
			map[string]any{"amount": float64(1_950_000), "due_date": "2024-07-01", "status": "pending"},
		},
		"transfers": []any{
			map[string]any{"origin": "BOG", "destination": "MIA", "transfer_type": "in", "segment_id": "seg-1"},
		},
	}
}

// TestBuildInvoicePayload_RegistroCrudo la normalización completa de un
// registro snake_case: cabecera, cliente, métricas de viaje y renglones.
func TestBuildInvoicePayload_RegistroCrudo(t *testing.T) {
	p := docs.BuildInvoicePayload(registroCrudo())

	require.NotNil(t, p)
	assert.Equal(t, docs.DocumentTypeInvoice, p.Meta.DocumentType)
	assert.Equal(t, "FAC-000042", p.InvoiceNumber)
	assert.Equal(t, "2024-05-10", p.IssueDate, "la fecha de emisión se recorta a fecha calendario")
	assert.Equal(t, "Laura Pérez", p.Client.Name, "nombre y apellido se unen")
	assert.Equal(t, "1023456789", p.Client.IDNumber)

	require.Len(t, p.Segments, 1)
	assert.Equal(t, 7, p.Segments[0].Nights, "BOG-MIA del 10 al 17 son 7 noches")
	assert.Equal(t, 8, p.Segments[0].Days)
	assert.Equal(t, 7, p.TotalNights)
	assert.Equal(t, "BOG -> MIA", p.FlightCycle)
}

// TestBuildInvoicePayload_RenglonesDePago solo las categorías con cantidad y
// precio positivos generan renglón; el subtotal es la suma.
func TestBuildInvoicePayload_RenglonesDePago(t *testing.T) {
	p := docs.BuildInvoicePayload(registroCrudo())
	require.NotNil(t, p)

	require.Len(t, p.PaymentLines, 2, "infantes con precio 0 no generan renglón")
	assert.Equal(t, "Adultos", p.PaymentLines[0].Concept)
	assert.Equal(t, 2, p.PaymentLines[0].Count)
	assert.True(t, decimal.NewFromInt(3_000_000).Equal(p.PaymentLines[0].Amount))
	assert.Equal(t, "Niños", p.PaymentLines[1].Concept)
	assert.True(t, decimal.NewFromInt(3_900_000).Equal(p.Subtotal))
	assert.True(t, decimal.NewFromInt(3_900_000).Equal(p.Total))
}

// TestBuildInvoicePayload_TrasladoEtiquetado el traslado con segment_id se
// empareja con su tramo y recibe la etiqueta "Tramo N".
func TestBuildInvoicePayload_TrasladoEtiquetado(t *testing.T) {
	p := docs.BuildInvoicePayload(registroCrudo())
	require.NotNil(t, p)

	require.Len(t, p.Transfers, 1)
	assert.Equal(t, "Tramo 1: BOG - MIA", p.Transfers[0].SegmentLabel)
}

// TestBuildInvoicePayload_TrasladoPorOrigenDestino sin segment_id el
// emparejamiento cae a igualdad de origen/destino.
func TestBuildInvoicePayload_TrasladoPorOrigenDestino(t *testing.T) {
	rec := registroCrudo()
	rec["transfers"] = []any{
		map[string]any{"origin": "BOG", "destination": "MIA", "transfer_type": "out"},
	}

	p := docs.BuildInvoicePayload(rec)
	require.NotNil(t, p)
	require.Len(t, p.Transfers, 1)
	assert.Equal(t, "Tramo 1: BOG - MIA", p.Transfers[0].SegmentLabel)
}

// TestBuildInvoicePayload_AliasCamelCase los registros históricos camelCase
// se resuelven por los mismos renglones.
func TestBuildInvoicePayload_AliasCamelCase(t *testing.T) {
	rec := map[string]any{
		"invoiceNumber": "FAC-000007",
		"paymentOption": "full_payment",
		"clientName":    "Carlos Ruiz",
		"travel_segments": []any{
			map[string]any{
				"origin":        map[string]any{"iata_code": "MDE", "city": "Medellín"},
				"destination":   map[string]any{"city": "Cancún"},
				"departureDate": "2024-08-01",
				"returnDate":    "2024-08-05",
			},
		},
		"adultsCount":   float64(1),
		"pricePerAdult": "2000000",
	}

	p := docs.BuildInvoicePayload(rec)

	require.NotNil(t, p)
	assert.Equal(t, "FAC-000007", p.InvoiceNumber)
	assert.Equal(t, "Carlos Ruiz", p.Client.Name, "formato plano histórico en la raíz")
	require.Len(t, p.Segments, 1)
	assert.Equal(t, "MDE", p.Segments[0].Origin, "se prefiere el código IATA")
	assert.Equal(t, "Cancún", p.Segments[0].Destination, "ciudad como respaldo")
	assert.Equal(t, 4, p.Segments[0].Nights)
	require.Len(t, p.PaymentLines, 1)
	assert.True(t, decimal.NewFromInt(2_000_000).Equal(p.Subtotal))
	assert.True(t, decimal.NewFromInt(2_000_000).Equal(p.Total), "sin total explícito manda el subtotal")
}

// TestBuildInvoicePayload_Envoltorios la reserva puede venir envuelta en
// "_original" o "reservation".
func TestBuildInvoicePayload_Envoltorios(t *testing.T) {
	for _, wrapper := range []string{"_original", "reservation"} {
		p := docs.BuildInvoicePayload(map[string]any{wrapper: registroCrudo()})
		require.NotNil(t, p, "envoltorio %q", wrapper)
		assert.Equal(t, "FAC-000042", p.InvoiceNumber)
	}
}

// TestBuildInvoicePayload_Idempotente una carga ya canónica se devuelve tal
// cual, sin renormalizar.
func TestBuildInvoicePayload_Idempotente(t *testing.T) {
	p1 := docs.BuildInvoicePayload(registroCrudo())
	require.NotNil(t, p1)

	p2 := docs.BuildInvoicePayload(p1)
	assert.Same(t, p1, p2)

	// Round-trip por JSON: sigue reconociéndose como canónica.
	b, err := json.Marshal(p1)
	require.NoError(t, err)
	p3 := docs.BuildInvoicePayload(json.RawMessage(b))
	require.NotNil(t, p3)
	assert.Equal(t, p1.InvoiceNumber, p3.InvoiceNumber)
	assert.Equal(t, p1.FlightCycle, p3.FlightCycle)
}

// TestBuildInvoicePayload_EntradaInservible nil, objetos vacíos y JSON roto
// devuelven nil: nunca un documento a medias.
func TestBuildInvoicePayload_EntradaInservible(t *testing.T) {
	assert.Nil(t, docs.BuildInvoicePayload(nil))
	assert.Nil(t, docs.BuildInvoicePayload(map[string]any{}))
	assert.Nil(t, docs.BuildInvoicePayload(map[string]any{"foo": "bar"}))
	assert.Nil(t, docs.BuildInvoicePayload(json.RawMessage(`[1,2,3]`)))
	assert.Nil(t, docs.BuildInvoicePayload(json.RawMessage(`{`)))
	assert.Nil(t, docs.BuildInvoicePayload(42))
}

// TestBuildInvoicePayload_FechasIncompletas sin fecha de regreso no hay
// noches ni días; nunca valores negativos.
func TestBuildInvoicePayload_FechasIncompletas(t *testing.T) {
	rec := registroCrudo()
	rec["segments"] = []any{
		map[string]any{"origin": "BOG", "destination": "MIA", "departure_date": "2024-07-10"},
		map[string]any{"origin": "MIA", "destination": "BOG", "departure_date": "2024-07-17", "return_date": "2024-07-10"},
	}

	p := docs.BuildInvoicePayload(rec)
	require.NotNil(t, p)
	require.Len(t, p.Segments, 2)
	assert.Equal(t, 0, p.Segments[0].Nights)
	assert.Equal(t, 0, p.Segments[0].Days)
	assert.Equal(t, 0, p.Segments[1].Nights, "regreso anterior a la salida no produce noches negativas")
	assert.Equal(t, 0, p.TotalNights)
	assert.Equal(t, "BOG -> MIA -> BOG", p.FlightCycle)
}
