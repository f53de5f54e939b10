package changeset_test

import (
	"testing"

	"github.com/andresjj98/appagencia-api/internal/domain/changeset"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservaBase() *entity.Reservation {
	return &entity.Reservation{
		ID:        "r1",
		AdvisorID: "u1",
		Client: entity.Client{
			Name:     "Laura",
			LastName: "Pérez",
			Email:    "laura@example.com",
		},
		Segments: []entity.TravelSegment{
			{Origin: "BOG", Destination: "MIA", DepartureDate: "2024-07-10", ReturnDate: "2024-07-17"},
		},
		Hotels: []entity.ReservationHotel{
			{Name: "Hotel Playa", RoomCategory: "doble"},
		},
		AdultsCount:   2,
		ChildrenCount: 0,
		PaymentOption: entity.PaymentFull,
		TotalAmount:   decimal.NewFromInt(3_000_000),
		Status:        entity.ReservationConfirmed,
	}
}

// TestDiff_CambioEscalar un campo escalar modificado produce exactamente un
// registro con el valor anterior y el propuesto.
func TestDiff_CambioEscalar(t *testing.T) {
	r := reservaBase()
	current := changeset.CurrentData(changeset.SectionClient, r)
	proposed := map[string]any{"email": "nueva@example.com"}

	out := changeset.Diff(changeset.SectionClient, current, proposed)

	require.Len(t, out, 1)
	assert.Equal(t, "email", out[0].Field)
	assert.Equal(t, "laura@example.com", out[0].OldValue)
	assert.Equal(t, "nueva@example.com", out[0].NewValue)
	assert.False(t, out[0].IsArray)
}

// TestDiff_IgnoraPropuestosVacios un valor propuesto nil o cadena vacía no
// cuenta como cambio: el formulario manda el objeto completo y los campos no
// tocados llegan vacíos.
func TestDiff_IgnoraPropuestosVacios(t *testing.T) {
	r := reservaBase()
	current := changeset.CurrentData(changeset.SectionClient, r)
	proposed := map[string]any{
		"name":  "",
		"email": nil,
		"phone": "",
	}

	out := changeset.Diff(changeset.SectionClient, current, proposed)
	assert.Empty(t, out)
}

// TestDiff_PrimerPoblamiento si el valor actual estaba vacío, cualquier
// propuesto no vacío cuenta como cambio.
func TestDiff_PrimerPoblamiento(t *testing.T) {
	r := reservaBase()
	r.Client.Phone = ""
	current := changeset.CurrentData(changeset.SectionClient, r)
	proposed := map[string]any{"phone": "3001234567"}

	out := changeset.Diff(changeset.SectionClient, current, proposed)

	require.Len(t, out, 1)
	assert.Equal(t, "phone", out[0].Field)
	assert.Equal(t, "", out[0].OldValue)
	assert.Equal(t, "3001234567", out[0].NewValue)
}

// TestDiff_SinCambios mismo valor propuesto que el actual: lista vacía, no
// nil (la revisión distingue "nada cambió" de "sección sin línea base").
func TestDiff_SinCambios(t *testing.T) {
	r := reservaBase()
	current := changeset.CurrentData(changeset.SectionClient, r)
	proposed := map[string]any{"name": "Laura", "last_name": "Pérez"}

	out := changeset.Diff(changeset.SectionClient, current, proposed)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

// TestDiff_ArregloModificado los arreglos se comparan por serialización
// completa y producen un único registro con IsArray.
func TestDiff_ArregloModificado(t *testing.T) {
	r := reservaBase()
	current := changeset.CurrentData(changeset.SectionHotels, r)
	proposed := map[string]any{
		"hotels": []any{
			map[string]any{"name": "Hotel Playa", "room_category": "suite"},
		},
	}

	out := changeset.Diff(changeset.SectionHotels, current, proposed)

	require.Len(t, out, 1)
	assert.Equal(t, "hotels", out[0].Field)
	assert.True(t, out[0].IsArray)
}

// TestDiff_ObjetoAnidado los objetos anidados se recorren con rutas punteadas.
func TestDiff_ObjetoAnidado(t *testing.T) {
	current := map[string]any{
		"contacto": map[string]any{"email": "a@example.com", "phone": "111"},
	}
	proposed := map[string]any{
		"contacto": map[string]any{"email": "b@example.com", "phone": "111"},
	}

	out := changeset.Diff(changeset.SectionClient, current, proposed)

	require.Len(t, out, 1)
	assert.Equal(t, "contacto.email", out[0].Field)
	assert.Equal(t, "a@example.com", out[0].OldValue)
	assert.Equal(t, "b@example.com", out[0].NewValue)
}

// TestDiff_OrdenDeterminista las claves se recorren ordenadas para que la
// revisión lado a lado sea estable entre cargas.
func TestDiff_OrdenDeterminista(t *testing.T) {
	current := map[string]any{"b": "1", "a": "1", "c": "1"}
	proposed := map[string]any{"c": "2", "a": "2", "b": "2"}

	out := changeset.Diff(changeset.SectionClient, current, proposed)

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Field)
	assert.Equal(t, "b", out[1].Field)
	assert.Equal(t, "c", out[2].Field)
}

// TestDiff_CancelacionSinLineaBase la cancelación no tiene estado previo
// comparable: Diff retorna nil.
func TestDiff_CancelacionSinLineaBase(t *testing.T) {
	out := changeset.Diff(changeset.SectionCancellation, nil, map[string]any{"reason": "viaje aplazado"})
	assert.Nil(t, out)
}

// TestCurrentData_Secciones la proyección de cada sección expone solo los
// campos que edita su formulario.
func TestCurrentData_Secciones(t *testing.T) {
	r := reservaBase()

	client := changeset.CurrentData(changeset.SectionClient, r)
	assert.Equal(t, "Laura", client["name"])

	passengers := changeset.CurrentData(changeset.SectionPassengers, r)
	assert.Equal(t, 2, passengers["adults"])

	itinerary := changeset.CurrentData(changeset.SectionItinerary, r)
	assert.Equal(t, "BOG", itinerary["origin"])
	assert.Equal(t, "MIA", itinerary["destination"])

	assert.Nil(t, changeset.CurrentData(changeset.SectionCancellation, r))
	assert.Nil(t, changeset.CurrentData(changeset.SectionClient, nil))
}

// TestParseSection solo acepta las etiquetas del conjunto cerrado.
func TestParseSection(t *testing.T) {
	sec, ok := changeset.ParseSection("medicalAssistances")
	assert.True(t, ok)
	assert.Equal(t, changeset.SectionMedicalAssistances, sec)

	_, ok = changeset.ParseSection("medical_assistances")
	assert.False(t, ok)

	_, ok = changeset.ParseSection("")
	assert.False(t, ok)
}
