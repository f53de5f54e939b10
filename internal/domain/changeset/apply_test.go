package changeset_test

import (
	"encoding/json"
	"testing"

	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/changeset"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApply_EscalaresParciales los campos ausentes del payload no se tocan;
// los presentes se escriben aunque vengan con cadena vacía (borrado explícito).
func TestApply_EscalaresParciales(t *testing.T) {
	r := reservaBase()
	payload := json.RawMessage(`{"email":"otro@example.com","phone":"3009876543"}`)

	err := changeset.Apply(changeset.SectionClient, r, payload)

	require.NoError(t, err)
	assert.Equal(t, "otro@example.com", r.Client.Email)
	assert.Equal(t, "3009876543", r.Client.Phone)
	assert.Equal(t, "Laura", r.Client.Name, "los campos no enviados se conservan")
	assert.Equal(t, "Pérez", r.Client.LastName)
}

// TestApply_Pasajeros acepta cero explícito como valor válido.
func TestApply_Pasajeros(t *testing.T) {
	r := reservaBase()
	payload := json.RawMessage(`{"adults":3,"children":0}`)

	err := changeset.Apply(changeset.SectionPassengers, r, payload)

	require.NoError(t, err)
	assert.Equal(t, 3, r.AdultsCount)
	assert.Equal(t, 0, r.ChildrenCount)
	assert.Equal(t, 0, r.InfantsCount)
}

// TestApply_ItinerarioPrimerTramo edita el primer tramo; si la reserva no
// tiene tramos se crea uno.
func TestApply_ItinerarioPrimerTramo(t *testing.T) {
	r := reservaBase()
	payload := json.RawMessage(`{"destination":"CUN","return_date":"2024-07-20"}`)

	err := changeset.Apply(changeset.SectionItinerary, r, payload)

	require.NoError(t, err)
	assert.Equal(t, "BOG", r.Segments[0].Origin)
	assert.Equal(t, "CUN", r.Segments[0].Destination)
	assert.Equal(t, "2024-07-20", r.Segments[0].ReturnDate)

	vacia := &entity.Reservation{}
	err = changeset.Apply(changeset.SectionItinerary, vacia, json.RawMessage(`{"origin":"MDE"}`))
	require.NoError(t, err)
	require.Len(t, vacia.Segments, 1)
	assert.Equal(t, "MDE", vacia.Segments[0].Origin)
}

// TestApply_PagoConDecimales los montos se escriben como decimales exactos.
func TestApply_PagoConDecimales(t *testing.T) {
	r := reservaBase()
	payload := json.RawMessage(`{"total_amount":"4500000.50","payment_option":"installments"}`)

	err := changeset.Apply(changeset.SectionPayment, r, payload)

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4500000.50").Equal(r.TotalAmount))
	assert.Equal(t, entity.PaymentInstallments, r.PaymentOption)
	assert.True(t, r.PricePerAdult.IsZero(), "los precios no enviados no se tocan")
}

// TestApply_ColeccionSeReemplazaCompleta las colecciones llegan completas del
// formulario: la lista propuesta sustituye a la existente, incluso si es vacía.
func TestApply_ColeccionSeReemplazaCompleta(t *testing.T) {
	r := reservaBase()
	payload := json.RawMessage(`{"hotels":[{"name":"Hotel Centro","room_category":"suite"},{"name":"Hotel Norte"}]}`)

	err := changeset.Apply(changeset.SectionHotels, r, payload)

	require.NoError(t, err)
	require.Len(t, r.Hotels, 2)
	assert.Equal(t, "Hotel Centro", r.Hotels[0].Name)
	assert.Equal(t, "suite", r.Hotels[0].RoomCategory)

	err = changeset.Apply(changeset.SectionHotels, r, json.RawMessage(`{"hotels":[]}`))
	require.NoError(t, err)
	assert.Empty(t, r.Hotels)
}

// TestApply_CancelacionNoMutaCampos la cancelación es una transición de
// estado y no pasa por Apply.
func TestApply_CancelacionNoMutaCampos(t *testing.T) {
	r := reservaBase()
	err := changeset.Apply(changeset.SectionCancellation, r, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_ReservaNil(t *testing.T) {
	err := changeset.Apply(changeset.SectionClient, nil, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_PayloadInvalido(t *testing.T) {
	r := reservaBase()
	err := changeset.Apply(changeset.SectionClient, r, json.RawMessage(`{`))
	assert.Error(t, err)
}
