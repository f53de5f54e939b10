package entity_test

import (
	"testing"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

// TestValidStatusTransition_Permitidas la máquina de estados de la reserva:
// pending se resuelve, rejected se reenvía, confirmed se completa o cancela.
func TestValidStatusTransition_Permitidas(t *testing.T) {
	permitidas := [][2]string{
		{entity.ReservationPending, entity.ReservationConfirmed},
		{entity.ReservationPending, entity.ReservationRejected},
		{entity.ReservationPending, entity.ReservationCancelled},
		{entity.ReservationRejected, entity.ReservationPending},
		{entity.ReservationRejected, entity.ReservationCancelled},
		{entity.ReservationConfirmed, entity.ReservationCompleted},
		{entity.ReservationConfirmed, entity.ReservationCancelled},
	}
	for _, tr := range permitidas {
		assert.True(t, entity.ValidStatusTransition(tr[0], tr[1]), "%s -> %s debe permitirse", tr[0], tr[1])
	}
}

// TestValidStatusTransition_Prohibidas los estados terminales no transicionan
// y una confirmada jamás vuelve a pending.
func TestValidStatusTransition_Prohibidas(t *testing.T) {
	prohibidas := [][2]string{
		{entity.ReservationConfirmed, entity.ReservationPending},
		{entity.ReservationConfirmed, entity.ReservationRejected},
		{entity.ReservationCancelled, entity.ReservationPending},
		{entity.ReservationCancelled, entity.ReservationConfirmed},
		{entity.ReservationCompleted, entity.ReservationCancelled},
		{entity.ReservationPending, entity.ReservationCompleted},
		{entity.ReservationPending, entity.ReservationPending},
		{"", entity.ReservationPending},
	}
	for _, tr := range prohibidas {
		assert.False(t, entity.ValidStatusTransition(tr[0], tr[1]), "%s -> %s debe rechazarse", tr[0], tr[1])
	}
}

// TestFormatInvoiceNumber consecutivo con relleno a seis dígitos y prefijo
// configurable con "FAC" de respaldo.
func TestFormatInvoiceNumber(t *testing.T) {
	s := &entity.BusinessSettings{InvoicePrefix: "VYJ"}
	assert.Equal(t, "VYJ-000123", s.FormatInvoiceNumber(123))
	assert.Equal(t, "VYJ-000001", s.FormatInvoiceNumber(1))
	assert.Equal(t, "VYJ-1000000", s.FormatInvoiceNumber(1_000_000), "más de seis dígitos no se trunca")

	sinPrefijo := &entity.BusinessSettings{}
	assert.Equal(t, "FAC-000042", sinPrefijo.FormatInvoiceNumber(42))
}

func TestValidRole(t *testing.T) {
	assert.True(t, entity.ValidRole(entity.RoleAdministrador))
	assert.True(t, entity.ValidRole(entity.RoleGestor))
	assert.True(t, entity.ValidRole(entity.RoleAsesor))
	assert.False(t, entity.ValidRole("admin"))
	assert.False(t, entity.ValidRole(""))
}
