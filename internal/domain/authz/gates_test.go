package authz_test

import (
	"testing"

	"github.com/andresjj98/appagencia-api/internal/domain/authz"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func usuario(role string, officeID *string) *entity.User {
	return &entity.User{ID: "u1", Role: role, OfficeID: officeID, Status: "active"}
}

func superadmin() *entity.User {
	u := usuario(entity.RoleAdministrador, nil)
	u.IsSuperAdmin = true
	return u
}

func reservaEstado(status string, officeID *string, advisorID string) *entity.Reservation {
	return &entity.Reservation{ID: "r1", Status: status, OfficeID: officeID, AdvisorID: advisorID}
}

// TestCanEditPaymentStatus_CuotaPagadaInmutable una cuota pagada en el
// respaldo queda bloqueada para todos menos superadmin. El chequeo trabaja
// sobre la copia persistida, no sobre lo que el cliente diga.
func TestCanEditPaymentStatus_CuotaPagadaInmutable(t *testing.T) {
	pagada := &entity.Installment{ID: "c1", Status: entity.InstallmentPaid}
	pendiente := &entity.Installment{ID: "c2", Status: entity.InstallmentPending}

	gestor := usuario(entity.RoleGestor, nil)
	admin := usuario(entity.RoleAdministrador, nil)

	assert.False(t, authz.CanEditPaymentStatus(gestor, pagada))
	assert.False(t, authz.CanEditPaymentStatus(admin, pagada))
	assert.True(t, authz.CanEditPaymentStatus(superadmin(), pagada))

	assert.True(t, authz.CanEditPaymentStatus(gestor, pendiente))
	assert.True(t, authz.CanEditPaymentStatus(admin, pendiente))
}

func TestCanEditPaymentStatus_Nil(t *testing.T) {
	assert.False(t, authz.CanEditPaymentStatus(nil, &entity.Installment{}))
	assert.False(t, authz.CanEditPaymentStatus(superadmin(), nil))
}

// TestCanApproveReservation_SoloPendientes la aprobación exige estado
// exactamente pending; ni siquiera superadmin aprueba una confirmada.
func TestCanApproveReservation_SoloPendientes(t *testing.T) {
	admin := usuario(entity.RoleAdministrador, nil)

	assert.True(t, authz.CanApproveReservation(admin, reservaEstado(entity.ReservationPending, nil, "a1")))

	for _, status := range []string{
		entity.ReservationConfirmed,
		entity.ReservationRejected,
		entity.ReservationCancelled,
		entity.ReservationCompleted,
	} {
		r := reservaEstado(status, nil, "a1")
		assert.False(t, authz.CanApproveReservation(admin, r), "estado %s no es aprobable", status)
		assert.False(t, authz.CanApproveReservation(superadmin(), r), "estado %s no es aprobable ni para superadmin", status)
	}
}

// TestCanApproveReservation_PorRol los gestores ven pero nunca aprueban; los
// asesores tampoco.
func TestCanApproveReservation_PorRol(t *testing.T) {
	pendiente := reservaEstado(entity.ReservationPending, nil, "a1")

	assert.False(t, authz.CanApproveReservation(usuario(entity.RoleGestor, nil), pendiente))
	assert.False(t, authz.CanApproveReservation(usuario(entity.RoleAsesor, nil), pendiente))
	assert.True(t, authz.CanApproveReservation(superadmin(), pendiente))
}

// TestCanApproveReservation_OficinaDelAdministrador un administrador con
// oficina asignada solo aprueba reservas de su oficina; sin oficina asignada
// no tiene restricción.
func TestCanApproveReservation_OficinaDelAdministrador(t *testing.T) {
	adminBog := usuario(entity.RoleAdministrador, strPtr("of-bog"))

	assert.True(t, authz.CanApproveReservation(adminBog, reservaEstado(entity.ReservationPending, strPtr("of-bog"), "a1")))
	assert.False(t, authz.CanApproveReservation(adminBog, reservaEstado(entity.ReservationPending, strPtr("of-med"), "a1")))
	assert.False(t, authz.CanApproveReservation(adminBog, reservaEstado(entity.ReservationPending, nil, "a1")),
		"reserva sin oficina no coincide con un administrador restringido")

	adminGlobal := usuario(entity.RoleAdministrador, nil)
	assert.True(t, authz.CanApproveReservation(adminGlobal, reservaEstado(entity.ReservationPending, strPtr("of-med"), "a1")))
}

// TestCanModifyReservation_AsesorDueno el asesor solo muta lo propio y solo
// mientras esté pendiente o rechazada.
func TestCanModifyReservation_AsesorDueno(t *testing.T) {
	asesor := usuario(entity.RoleAsesor, nil)

	assert.True(t, authz.CanModifyReservation(asesor, reservaEstado(entity.ReservationPending, nil, "u1")))
	assert.True(t, authz.CanModifyReservation(asesor, reservaEstado(entity.ReservationRejected, nil, "u1")))
	assert.False(t, authz.CanModifyReservation(asesor, reservaEstado(entity.ReservationConfirmed, nil, "u1")),
		"una reserva confirmada solo cambia vía solicitud de cambio")
	assert.False(t, authz.CanModifyReservation(asesor, reservaEstado(entity.ReservationPending, nil, "otro")))
}

func TestCanModifyReservation_GestorNoMuta(t *testing.T) {
	gestor := usuario(entity.RoleGestor, nil)
	assert.False(t, authz.CanModifyReservation(gestor, reservaEstado(entity.ReservationPending, nil, "u1")))
}

// TestCanViewReservation_PorRol gestores y superadmin ven todo; el
// administrador dentro de su oficina; el asesor solo lo propio.
func TestCanViewReservation_PorRol(t *testing.T) {
	ajena := reservaEstado(entity.ReservationConfirmed, strPtr("of-med"), "otro")

	assert.True(t, authz.CanViewReservation(usuario(entity.RoleGestor, nil), ajena))
	assert.True(t, authz.CanViewReservation(superadmin(), ajena))
	assert.False(t, authz.CanViewReservation(usuario(entity.RoleAdministrador, strPtr("of-bog")), ajena))
	assert.True(t, authz.CanViewReservation(usuario(entity.RoleAdministrador, strPtr("of-med")), ajena))
	assert.False(t, authz.CanViewReservation(usuario(entity.RoleAsesor, nil), ajena))

	propia := reservaEstado(entity.ReservationConfirmed, strPtr("of-med"), "u1")
	assert.True(t, authz.CanViewReservation(usuario(entity.RoleAsesor, nil), propia))
}

func TestCanResolveChangeRequest(t *testing.T) {
	assert.True(t, authz.CanResolveChangeRequest(usuario(entity.RoleGestor, nil)))
	assert.True(t, authz.CanResolveChangeRequest(usuario(entity.RoleAdministrador, nil)))
	assert.True(t, authz.CanResolveChangeRequest(superadmin()))
	assert.False(t, authz.CanResolveChangeRequest(usuario(entity.RoleAsesor, nil)))
	assert.False(t, authz.CanResolveChangeRequest(nil))
}

func TestCanManageUsers(t *testing.T) {
	assert.True(t, authz.CanManageUsers(usuario(entity.RoleAdministrador, nil)))
	assert.True(t, authz.CanManageUsers(superadmin()))
	assert.False(t, authz.CanManageUsers(usuario(entity.RoleGestor, nil)))
	assert.False(t, authz.CanManageUsers(usuario(entity.RoleAsesor, nil)))
}

func TestCanManageSettings(t *testing.T) {
	assert.True(t, authz.CanManageSettings(usuario(entity.RoleGestor, nil)))
	assert.True(t, authz.CanManageSettings(usuario(entity.RoleAdministrador, nil)))
	assert.False(t, authz.CanManageSettings(usuario(entity.RoleAsesor, nil)))
}
