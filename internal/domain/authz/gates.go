// Package authz concentra las reglas de autorización sobre datos financieros
// y del flujo de aprobación. Estas funciones son la única fuente de verdad:
// cualquier chequeo del lado del cliente es solo una optimización de UX y el
// 403 del servidor siempre manda.
package authz

import (
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
)

// CanEditPaymentStatus decide si el usuario puede editar el estado de una
// cuota. El chequeo consulta SIEMPRE la copia persistida de la cuota (la
// última leída de DB), nunca una copia editada en memoria: una cuota marcada
// como pagada en el respaldo queda inmutable para todos menos superadmin.
func CanEditPaymentStatus(u *entity.User, persisted *entity.Installment) bool {
	if u == nil || persisted == nil {
		return false
	}
	if u.IsSuperAdmin {
		return true
	}
	return persisted.Status != entity.InstallmentPaid
}

// CanApproveReservation decide si el usuario puede aprobar o rechazar una
// reserva: solo sobre reservas exactamente en "pending", y solo superadmin o
// un administrador cuya oficina coincida (o que no tenga restricción de
// oficina). Los gestores ven pero nunca aprueban.
func CanApproveReservation(u *entity.User, r *entity.Reservation) bool {
	if u == nil || r == nil {
		return false
	}
	if r.Status != entity.ReservationPending {
		return false
	}
	if u.IsSuperAdmin {
		return true
	}
	if u.Role != entity.RoleAdministrador {
		return false
	}
	if u.OfficeID == nil {
		return true
	}
	return r.OfficeID != nil && *r.OfficeID == *u.OfficeID
}

// CanModifyReservation decide si el usuario puede mutar la reserva:
// superadmin incondicional; administrador dentro de su oficina; el asesor
// dueño mientras esté pendiente o rechazada.
func CanModifyReservation(u *entity.User, r *entity.Reservation) bool {
	if u == nil || r == nil {
		return false
	}
	if u.IsSuperAdmin {
		return true
	}
	switch u.Role {
	case entity.RoleAdministrador:
		if u.OfficeID == nil {
			return true
		}
		return r.OfficeID != nil && *r.OfficeID == *u.OfficeID
	case entity.RoleAsesor:
		if r.AdvisorID != u.ID {
			return false
		}
		return r.Status == entity.ReservationPending || r.Status == entity.ReservationRejected
	}
	return false
}

// CanViewReservation reglas de lectura: gestores y superadmin ven todo,
// administradores dentro de su oficina, asesores solo lo propio.
func CanViewReservation(u *entity.User, r *entity.Reservation) bool {
	if u == nil || r == nil {
		return false
	}
	if u.IsSuperAdmin || u.Role == entity.RoleGestor {
		return true
	}
	if u.Role == entity.RoleAdministrador {
		if u.OfficeID == nil {
			return true
		}
		return r.OfficeID != nil && *r.OfficeID == *u.OfficeID
	}
	return r.AdvisorID == u.ID
}

// CanResolveChangeRequest decide quién resuelve solicitudes de cambio:
// superadmin, o gestor/administrador (el gestor sí resuelve solicitudes,
// a diferencia de la aprobación de reservas).
func CanResolveChangeRequest(u *entity.User) bool {
	if u == nil {
		return false
	}
	return u.IsSuperAdmin || u.Role == entity.RoleAdministrador || u.Role == entity.RoleGestor
}

// CanManageSettings decide quién edita los ajustes del negocio.
func CanManageSettings(u *entity.User) bool {
	if u == nil {
		return false
	}
	return u.IsSuperAdmin || u.Role == entity.RoleAdministrador || u.Role == entity.RoleGestor
}

// CanManageUsers solo administradores (o superadmin) gestionan usuarios y
// oficinas.
func CanManageUsers(u *entity.User) bool {
	if u == nil {
		return false
	}
	return u.IsSuperAdmin || u.Role == entity.RoleAdministrador
}
