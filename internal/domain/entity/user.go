package entity

import "time"

// Roles válidos para User.
const (
	RoleAdministrador = "administrador"
	RoleGestor        = "gestor"
	RoleAsesor        = "asesor"
)

// User representa un usuario del back-office (asesor, gestor o administrador).
// IsSuperAdmin concede acceso incondicional por encima de las restricciones
// del rol y de la oficina; es un flag explícito, no un rol más.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string  // administrador, gestor, asesor
	OfficeID     *string // nil = sin restricción de oficina
	IsSuperAdmin bool
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol es uno de los tres conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdministrador, RoleGestor, RoleAsesor:
		return true
	}
	return false
}
