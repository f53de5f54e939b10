package entity

import "time"

// Office representa una oficina/sucursal de la agencia. Los administradores con
// oficina asignada solo gestionan reservas de su oficina.
type Office struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
