package entity

import "time"

// Roles de usuario.
const (
	RolAdmin  = "admin"
	RolCajero = "cajero"
)

// Usuario de la aplicación. El UID es también el dueño lógico de los
// bloques de consecutivos que reserve desde cualquier equipo.
type Usuario struct {
	ID           string
	Email        string
	Nombre       string
	PasswordHash string
	Rol          string // "admin" | "cajero"
	Estado       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
