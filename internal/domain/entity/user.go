package entity

import "strings"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa al usuario autenticado (el registro de sesión).
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Role         string // admin, bodeguero, vendedor
	PasswordHash string // solo lo usa el sandbox; nunca sale por la API
}

// FullName nombre y apellido separados por un espacio.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
