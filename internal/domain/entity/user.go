package entity

import "time"

// Roles de operador.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleComprador = "comprador"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBodeguero, RoleComprador:
		return true
	}
	return false
}

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User operador del libro (bodega, compras, administración).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active indica si el usuario puede iniciar sesión.
func (u *User) Active() bool { return u.Status == UserStatusActive }
