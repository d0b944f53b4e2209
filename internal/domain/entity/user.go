package entity

import "time"

// Roles de usuario del punto de venta.
const (
	RoleAdmin   = "Admin"
	RoleCashier = "Cashier"
)

// User es un operador de caja. El PIN nunca se guarda en claro: PINHash
// lleva el hash bcrypt.
type User struct {
	ID        string
	Name      string
	Role      string // Admin | Cashier
	PINHash   string
	Status    string // active | inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRole valida el rol contra el conjunto cerrado.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCashier
}
