package dto

import "time"

// LoginRequest entrada del login por PIN.
type LoginRequest struct {
	PIN string `json:"pin" validate:"required,min=4,max=8"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest entrada para crear un operador (solo admin).
type CreateUserRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Role string `json:"role" validate:"required"`
	PIN  string `json:"pin" validate:"required,min=4,max=8"`
}

// UserResponse salida de un usuario (nunca incluye el PIN ni su hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
