package entity

import "time"

// Roles base del sistema.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// Estados válidos para User.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema (operador de la consola).
type User struct {
	ID           int64
	Username     string // único
	PasswordHash string // bcrypt; nunca en claro después de persistir
	Nickname     string
	Email        string
	AvatarURL    string
	Role         string // nombre del rol (admin, vendedor, o uno creado vía roles)
	Status       string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
