package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleConsulta   = "consulta"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario de la consola administrativa.
type User struct {
	ID           string
	DepartmentID string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, supervisor, consulta
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si r es uno de los roles conocidos.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleSupervisor || r == RoleConsulta
}
