package entity

import "time"

// Role es el rol RBAC de un usuario. El orden es USER < ADMIN.
type Role string

// Roles válidos para User.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

// Valid indica si el rol pertenece al conjunto {USER, ADMIN}.
func (r Role) Valid() bool { return r.rank() > 0 }

// AtLeast indica si r cumple el rol mínimo min. Un rol desconocido nunca cumple.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.rank() >= min.rank()
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch campos modificables de un usuario; nil significa "sin cambio".
type UserPatch struct {
	Name         *string
	Role         *Role
	PasswordHash *string
}

// Empty indica que el patch no modifica ningún campo.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Role == nil && p.PasswordHash == nil
}
