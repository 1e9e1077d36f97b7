package dto

import (
	"time"

	"github.com/jhoicas/user-admin-api/internal/domain/entity"
)

// SignupRequest entrada para registro público (rol siempre USER).
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

// LoginRequest entrada para login. El password solo se exige no vacío.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest entrada para crear un usuario desde el panel admin (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// UpdateUserRequest entrada para PATCH /users/:id; al menos un campo debe venir informado.
type UpdateUserRequest struct {
	Name *string `json:"name" validate:"omitnil,min=2,max=100"`
	Role *string `json:"role" validate:"omitnil,role"`
}

// Empty indica que el cuerpo no trae ningún campo.
func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Role == nil
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse salida de signup/login: usuario + token (el token también viaja en la cookie).
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserEnvelope data de las respuestas con un único usuario.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// UserListResponse data de GET /users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse proyecta la entidad a su representación pública.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// SeedAdminRequest entrada del comando seed_admin. El password no aplica la regla de fortaleza
// porque lo fija el operador.
type SeedAdminRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}
