package repository

import (
	"context"

	"github.com/jhoicas/user-admin-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// Las búsquedas devuelven (nil, nil) cuando no hay fila. Create devuelve domain.ErrEmailAlreadyExists
// si el email ya existe; Update y Delete devuelven domain.ErrUserNotFound si el id no existe.
// Cualquier otro fallo se devuelve como error de infraestructura tipado.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	// ListAll ordena por created_at descendente.
	ListAll(ctx context.Context) ([]*entity.User, error)
}
