package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/user-admin-api/internal/application/dto"
	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/internal/domain/entity"
	"github.com/jhoicas/user-admin-api/internal/domain/repository"
)

// PasswordHasher contrato mínimo de hash que necesitan los casos de uso de usuarios.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// StructValidator contrato del validador de DTOs.
type StructValidator interface {
	Struct(s any) error
}

// UserUseCase aplica reglas de negocio para la administración de usuarios.
type UserUseCase struct {
	repo      repository.UserRepository
	hasher    PasswordHasher
	validator StructValidator
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hasher PasswordHasher, v StructValidator) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher, validator: v}
}

// List lista todos los usuarios, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{Users: items}, nil
}

// Create crea un usuario con el rol indicado (USER por defecto). La unicidad del email la
// garantiza el store: devuelve domain.ErrEmailAlreadyExists si ya existe.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	role := entity.RoleUser
	if in.Role != "" {
		role = entity.Role(in.Role)
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Infrastructure(err)
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// GetByID obtiene un usuario por ID; domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// Update modifica nombre y/o rol. Un cuerpo sin campos se rechaza antes de llegar al store.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Empty() {
		return nil, domain.ErrEmptyUpdate
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	patch := entity.UserPatch{Name: in.Name}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		patch.Role = &role
	}
	user, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// Delete elimina un usuario; domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
