package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/user-admin-api/internal/application/dto"
	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/internal/domain/entity"
	"github.com/jhoicas/user-admin-api/internal/domain/repository"
	"github.com/jhoicas/user-admin-api/pkg/jwt"
)

// PasswordHasher contrato del hash de contraseñas (lo implementa *password.Hasher).
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer contrato del emisor de tokens de sesión (lo implementa *jwt.Manager).
type TokenIssuer interface {
	Issue(id jwt.Identity) (string, error)
}

// StructValidator contrato del validador de DTOs (lo implementa *validation.Validator).
type StructValidator interface {
	Struct(s any) error
}

// AuthUseCase casos de uso de autenticación: registro, login y sesión actual.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	validator StructValidator

	// dummyHash se compara cuando el email no existe para que la respuesta tarde lo mismo
	// que con un password incorrecto.
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, v StructValidator) *AuthUseCase {
	dummy, _ := hasher.Hash(uuid.NewString())
	return &AuthUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		validator: v,
		dummyHash: dummy,
	}
}

// Signup registra un usuario con rol USER y abre sesión. Devuelve domain.ErrEmailAlreadyExists
// si el email ya está registrado; en ese caso no se crea fila ni se emite token.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
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
		Role:         entity.RoleUser,
	}
	// El store garantiza la unicidad de forma atómica: una carrera entre dos signups
	// termina igualmente en ErrEmailAlreadyExists.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.session(user)
}

// Login verifica email/password y emite un token. Email desconocido y password incorrecto
// devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.hasher.Verify(in.Password, uc.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.session(user)
}

// Me recarga el usuario de la sesión. Si el token es válido pero el usuario ya no existe
// devuelve domain.ErrUserNotFound.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.AuthResponse, error) {
	token, err := uc.tokens.Issue(jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, domain.Infrastructure(err)
	}
	return &dto.AuthResponse{
		User:  dto.ToUserResponse(user),
		Token: token,
	}, nil
}
