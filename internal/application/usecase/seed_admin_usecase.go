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

// UserTxRunner ejecuta fn dentro de una transacción con un repositorio atado a ella.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(repo repository.UserRepository) error) error
}

// SeedAdminUseCase crea o promueve el usuario administrador inicial.
type SeedAdminUseCase struct {
	tx        UserTxRunner
	hasher    PasswordHasher
	validator StructValidator
}

// NewSeedAdminUseCase construye el caso de uso.
func NewSeedAdminUseCase(tx UserTxRunner, hasher PasswordHasher, v StructValidator) *SeedAdminUseCase {
	return &SeedAdminUseCase{tx: tx, hasher: hasher, validator: v}
}

// Run hace upsert por email: si existe, lo pasa a ADMIN y reemplaza su password; si no, lo crea
// como ADMIN. Devuelve el usuario resultante y si fue creado.
func (uc *SeedAdminUseCase) Run(ctx context.Context, in dto.SeedAdminRequest) (*dto.UserResponse, bool, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := uc.validator.Struct(in); err != nil {
		return nil, false, err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, false, domain.Infrastructure(err)
	}

	var (
		result  *entity.User
		created bool
	)
	err = uc.tx.RunUsers(ctx, func(repo repository.UserRepository) error {
		existing, err := repo.FindByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		admin := entity.RoleAdmin
		if existing != nil {
			result, err = repo.Update(ctx, existing.ID, entity.UserPatch{Role: &admin, PasswordHash: &hash})
			return err
		}
		result = &entity.User{
			ID:           uuid.NewString(),
			Email:        in.Email,
			Name:         in.Name,
			PasswordHash: hash,
			Role:         admin,
		}
		created = true
		return repo.Create(ctx, result)
	})
	if err != nil {
		return nil, false, err
	}
	out := dto.ToUserResponse(result)
	return &out, created, nil
}
