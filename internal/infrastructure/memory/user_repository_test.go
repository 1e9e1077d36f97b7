package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/internal/domain/entity"
	"github.com/jhoicas/user-admin-api/internal/infrastructure/memory"
)

func TestUserRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	u := &entity.User{ID: "u1", Email: "a@x.com", Name: "Ann", PasswordHash: "h", Role: entity.RoleUser}
	require.NoError(t, repo.Create(ctx, u))
	assert.False(t, u.CreatedAt.IsZero(), "el store fija created_at")

	err := repo.Create(ctx, &entity.User{ID: "u2", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, 1, repo.Count())

	other, err := repo.FindByEmail(ctx, "A@x.com")
	require.NoError(t, err)
	assert.Nil(t, other, "el email es sensible a mayúsculas")

	got, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	name := "Ann Lee"
	role := entity.RoleAdmin
	upd, err := repo.Update(ctx, "u1", entity.UserPatch{Name: &name, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", upd.Name)
	assert.Equal(t, entity.RoleAdmin, upd.Role)
	assert.Equal(t, "h", upd.PasswordHash)

	_, err = repo.Update(ctx, "nope", entity.UserPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), domain.ErrUserNotFound)

	got, err = repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_ListAllOrdenDescendente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, repo.Create(ctx, &entity.User{ID: id, Email: id + "@x.com", Role: entity.RoleUser}))
	}

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"3", "2", "1"}, []string{list[0].ID, list[1].ID, list[2].ID})
}
