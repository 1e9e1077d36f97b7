// Package memory implementa UserRepository en memoria. Se usa con DB_DRIVER=memory para
// desarrollo local sin PostgreSQL y como doble de pruebas.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/internal/domain/entity"
	"github.com/jhoicas/user-admin-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo guarda usuarios en un mapa protegido por mutex. Devuelve copias para que el
// llamador no pueda mutar el estado interno.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
	now     func() time.Time
	seq     time.Duration
}

// NewUserRepository construye un repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// Create persiste un nuevo usuario; el email se compara de forma exacta (sensible a mayúsculas).
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	// created_at estrictamente creciente para que ListAll sea determinista.
	r.seq += time.Microsecond
	now := r.now().Add(r.seq)
	user.CreatedAt = now
	user.UpdatedAt = now
	u := *user
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = u.ID
	return nil
}

// FindByID obtiene un usuario por ID o nil.
func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// FindByEmail obtiene un usuario por email o nil.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Update aplica el patch y devuelve el usuario actualizado.
func (r *UserRepo) Update(_ context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = r.now()
	cp := *u
	return &cp, nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

// ListAll lista todos los usuarios, más recientes primero.
func (r *UserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Count devuelve el número de usuarios almacenados.
func (r *UserRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// RunUsers ejecuta fn con el propio repositorio. Las operaciones individuales son atómicas;
// no hay rollback si fn falla a mitad.
func (r *UserRepo) RunUsers(ctx context.Context, fn func(repo repository.UserRepository) error) error {
	return fn(r)
}
