package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository operadores en memoria, indexados por email.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]entity.User
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]entity.User)}
}

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
