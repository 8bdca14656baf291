package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"woofpoint-backend/internal/domain/users"
)

type userRepo struct {
	mu      sync.RWMutex
	byID    map[string]users.User
	byEmail map[string]string // email -> id
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:    make(map[string]users.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, exists := r.byEmail[email]; exists {
		return users.ErrEmailTaken
	}

	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[u.ID]
	if !exists {
		return users.ErrNotFound
	}

	// El email no cambia por este camino, pero si cambiara mantenemos
	// el índice consistente.
	oldEmail := strings.ToLower(strings.TrimSpace(prev.Email))
	newEmail := strings.ToLower(strings.TrimSpace(u.Email))
	if oldEmail != newEmail {
		if _, taken := r.byEmail[newEmail]; taken {
			return users.ErrEmailTaken
		}
		delete(r.byEmail, oldEmail)
		r.byEmail[newEmail] = u.ID
	}

	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) ListByRole(ctx context.Context, role users.Role) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0)
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
