package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"woofpoint-backend/internal/domain/owners"
)

type ownerRepo struct {
	mu       sync.RWMutex
	byUserID map[string]owners.Profile
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byUserID: make(map[string]owners.Profile),
	}
}

func (r *ownerRepo) Create(ctx context.Context, p owners.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("owner user id required")
	}
	if _, exists := r.byUserID[p.UserID]; exists {
		return errors.New("owner profile already exists")
	}
	r.byUserID[p.UserID] = clone(p)
	return nil
}

func (r *ownerRepo) GetByUserID(ctx context.Context, userID string) (owners.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return owners.Profile{}, owners.ErrNotFound
	}
	return clone(p), nil
}

func (r *ownerRepo) Upsert(ctx context.Context, p owners.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("owner user id required")
	}
	r.byUserID[p.UserID] = clone(p)
	return nil
}

// clone copia la lista de perros para que el caller no comparta el
// slice guardado (el servicio lo muta en memoria antes de upsertear).
func clone(p owners.Profile) owners.Profile {
	if p.Dogs != nil {
		dogs := make([]owners.Dog, len(p.Dogs))
		copy(dogs, p.Dogs)
		p.Dogs = dogs
	}
	return p
}
