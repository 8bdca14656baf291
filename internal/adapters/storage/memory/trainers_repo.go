package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"woofpoint-backend/internal/domain/trainers"
)

type trainerRepo struct {
	mu       sync.RWMutex
	byUserID map[string]trainers.Profile
}

func NewTrainerRepo() trainers.Repository {
	return &trainerRepo{
		byUserID: make(map[string]trainers.Profile),
	}
}

func (r *trainerRepo) Create(ctx context.Context, p trainers.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("trainer user id required")
	}
	if _, exists := r.byUserID[p.UserID]; exists {
		return errors.New("trainer profile already exists")
	}
	r.byUserID[p.UserID] = p
	return nil
}

func (r *trainerRepo) GetByUserID(ctx context.Context, userID string) (trainers.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return trainers.Profile{}, trainers.ErrNotFound
	}
	return p, nil
}

func (r *trainerRepo) Upsert(ctx context.Context, p trainers.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("trainer user id required")
	}
	r.byUserID[p.UserID] = p
	return nil
}

func (r *trainerRepo) ListAll(ctx context.Context) ([]trainers.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trainers.Profile, 0, len(r.byUserID))
	for _, p := range r.byUserID {
		out = append(out, p)
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
