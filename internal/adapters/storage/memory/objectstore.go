package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// ObjectStore es el fake del bucket para dev/tests.
// Guarda bytes en memoria y devuelve URLs con pinta de firmadas.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: make(map[string][]byte)}
}

func (s *ObjectStore) Put(ctx context.Context, key string, contentType string, data []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("object key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return nil
}

func (s *ObjectStore) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("object key required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.objects[key]; !ok {
		return "", ErrNotFound
	}
	return fmt.Sprintf("https://storage.local/%s?expires=%d&sig=dev", key, int(expiry.Seconds())), nil
}

// Len es solo para asserts en tests.
func (s *ObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
