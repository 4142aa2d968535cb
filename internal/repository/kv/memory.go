package kv

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/domain"
)

type memoryStore struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
}

// NewMemory returns a process-local store. quota limits the size of a single
// value in bytes; zero disables the limit.
func NewMemory(quota int) Store {
	return &memoryStore{data: make(map[string]string), quota: quota}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	if s.quota > 0 && len(value) > s.quota {
		return fmt.Errorf("set %q (%d bytes): %w", key, len(value), domain.ErrQuotaExceeded)
	}
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Ping(context.Context) error { return nil }
