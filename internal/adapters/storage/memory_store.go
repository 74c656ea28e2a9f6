package storage

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.KeyValueStore = (*MemoryStore)(nil)

// MemoryStore keeps values for the lifetime of the process only.
type MemoryStore struct {
	data map[string][]byte

	mu sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}
