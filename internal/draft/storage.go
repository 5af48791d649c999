package draft

import (
	"context"
	"sync"
)

// Storage is the interface that wraps methods for durable draft storage
type Storage interface {
	// Method Get retrieve the value stored under key.
	//
	// A missing key is not an error: "false" is returned together with "nil" value.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Method Set store value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Method Remove delete key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// MemoryStorage keeps drafts in process memory
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *MemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStorage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
