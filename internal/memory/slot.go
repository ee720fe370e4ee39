// Package memory holds in-process repository implementations used by the
// memory storage driver and by tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/rpggio/folio/internal/repository"
)

// SlotStore is a map-backed repository.SlotRepository.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
	quota int
}

// NewSlotStore creates an empty store. A positive quota caps the size of a
// single value in bytes.
func NewSlotStore(quota int) *SlotStore {
	return &SlotStore{slots: make(map[string][]byte), quota: quota}
}

func (s *SlotStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *SlotStore) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrInvalidInput
	}
	if s.quota > 0 && len(value) > s.quota {
		return fmt.Errorf("%w: %d bytes exceeds quota of %d", repository.ErrCapacityExceeded, len(value), s.quota)
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = stored
	return nil
}

func (s *SlotStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}
