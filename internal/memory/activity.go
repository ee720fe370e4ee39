package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/repository"
)

// ActivityStore keeps activity entries in memory.
type ActivityStore struct {
	mu      sync.RWMutex
	entries []activity.ActivityEntry
	nextID  int64
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{nextID: 1}
}

func (s *ActivityStore) Log(_ context.Context, entry *activity.ActivityEntry) error {
	if entry == nil {
		return repository.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, *entry)
	return nil
}

// List returns matching entries, newest first.
func (s *ActivityStore) List(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	s.mu.RLock()
	matched := make([]activity.ActivityEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if opts.SessionID != nil && (e.SessionID == nil || *e.SessionID != *opts.SessionID) {
			continue
		}
		if opts.ActivityType != nil && e.ActivityType != *opts.ActivityType {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []activity.ActivityEntry{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}
