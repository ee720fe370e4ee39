package content

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Store holds the live document.
type Store struct {
	storage Storage
	logger  *slog.Logger

	mu   sync.RWMutex
	live Document
}

// NewStore creates a store over storage. The live document starts as the
// defaults until Initialize runs.
func NewStore(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{storage: storage, logger: logger, live: Defaults()}
}

// Initialize loads the persisted document and applies fallback. Load
// failures degrade to the defaults and are only logged.
func (s *Store) Initialize(ctx context.Context) {
	doc := Defaults()
	stored, err := s.storage.Load(ctx)
	switch {
	case err == nil:
		doc = Resolve(stored)
		s.logger.Info("loaded persisted content",
			"projects", len(doc.Projects), "experiments", len(doc.Experiments))
	case errors.Is(err, ErrNotFound):
		s.logger.Info("no persisted content, using defaults")
	case errors.Is(err, ErrParse):
		s.logger.Warn("persisted content is malformed, using defaults", "error", err)
	default:
		s.logger.Warn("failed to load persisted content, using defaults", "error", err)
	}

	s.mu.Lock()
	s.live = doc
	s.mu.Unlock()
}

// Current returns the live document. Callers must not mutate it.
func (s *Store) Current() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

// Commit persists doc and, only on success, makes a private copy of it live.
// Nil lists are stored and made live as empty lists.
func (s *Store) Commit(ctx context.Context, doc Document) error {
	next := normalize(Clone(doc))
	if err := s.storage.Save(ctx, next); err != nil {
		s.logger.Error("commit failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.live = next
	s.mu.Unlock()

	s.logger.Info("content committed",
		"projects", len(next.Projects), "experiments", len(next.Experiments))
	return nil
}

// Reset clears persisted content and reinstates the defaults.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Error("reset failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.live = Defaults()
	s.mu.Unlock()

	s.logger.Info("content reset to defaults")
	return nil
}

// Navigation returns the static navigation entries.
func (s *Store) Navigation() []NavItem {
	return Navigation()
}
