package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/folio/internal/repository"
)

// DefaultSlotKey is the storage slot the document lives in.
const DefaultSlotKey = "portfolio_data"

// Adapter serializes documents into a single storage slot.
type Adapter struct {
	repo SlotRepository
	key  string
}

// NewAdapter creates an adapter over repo. An empty key selects DefaultSlotKey.
func NewAdapter(repo SlotRepository, key string) *Adapter {
	if key == "" {
		key = DefaultSlotKey
	}
	return &Adapter{repo: repo, key: key}
}

// Key returns the slot name.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads and decodes the stored document.
func (a *Adapter) Load(ctx context.Context) (StoredDocument, error) {
	data, err := a.repo.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return StoredDocument{}, ErrNotFound
		}
		return StoredDocument{}, fmt.Errorf("reading slot %q: %w", a.key, err)
	}
	if len(data) == 0 {
		return StoredDocument{}, ErrNotFound
	}
	return decodeStored(data)
}

// Save serializes doc and writes it as one value.
func (a *Adapter) Save(ctx context.Context, doc Document) error {
	data, err := json.Marshal(normalize(doc))
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := a.repo.Put(ctx, a.key, data); err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return fmt.Errorf("%w (%d bytes): %v", ErrCapacityExceeded, len(data), err)
		}
		return fmt.Errorf("writing slot %q: %w", a.key, err)
	}
	return nil
}

// Clear removes the slot. Clearing an empty slot succeeds.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.repo.Delete(ctx, a.key); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("clearing slot %q: %w", a.key, err)
	}
	return nil
}
