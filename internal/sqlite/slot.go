package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/folio/internal/repository"
)

// SlotRepository implements repository.SlotRepository for SQLite
type SlotRepository struct {
	db    *DB
	quota int
}

// NewSlotRepository creates a new SlotRepository. A positive quota caps the
// size of a single value in bytes.
func NewSlotRepository(db *DB, quota int) *SlotRepository {
	return &SlotRepository{db: db, quota: quota}
}

// Get returns the value stored under key
func (r *SlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return value, nil
}

// Put replaces the value stored under key in a single statement
func (r *SlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrInvalidInput
	}
	if r.quota > 0 && len(value) > r.quota {
		return fmt.Errorf("%w: %d bytes exceeds quota of %d", repository.ErrCapacityExceeded, len(value), r.quota)
	}

	query := `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if value == nil {
		value = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		if isDiskFull(err) {
			return fmt.Errorf("%w: %v", repository.ErrCapacityExceeded, err)
		}
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key succeeds.
func (r *SlotRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
