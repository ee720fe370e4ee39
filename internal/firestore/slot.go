// Package firestore stores the portfolio slot and activity log in Cloud Firestore.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rpggio/folio/internal/repository"
)

// MaxValueBytes stays under Firestore's 1 MiB document limit, leaving room
// for field names and the timestamp.
const MaxValueBytes = 1_000_000

// SlotStore keeps one Firestore document per slot.
type SlotStore struct {
	client     *firestore.Client
	collection string
	quota      int
}

// NewSlotStore creates a slot store. A quota of zero or one above
// MaxValueBytes is clamped to MaxValueBytes.
func NewSlotStore(client *firestore.Client, collection string, quota int) *SlotStore {
	if collection == "" {
		collection = "slots"
	}
	if quota <= 0 || quota > MaxValueBytes {
		quota = MaxValueBytes
	}
	return &SlotStore{client: client, collection: collection, quota: quota}
}

func (s *SlotStore) docRef(key string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(key)
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	snap, err := s.docRef(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	value, ok := snap.Data()["value"].([]byte)
	if !ok {
		return nil, fmt.Errorf("slot %q has no value field", key)
	}
	return value, nil
}

func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrInvalidInput
	}
	if len(value) > s.quota {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", repository.ErrCapacityExceeded, len(value), s.quota)
	}
	_, err := s.docRef(key).Set(ctx, map[string]interface{}{
		"value":     value,
		"updatedAt": time.Now(),
	})
	return classify(err)
}

func (s *SlotStore) Delete(ctx context.Context, key string) error {
	_, err := s.docRef(key).Delete(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return err
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %v", repository.ErrCapacityExceeded, err)
	case codes.InvalidArgument:
		if st, ok := status.FromError(err); ok && isSizeMessage(st.Message()) {
			return fmt.Errorf("%w: %v", repository.ErrCapacityExceeded, err)
		}
	}
	return err
}
