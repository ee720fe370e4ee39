package repository

import (
	"context"

	"github.com/rpggio/folio/internal/domain/activity"
)

// SlotRepository stores opaque values under named keys.
// Put replaces the previous value in a single write; on error the old value
// is left unchanged.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}
