package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/repository"
)

// ActivityStore writes activity entries to a Firestore collection.
type ActivityStore struct {
	client     *firestore.Client
	collection string
}

func NewActivityStore(client *firestore.Client, collection string) *ActivityStore {
	if collection == "" {
		collection = "activity"
	}
	return &ActivityStore{client: client, collection: collection}
}

func (s *ActivityStore) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	if entry == nil {
		return repository.ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.ID = entry.CreatedAt.UnixNano()

	data := map[string]interface{}{
		"id":           entry.ID,
		"activityType": string(entry.ActivityType),
		"summary":      entry.Summary,
		"details":      entry.Details,
		"createdAt":    entry.CreatedAt,
	}
	if entry.SessionID != nil {
		data["sessionId"] = *entry.SessionID
	}
	_, _, err := s.client.Collection(s.collection).Add(ctx, data)
	return err
}

// List returns matching entries, newest first.
func (s *ActivityStore) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	q := s.client.Collection(s.collection).Query
	if opts.SessionID != nil {
		q = q.Where("sessionId", "==", *opts.SessionID)
	}
	if opts.ActivityType != nil {
		q = q.Where("activityType", "==", string(*opts.ActivityType))
	}
	q = q.OrderBy("createdAt", firestore.Desc)
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	entries := []activity.ActivityEntry{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, snapshotToEntry(snap))
	}
	return entries, nil
}

func snapshotToEntry(snap *firestore.DocumentSnapshot) activity.ActivityEntry {
	data := snap.Data()
	id, _ := data["id"].(int64)
	typ, _ := data["activityType"].(string)
	summary, _ := data["summary"].(string)
	details, _ := data["details"].(string)
	createdAt, _ := data["createdAt"].(time.Time)

	entry := activity.ActivityEntry{
		ID:           id,
		ActivityType: activity.ActivityType(typ),
		Summary:      summary,
		Details:      details,
		CreatedAt:    createdAt,
	}
	if sid, ok := data["sessionId"].(string); ok {
		entry.SessionID = &sid
	}
	return entry
}
