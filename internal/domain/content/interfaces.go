package content

import "context"

// SlotRepository provides raw storage for the serialized document.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Storage loads and saves whole documents.
type Storage interface {
	Load(ctx context.Context) (StoredDocument, error)
	Save(ctx context.Context, doc Document) error
	Clear(ctx context.Context) error
}
