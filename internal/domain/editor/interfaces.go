package editor

import (
	"context"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/content"
)

// ContentStore provides the live document and accepts commits.
type ContentStore interface {
	Current() content.Document
	Commit(ctx context.Context, doc content.Document) error
	Reset(ctx context.Context) error
}

// PINVerifier checks a PIN attempt.
type PINVerifier interface {
	Verify(pin string) error
}

// ActivityRecorder writes audit entries without failing the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *activity.ActivityEntry)
}
