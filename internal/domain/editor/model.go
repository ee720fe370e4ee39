package editor

import (
	"sync"
	"time"

	"github.com/rpggio/folio/internal/domain/content"
)

// Status represents the lifecycle status of a session.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Session is an editing session holding a private working copy of the
// live document. Edits are invisible to readers until the session commits.
type Session struct {
	id        string
	createdAt time.Time
	now       func() time.Time

	mu           sync.Mutex
	status       Status
	lastActivity time.Time
	closedAt     *time.Time
	working      content.Document
}

// SessionInfo is a point-in-time view of a session.
type SessionInfo struct {
	SessionID    string           `json:"session_id"`
	Status       Status           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	LastActivity time.Time        `json:"last_activity"`
	ClosedAt     *time.Time       `json:"closed_at,omitempty"`
	Document     content.Document `json:"document"`
}

// OpenRequest describes a request to open a session.
type OpenRequest struct {
	PIN string
	// Takeover discards any session that is already open.
	Takeover bool
}
