package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeSessionOpened    ActivityType = "session_opened"
	TypeSessionCommitted ActivityType = "session_committed"
	TypeCommitFailed     ActivityType = "commit_failed"
	TypeSessionDiscarded ActivityType = "session_discarded"
	TypeContentReset     ActivityType = "content_reset"
	TypeLoginFailed      ActivityType = "login_failed"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	SessionID    *string      `json:"session_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
