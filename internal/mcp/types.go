package mcp

import (
	"time"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
)

// EmptyParams is the input of tools that take no arguments.
type EmptyParams struct{}

// SessionParams identifies an editing session.
type SessionParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"editing session id returned by open_session"`
}

type OpenSessionParams struct {
	PIN      string `json:"pin" jsonschema:"the 4 digit editor PIN"`
	Takeover bool   `json:"takeover,omitempty" jsonschema:"discard an already open session instead of failing"`
}

type SetEntryFieldParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"editing session id"`
	Kind      string `json:"kind" jsonschema:"projects (works) or experiments (labs)"`
	Index     int    `json:"index" jsonschema:"zero-based entry position"`
	Field     string `json:"field" jsonschema:"entry field name such as title, title_zh, imageUrl, year"`
	Value     string `json:"value" jsonschema:"new value; stack and gallery accept comma separated text"`
}

type SetEntryListParams struct {
	SessionID string   `json:"session_id,omitempty" jsonschema:"editing session id"`
	Kind      string   `json:"kind" jsonschema:"projects (works) or experiments (labs)"`
	Index     int      `json:"index" jsonschema:"zero-based entry position"`
	Field     string   `json:"field" jsonschema:"stack or gallery"`
	Values    []string `json:"values" jsonschema:"replacement list"`
}

type SetContactFieldParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"editing session id"`
	Field     string `json:"field" jsonschema:"tagline, tagline_zh, email or resumeUrl"`
	Value     string `json:"value" jsonschema:"new value"`
}

type AddEntryParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"editing session id"`
	Kind      string `json:"kind" jsonschema:"projects (works) or experiments (labs)"`
}

type EntryParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"editing session id"`
	Kind      string `json:"kind" jsonschema:"projects (works) or experiments (labs)"`
	Index     int    `json:"index" jsonschema:"zero-based entry position"`
}

type MoveEntryParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"editing session id"`
	Kind      string `json:"kind" jsonschema:"projects (works) or experiments (labs)"`
	Index     int    `json:"index" jsonschema:"zero-based entry position"`
	Direction string `json:"direction" jsonschema:"up or down"`
}

type ResetContentParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"editing session id"`
	Confirm   bool   `json:"confirm" jsonschema:"must be true; reset discards all committed edits"`
}

type RecentActivityParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"only entries for this session"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
}

// ContentResponse wraps the live document.
type ContentResponse struct {
	Document content.Document `json:"document"`
}

type NavigationResponse struct {
	Items []content.NavItem `json:"items"`
}

// SessionResponse describes a session and its working copy.
type SessionResponse struct {
	SessionID    string           `json:"session_id"`
	Status       string           `json:"status"`
	CreatedAt    string           `json:"created_at"`
	LastActivity string           `json:"last_activity"`
	Document     content.Document `json:"document"`
}

type EntryResponse struct {
	SessionID string        `json:"session_id"`
	Kind      string        `json:"kind"`
	Index     int           `json:"index"`
	Entry     content.Entry `json:"entry"`
}

type ListResponse struct {
	SessionID string   `json:"session_id"`
	Kind      string   `json:"kind"`
	IDs       []string `json:"ids"`
}

type StatusResponse struct {
	SessionID string `json:"session_id,omitempty"`
	Status    string `json:"status"`
}

type ExportResponse struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	YAML      string `json:"yaml"`
}

type ActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

type ActivityEntryResponse struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
}

func sessionResponse(info editor.SessionInfo) SessionResponse {
	return SessionResponse{
		SessionID:    info.SessionID,
		Status:       string(info.Status),
		CreatedAt:    info.CreatedAt.Format(time.RFC3339),
		LastActivity: info.LastActivity.Format(time.RFC3339),
		Document:     info.Document,
	}
}

func entryIDs(entries []content.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func activityResponse(entries []activity.ActivityEntry) ActivityResponse {
	out := make([]ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		item := ActivityEntryResponse{
			ID:        e.ID,
			Type:      string(e.ActivityType),
			Summary:   e.Summary,
			Details:   e.Details,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
		if e.SessionID != nil {
			item.SessionID = *e.SessionID
		}
		out = append(out, item)
	}
	return ActivityResponse{Entries: out}
}
