package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
	"github.com/rpggio/folio/internal/domain/gate"
)

// Error codes shared by the MCP and HTTP surfaces.
const (
	CodeInvalidPIN        = "INVALID_PIN"
	CodeMalformedPIN      = "MALFORMED_PIN"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeSessionClosed     = "SESSION_CLOSED"
	CodeSessionActive     = "SESSION_ACTIVE"
	CodeUnknownField      = "UNKNOWN_FIELD"
	CodeUnknownKind       = "UNKNOWN_KIND"
	CodeIndexOutOfRange   = "INDEX_OUT_OF_RANGE"
	CodeCapacityExceeded  = "CAPACITY_EXCEEDED"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeConfirmRequired   = "CONFIRMATION_REQUIRED"
	CodeCommitFailed      = "COMMIT_FAILED"
	CodeSessionIDRequired = "SESSION_ID_REQUIRED"
)

// ErrConfirmationRequired indicates a destructive call without confirm=true.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrSessionIDRequired indicates a session tool was called without a session.
var ErrSessionIDRequired = errors.New("session id required")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to API error codes. It returns nil for
// errors without a mapping.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, gate.ErrMalformedPIN):
		return &APIError{Code: CodeMalformedPIN, Message: "pin must be exactly 4 digits", RecoveryHint: "Enter the 4 digit editor PIN"}
	case errors.Is(err, gate.ErrInvalidPIN):
		return &APIError{Code: CodeInvalidPIN, Message: "invalid pin", RecoveryHint: "Check the configured admin PIN"}
	case errors.Is(err, editor.ErrSessionNotFound):
		return &APIError{Code: CodeSessionNotFound, Message: "session not found", RecoveryHint: "Open a new session"}
	case errors.Is(err, editor.ErrSessionClosed):
		return &APIError{Code: CodeSessionClosed, Message: "session is closed", RecoveryHint: "Open a new session"}
	case errors.Is(err, editor.ErrSessionActive):
		return &APIError{Code: CodeSessionActive, Message: "another editing session is open", RecoveryHint: "Retry with takeover=true to discard it"}
	case errors.Is(err, editor.ErrUnknownField):
		return &APIError{Code: CodeUnknownField, Message: err.Error(), RecoveryHint: "Read folio://docs/editing for field names"}
	case errors.Is(err, content.ErrUnknownKind):
		return &APIError{Code: CodeUnknownKind, Message: "unknown entry kind", RecoveryHint: "Use projects or experiments"}
	case errors.Is(err, editor.ErrIndexOutOfRange):
		return &APIError{Code: CodeIndexOutOfRange, Message: err.Error(), RecoveryHint: "Call get_session to see current positions"}
	case errors.Is(err, content.ErrCapacityExceeded):
		return &APIError{
			Code:         CodeCapacityExceeded,
			Message:      "content is too large to save",
			Details:      err.Error(),
			RecoveryHint: "Replace embedded data: images with links, or use export_session and ship the file as defaults",
		}
	case errors.Is(err, ErrConfirmationRequired):
		return &APIError{Code: CodeConfirmRequired, Message: "confirmation required", RecoveryHint: "Pass confirm=true"}
	case errors.Is(err, ErrSessionIDRequired):
		return &APIError{Code: CodeSessionIDRequired, Message: "session id required", RecoveryHint: "Pass session_id from open_session"}
	default:
		return nil
	}
}

// toolError converts err into the error returned from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
