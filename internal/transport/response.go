package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rpggio/folio/internal/mcp"
)

// maxBodyBytes bounds request bodies. Documents with embedded images can be large.
const maxBodyBytes = 16 << 20

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse error: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeAPIError(w http.ResponseWriter, status int, code, message, hint string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message, RecoveryHint: hint})
}

// writeError maps err onto an HTTP status and error body.
func writeError(w http.ResponseWriter, err error) {
	writeErrorWithFallback(w, err, "INTERNAL")
}

// writeErrorWithFallback reports unmapped errors as 500 with fallbackCode
// and the error message verbatim.
func writeErrorWithFallback(w http.ResponseWriter, err error, fallbackCode string) {
	apiErr := mcp.MapError(err)
	if apiErr == nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    fallbackCode,
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, statusFor(apiErr.Code), ErrorResponse{
		Code:         apiErr.Code,
		Message:      apiErr.Message,
		Details:      apiErr.Details,
		RecoveryHint: apiErr.RecoveryHint,
	})
}

func statusFor(code string) int {
	switch code {
	case mcp.CodeInvalidPIN, mcp.CodeSessionClosed:
		return http.StatusUnauthorized
	case mcp.CodeSessionNotFound:
		return http.StatusNotFound
	case mcp.CodeSessionActive:
		return http.StatusConflict
	case mcp.CodeCapacityExceeded:
		return http.StatusInsufficientStorage
	case mcp.CodeMalformedPIN, mcp.CodeUnknownField, mcp.CodeUnknownKind,
		mcp.CodeIndexOutOfRange, mcp.CodeInvalidInput, mcp.CodeConfirmRequired,
		mcp.CodeSessionIDRequired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

