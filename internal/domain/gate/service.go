// Package gate implements the editor's PIN check.
//
// The gate only keeps casual visitors out of the editor. The PIN is stored
// in plain configuration, compared without hashing and attempts are not
// rate limited, so it must not be treated as an authentication layer.
package gate

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
)

// DefaultPIN is used when no PIN is configured.
const DefaultPIN = "1996"

// PINLength is the number of digits in a PIN.
const PINLength = 4

// Service verifies PIN attempts.
type Service struct {
	pin    string
	logger *slog.Logger
}

// NewService creates a gate for pin. An empty pin selects DefaultPIN.
func NewService(pin string, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if pin == "" {
		pin = DefaultPIN
	}
	if !WellFormed(pin) {
		return nil, fmt.Errorf("configured pin: %w", ErrMalformedPIN)
	}
	return &Service{pin: pin, logger: logger}, nil
}

// Verify checks a PIN attempt.
func (s *Service) Verify(attempt string) error {
	if !WellFormed(attempt) {
		s.logger.Debug("malformed pin attempt")
		return ErrMalformedPIN
	}
	if subtle.ConstantTimeCompare([]byte(attempt), []byte(s.pin)) != 1 {
		s.logger.Info("pin mismatch")
		return ErrInvalidPIN
	}
	return nil
}

// WellFormed reports whether pin is exactly PINLength ASCII digits.
func WellFormed(pin string) bool {
	if len(pin) != PINLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}
