package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no document has been persisted.
	ErrNotFound = errors.New("no persisted document")
	// ErrParse indicates the persisted document could not be decoded.
	ErrParse = errors.New("persisted document is malformed")
	// ErrCapacityExceeded indicates the document does not fit in storage.
	ErrCapacityExceeded = errors.New("document exceeds storage capacity")
	// ErrUnknownKind indicates an unrecognised entry list name.
	ErrUnknownKind = errors.New("unknown entry kind")
)

// ParseError wraps the decoder failure for a malformed persisted blob.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrParse.Error(), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ParseError as ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
