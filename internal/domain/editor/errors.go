package editor

import "errors"

var (
	// ErrSessionNotFound indicates the session doesn't exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionClosed indicates the session was committed or discarded.
	ErrSessionClosed = errors.New("session is closed")
	// ErrSessionActive indicates another session is already open.
	ErrSessionActive = errors.New("another editing session is open")
	// ErrUnknownField indicates an unrecognised field name.
	ErrUnknownField = errors.New("unknown field")
	// ErrIndexOutOfRange indicates an entry index outside the list.
	ErrIndexOutOfRange = errors.New("entry index out of range")
)
