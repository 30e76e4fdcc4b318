package game

import "errors"

var (
	// ErrInvalidConfig is returned when a session is created with an
	// impossible configuration (capacity below one).
	ErrInvalidConfig = errors.New("invalid session configuration")

	// ErrSessionFull is returned when a join finds no free slot.
	ErrSessionFull = errors.New("session is full")

	// ErrPlayerNotFound is returned when an identity does not occupy
	// any slot of the session.
	ErrPlayerNotFound = errors.New("player not found in session")
)
