package session

import "errors"

var (
	// ErrSessionNotFound is returned when an id does not resolve to a
	// stored session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotYourTurn is returned when a player acts out of turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrJoinRejected is returned when a session exists but can no
	// longer accept the join (already started).
	ErrJoinRejected = errors.New("join rejected")
)
