package service

import "errors"

// Failure taxonomy surfaced to handlers. Every failure is terminal for
// its request; nothing in the service layer retries.
var (
	// ErrForbidden means the acting user lacks the required capability.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput means the payload is malformed, incomplete, or
	// references something out of range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means a referenced match/over/player/team/user row
	// does not exist.
	ErrNotFound = errors.New("not found")
)
