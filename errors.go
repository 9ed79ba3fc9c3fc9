package bountypager

import "errors"

var (
	// ErrRemoteUnavailable reports any failure to reach or read the remote
	// ledger: transport errors, call timeouts, malformed responses.
	ErrRemoteUnavailable = errors.New("remote ledger unavailable")

	// ErrInvalidCursor reports a start index outside [-1, length-1] or a
	// negative count.
	ErrInvalidCursor = errors.New("invalid cursor")
)
