// Package common defines sentinel errors shared by the guestbook server
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage / file lookup errors.
	ErrNotFound     = errors.New("not found")
	ErrInvalidEntry = errors.New("invalid entry")

	// Request-level errors.
	ErrMalformedSubmission = errors.New("malformed submission")
	ErrMethodNotAllowed    = errors.New("method not allowed")

	// Feature switches.
	ErrVisitorCounterDisabled = errors.New("visitor counter disabled")

	// Lifecycle errors.
	ErrShuttingDown    = errors.New("server is shutting down")
	ErrShutdownTimeout = errors.New("shutdown timeout exceeded")
)
