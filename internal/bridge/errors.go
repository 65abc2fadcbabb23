package bridge

import "errors"

// Sentinel errors for bridge operations.
var (
	// ErrNoHandle is returned when executing against a handle that was never opened.
	ErrNoHandle = errors.New("bridge: no open database handle")

	// ErrInvalidName is returned when opening a database with an empty name.
	ErrInvalidName = errors.New("bridge: database name cannot be empty")
)
