package store

import "errors"

// Domain errors for the store package.
//
// These errors can be checked using errors.Is():
//
//	id, err := svc.Insert("notes", rec).Await(ctx)
//	if errors.Is(err, store.ErrInsertFailed) {
//	    // handle failed insert
//	}
var (
	// ErrInsertFailed is the only error Insert reports. The cause is logged
	// but never returned.
	ErrInsertFailed = errors.New("store: insert failed")

	// ErrNotImplemented is returned by InsertBatch.
	ErrNotImplemented = errors.New("store: not implemented")

	// ErrMissingID is returned by Update when the record has no id field.
	ErrMissingID = errors.New("store: record has no id field")

	// ErrInvalidRecord is returned when decoding a record that is not a JSON object.
	ErrInvalidRecord = errors.New("store: invalid record")

	// ErrClosed is returned for operations dispatched after Close.
	ErrClosed = errors.New("store: service closed")

	// ErrInvalidOptions is returned by New when a required collaborator is missing.
	ErrInvalidOptions = errors.New("store: invalid options")
)
