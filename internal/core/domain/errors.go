package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnparsableDocument indicates XML that cannot be parsed at all.
	// This is the only fatal per-document condition: every other defect
	// degrades to unset fields or dropped records.
	ErrUnparsableDocument = errors.New("unparsable document")

	// ErrNoDocuments indicates a batch input directory with no XML files.
	ErrNoDocuments = errors.New("no documents found")

	// ErrBatchInProgress indicates a batch run is already active.
	ErrBatchInProgress = errors.New("batch in progress")

	// ErrWatcherClosed indicates the directory watcher has been closed.
	ErrWatcherClosed = errors.New("watcher closed")
)
