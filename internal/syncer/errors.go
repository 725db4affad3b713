package syncer

import "errors"

var (
	// ErrInvalidRequest means the caller's parameters are missing/malformed.
	ErrInvalidRequest = errors.New("syncer: invalid request")

	// ErrEmptyDataset means the spreadsheet mapped to zero lead rows.
	ErrEmptyDataset = errors.New("syncer: spreadsheet has no lead rows")

	// ErrStoreRead means a board-wide read failed; the whole run aborts.
	// Per-entity write failures are recovered by skip-and-log instead.
	ErrStoreRead = errors.New("syncer: store read failed")
)
