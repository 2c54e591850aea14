package source

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrFetch         = errors.New("dataset fetch failed")
	ErrMissingColumn = errors.New("dataset column missing")
)
