package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidLimit = errors.New("invalid ranking limit")
	ErrNilSnapshot  = errors.New("nil snapshot")
)
