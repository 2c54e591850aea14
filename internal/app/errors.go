package service

import "errors"

var (
	// ErrNotStarted is returned when a refresh is requested before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrQueueFull is returned when the refresh queue rejects a job.
	ErrQueueFull = errors.New("refresh queue full")
	// ErrInvalidSeason is returned for an unknown season filter.
	ErrInvalidSeason = errors.New("invalid season")
	// ErrInvalidMinYear is returned for a negative min year.
	ErrInvalidMinYear = errors.New("invalid min year")
)
