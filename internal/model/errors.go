package model

import "errors"

var (
	// ErrInvalidInput marks arguments rejected before any computation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrValidation marks claim requests rejected before persistence.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence wraps failures from an external store; the store's own
	// error stays reachable through errors.Is / errors.As.
	ErrPersistence = errors.New("persistence failed")

	// ErrUpstream marks a failed candidate-pool fetch.
	ErrUpstream = errors.New("upstream unavailable")

	ErrClaimNotFound = errors.New("claim not found")
)
