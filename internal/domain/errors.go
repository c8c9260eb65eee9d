package domain

import "github.com/go-faster/errors"

// Sentinel errors used throughout the application.
var (
	ErrInvalidStatus        = errors.New("status must be a non-empty string")
	ErrNotReady             = errors.New("service is not ready")
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
)
