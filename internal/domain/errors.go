package domain

import "errors"

// Sentinel errors shared by the store and the HTTP modules.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("network request failed")
)
