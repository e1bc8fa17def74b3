package app

import "errors"

// ErrNotFound and related errors describe validation and runtime failures.
var (
	ErrNotFound          = errors.New("not found")
	ErrNoColumns         = errors.New("project has no columns")
	ErrInvalidDeleteMode = errors.New("invalid delete mode")
	ErrInvalidSnapshot   = errors.New("invalid snapshot")
)
