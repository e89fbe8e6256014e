package domain

import "errors"

// Repositories translate driver-specific errors into these.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
