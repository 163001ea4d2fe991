package storage

import "errors"

// Domain errors for blob storage operations.
var (
	ErrNotFound   = errors.New("blob not found")
	ErrInvalidKey = errors.New("invalid blob key")
)
