// Package common defines shared constants and sentinel errors used across
// the clinic backend layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrStoreFailure  = errors.New("store failure")
	ErrValidation    = errors.New("validation error")
	ErrInvalidParent = errors.New("invalid parent comment")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMissing       = errors.New("token missing")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)
