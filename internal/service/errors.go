// FILE: internal/service/errors.go
package service

import "errors"

// Sentinel errors the controllers branch on. Everything else bubbles up
// to the error handler middleware as a 500.
var (
	// ErrEmptyInput marks a blank chat message. Nothing is persisted and
	// the controller answers with the fixed "type something" reply.
	ErrEmptyInput = errors.New("empty message")

	// ErrMissingLabel marks a session operation without a session name.
	ErrMissingLabel = errors.New("session name is required")

	// ErrUserNotFound marks a profile operation for an id without a row.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailInUse marks a profile update to an email another account owns.
	ErrEmailInUse = errors.New("email already in use")
)
