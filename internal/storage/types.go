package storage

import "errors"

var (
	// ErrNotFound indicates that the requested resource was not found
	// within the calling user's rows.
	ErrNotFound = errors.New("resource not found")

	// ErrNoIdentity indicates that an operation was attempted without an
	// authenticated user identity.
	ErrNoIdentity = errors.New("no authenticated identity")

	// ErrInvalidInput indicates that the input parameters are invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// ListOptions provides pagination for list operations.
type ListOptions struct {
	// Limit is the maximum number of items to return (default 20, max 100).
	Limit int

	// Offset is the number of items to skip.
	Offset int
}

// Normalize applies defaults and bounds to the options.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// RequireUser validates that a user identity is present. Every driver
// calls this before touching its backend.
func RequireUser(userID string) error {
	if userID == "" {
		return ErrNoIdentity
	}
	return nil
}
