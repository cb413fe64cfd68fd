package simplecms

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrContentNotFound indicates a content item was not found. The public
	// resolver also returns it for slugs that exist but are not published, so
	// anonymous callers cannot distinguish the two cases.
	ErrContentNotFound = errors.New("content not found")

	// ErrValidation indicates malformed or missing required input.
	ErrValidation = errors.New("validation failed")

	// ErrSlugConflict indicates the requested slug is already taken by a
	// different content item.
	ErrSlugConflict = errors.New("slug already in use")

	// ErrUnauthorized indicates the operation requires an authenticated
	// identity (or a role) the caller does not have.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreUnavailable indicates the document store call failed for
	// infrastructural reasons. Not retried internally.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ContentError represents an error related to a content operation.
type ContentError struct {
	ContentID uuid.UUID
	Op        string
	Err       error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content operation %s failed for content %s: %v", e.Op, e.ContentID, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}
