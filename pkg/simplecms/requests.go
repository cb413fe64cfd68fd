package simplecms

import "github.com/google/uuid"

// Request DTOs. Every operation takes the acting identity explicitly; the core
// has no notion of a current session.

// CreateContentRequest contains parameters for creating a content item. Slug
// is optional; when empty it is derived from Title. Kind defaults to post and
// Status to draft.
type CreateContentRequest struct {
	Actor         Identity
	Title         string
	Slug          string
	Body          string
	Excerpt       string
	Kind          ContentKind
	Status        ContentStatus
	FeaturedImage string
	Tags          []string
	SEO           *SEOMetadata
}

// UpdateContentRequest is a partial update. A nil field is left unchanged; a
// non-nil field replaces the stored value wholesale. Tags follow the same
// rule: nil means unchanged, an empty slice clears the set. ID, authorship,
// creation time and the view counter are not patchable.
type UpdateContentRequest struct {
	ID    uuid.UUID
	Actor Identity

	Title         *string
	Slug          *string
	Body          *string
	Excerpt       *string
	Kind          *ContentKind
	Status        *ContentStatus
	FeaturedImage *string
	Tags          []string
	SEO           *SEOMetadata
}

// ListContentRequest contains parameters for the owner-scoped listing. Status
// and Kind are optional filters.
type ListContentRequest struct {
	Actor  Identity
	Status *ContentStatus
	Kind   *ContentKind
}
