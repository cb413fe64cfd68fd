package simplecms

import (
	"time"

	"github.com/google/uuid"
)

// ContentStatus is the domain type for content lifecycle states.
type ContentStatus string

// Content status constants (typed).
const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

// IsValid reports whether s is a known content status.
func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

// ContentKind is the domain type for content kinds.
type ContentKind string

// Content kind constants (typed).
const (
	ContentKindPost   ContentKind = "post"
	ContentKindPage   ContentKind = "page"
	ContentKindCustom ContentKind = "custom"
)

// IsValid reports whether k is a known content kind.
func (k ContentKind) IsValid() bool {
	switch k {
	case ContentKindPost, ContentKindPage, ContentKindCustom:
		return true
	}
	return false
}

// Identity is the authenticated principal acting on a request. It is produced
// by the identity provider at the service boundary; the core never reads
// ambient auth state.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool { return i.Role == "admin" }

// Author is the authorship snapshot captured on a content item at creation
// time. It is never re-derived after creation.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SEOMetadata is optional search metadata, independent of title and body.
type SEOMetadata struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Content represents a single content item. The slug is the public lookup key
// and is unique store-wide at all times.
type Content struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Body          string        `json:"body"`
	Excerpt       string        `json:"excerpt,omitempty"`
	Kind          ContentKind   `json:"kind"`
	Status        ContentStatus `json:"status"`
	Author        Author        `json:"author"`
	FeaturedImage string        `json:"featured_image,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	SEO           *SEOMetadata  `json:"seo,omitempty"`
	Views         int64         `json:"views"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PublicContent is the projection of a content item safe for anonymous
// consumption. It carries the author display name only, never email or
// identifier.
type PublicContent struct {
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt,omitempty"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	AuthorName    string    `json:"author_name"`
	Views         int64     `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
}

// PublicProjection returns the public-safe view of c.
func (c *Content) PublicProjection() *PublicContent {
	return &PublicContent{
		Title:         c.Title,
		Slug:          c.Slug,
		Excerpt:       c.Excerpt,
		FeaturedImage: c.FeaturedImage,
		Tags:          c.Tags,
		AuthorName:    c.Author.Name,
		Views:         c.Views,
		CreatedAt:     c.CreatedAt,
	}
}

// ContentStats aggregates an owner's content for the dashboard.
type ContentStats struct {
	Total      int   `json:"total"`
	Published  int   `json:"published"`
	Draft      int   `json:"draft"`
	Archived   int   `json:"archived"`
	TotalViews int64 `json:"total_views"`
}

// ContentListFilters defines filtering options for listing content.
// A nil field means "no restriction".
type ContentListFilters struct {
	AuthorID *string
	Status   *ContentStatus
	Kind     *ContentKind
	Limit    *int
}
