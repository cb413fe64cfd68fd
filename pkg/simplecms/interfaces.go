package simplecms

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for content persistence. Implementations
// must enforce slug uniqueness on create and update, surfacing violations as
// ErrSlugConflict, and must apply IncrementViews atomically so that concurrent
// resolutions never lose an increment.
type Repository interface {
	CreateContent(ctx context.Context, content *Content) error
	GetContent(ctx context.Context, id uuid.UUID) (*Content, error)
	GetContentBySlug(ctx context.Context, slug string) (*Content, error)
	UpdateContent(ctx context.Context, content *Content) error
	DeleteContent(ctx context.Context, id uuid.UUID) error
	ListContent(ctx context.Context, filters ContentListFilters) ([]*Content, error)

	// IncrementViews atomically adds one to the view counter of the given
	// content and returns the new count.
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
}

// BlobStore defines the interface for media storage backends used for
// featured images.
type BlobStore interface {
	// Upload stores the object under objectKey.
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// UploadWithParams stores the object with additional parameters.
	UploadWithParams(ctx context.Context, reader io.Reader, params UploadParams) error

	// Download retrieves the object stored under objectKey.
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// URL returns a publicly usable URL for the object.
	URL(ctx context.Context, objectKey string) (string, error)

	// Delete removes the object.
	Delete(ctx context.Context, objectKey string) error

	// GetObjectMeta retrieves metadata for a stored object.
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// UploadParams contains parameters for uploading an object.
type UploadParams struct {
	ObjectKey string
	MimeType  string
}

// ObjectMeta contains metadata about an object in storage.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}

// EventSink defines the interface for lifecycle event handling.
type EventSink interface {
	// ContentCreated is fired when a content item is created.
	ContentCreated(ctx context.Context, content *Content) error

	// ContentUpdated is fired when a content item is updated.
	ContentUpdated(ctx context.Context, content *Content) error

	// ContentDeleted is fired when a content item is deleted.
	ContentDeleted(ctx context.Context, contentID uuid.UUID) error

	// ContentResolved is fired when the public resolver serves a published
	// item (after the view increment).
	ContentResolved(ctx context.Context, content *Content) error
}
