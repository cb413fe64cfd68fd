package simplecms

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-cms library.
type Service interface {
	// Content lifecycle operations
	CreateContent(ctx context.Context, req CreateContentRequest) (*Content, error)
	GetContent(ctx context.Context, id uuid.UUID, actor Identity) (*Content, error)
	UpdateContent(ctx context.Context, req UpdateContentRequest) (*Content, error)
	DeleteContent(ctx context.Context, id uuid.UUID, actor Identity) error

	// Query operations
	ListContent(ctx context.Context, req ListContentRequest) ([]*Content, error)
	ListAllContent(ctx context.Context, actor Identity) ([]*Content, error)
	ListRecentPublished(ctx context.Context, limit int) ([]*PublicContent, error)
	ContentStats(ctx context.Context, actor Identity) (*ContentStats, error)

	// Public resolution
	ResolvePublished(ctx context.Context, slug string) (*Content, error)
}
