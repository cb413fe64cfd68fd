package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Repository implements simplecms.Repository using in-memory storage
type Repository struct {
	mu       sync.RWMutex
	contents map[uuid.UUID]*simplecms.Content
	slugToID map[string]uuid.UUID
}

// New creates a new in-memory repository
func New() simplecms.Repository {
	return &Repository{
		contents: make(map[uuid.UUID]*simplecms.Content),
		slugToID: make(map[string]uuid.UUID),
	}
}

func (r *Repository) CreateContent(ctx context.Context, content *simplecms.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.slugToID[content.Slug]; taken {
		return simplecms.ErrSlugConflict
	}

	// Store a copy to avoid external modifications
	r.contents[content.ID] = cloneContent(content)
	r.slugToID[content.Slug] = content.ID

	return nil
}

func (r *Repository) GetContent(ctx context.Context, id uuid.UUID) (*simplecms.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	content, exists := r.contents[id]
	if !exists {
		return nil, simplecms.ErrContentNotFound
	}

	return cloneContent(content), nil
}

func (r *Repository) GetContentBySlug(ctx context.Context, slug string) (*simplecms.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.slugToID[slug]
	if !exists {
		return nil, simplecms.ErrContentNotFound
	}

	content, exists := r.contents[id]
	if !exists {
		return nil, simplecms.ErrContentNotFound
	}

	return cloneContent(content), nil
}

func (r *Repository) UpdateContent(ctx context.Context, content *simplecms.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.contents[content.ID]
	if !exists {
		return simplecms.ErrContentNotFound
	}

	if other, taken := r.slugToID[content.Slug]; taken && other != content.ID {
		return simplecms.ErrSlugConflict
	}

	// The view counter only moves through IncrementViews; an update carries
	// whatever count the caller read, so keep the stored value.
	updated := cloneContent(content)
	updated.Views = existing.Views

	if existing.Slug != content.Slug {
		delete(r.slugToID, existing.Slug)
		r.slugToID[content.Slug] = content.ID
	}
	r.contents[content.ID] = updated

	return nil
}

func (r *Repository) DeleteContent(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	content, exists := r.contents[id]
	if !exists {
		return simplecms.ErrContentNotFound
	}

	delete(r.slugToID, content.Slug)
	delete(r.contents, id)

	return nil
}

func (r *Repository) ListContent(ctx context.Context, filters simplecms.ContentListFilters) ([]*simplecms.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*simplecms.Content
	for _, content := range r.contents {
		if filters.AuthorID != nil && content.Author.ID != *filters.AuthorID {
			continue
		}
		if filters.Status != nil && content.Status != *filters.Status {
			continue
		}
		if filters.Kind != nil && content.Kind != *filters.Kind {
			continue
		}
		result = append(result, cloneContent(content))
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filters.Limit != nil && *filters.Limit > 0 && *filters.Limit < len(result) {
		result = result[:*filters.Limit]
	}

	return result, nil
}

func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	content, exists := r.contents[id]
	if !exists {
		return 0, simplecms.ErrContentNotFound
	}

	content.Views++
	return content.Views, nil
}

// cloneContent copies a content record including its slice and pointer fields
// so callers can never mutate the stored record.
func cloneContent(content *simplecms.Content) *simplecms.Content {
	c := *content
	if content.Tags != nil {
		c.Tags = append([]string(nil), content.Tags...)
	}
	if content.SEO != nil {
		seo := *content.SEO
		if content.SEO.Keywords != nil {
			seo.Keywords = append([]string(nil), content.SEO.Keywords...)
		}
		c.SEO = &seo
	}
	if content.PublishedAt != nil {
		t := *content.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}
