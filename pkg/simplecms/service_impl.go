package simplecms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultRecentLimit = 6

// service implements the Service interface
type service struct {
	repository Repository
	eventSink  EventSink
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

// Content lifecycle operations

func (s *service) CreateContent(ctx context.Context, req CreateContentRequest) (*Content, error) {
	if req.Actor.ID == "" {
		return nil, ErrUnauthorized
	}

	if req.Kind == "" {
		req.Kind = ContentKindPost
	}
	if req.Status == "" {
		req.Status = ContentStatusDraft
	}

	if err := validateContentFields(req.Title, req.Body, req.Kind, req.Status); err != nil {
		return nil, err
	}

	// Explicit slugs pass through the same derivation as titles, so a stored
	// slug is always in canonical form.
	source := req.Slug
	if source == "" {
		source = req.Title
	}
	slug := Slugify(source)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug derives to an empty string", ErrValidation)
	}

	now := time.Now().UTC()
	content := &Content{
		ID:      uuid.New(),
		Title:   req.Title,
		Slug:    slug,
		Body:    req.Body,
		Excerpt: req.Excerpt,
		Kind:    req.Kind,
		Status:  req.Status,
		Author: Author{
			ID:    req.Actor.ID,
			Name:  req.Actor.Name,
			Email: req.Actor.Email,
		},
		FeaturedImage: req.FeaturedImage,
		Tags:          normalizeTags(req.Tags),
		SEO:           req.SEO,
		Views:         0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if content.Status == ContentStatusPublished {
		content.PublishedAt = &now
	}

	if err := s.repository.CreateContent(ctx, content); err != nil {
		return nil, &ContentError{ContentID: content.ID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		// Event failures never fail the operation.
		_ = s.eventSink.ContentCreated(ctx, content)
	}

	return content, nil
}

func (s *service) GetContent(ctx context.Context, id uuid.UUID, actor Identity) (*Content, error) {
	content, err := s.repository.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(content, actor); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *service) UpdateContent(ctx context.Context, req UpdateContentRequest) (*Content, error) {
	content, err := s.repository.GetContent(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(content, req.Actor); err != nil {
		return nil, err
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Slug != nil {
		slug := Slugify(*req.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug derives to an empty string", ErrValidation)
		}
		content.Slug = slug
	}
	if req.Body != nil {
		content.Body = *req.Body
	}
	if req.Excerpt != nil {
		content.Excerpt = *req.Excerpt
	}
	if req.Kind != nil {
		content.Kind = *req.Kind
	}
	if req.Status != nil {
		content.Status = *req.Status
	}
	if req.FeaturedImage != nil {
		content.FeaturedImage = *req.FeaturedImage
	}
	if req.Tags != nil {
		content.Tags = normalizeTags(req.Tags)
	}
	if req.SEO != nil {
		content.SEO = req.SEO
	}

	if err := validateContentFields(content.Title, content.Body, content.Kind, content.Status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// PublishedAt records the first publish and is never cleared.
	if content.Status == ContentStatusPublished && content.PublishedAt == nil {
		content.PublishedAt = &now
	}
	content.UpdatedAt = now

	if err := s.repository.UpdateContent(ctx, content); err != nil {
		return nil, &ContentError{ContentID: content.ID, Op: "update", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.ContentUpdated(ctx, content)
	}

	return content, nil
}

func (s *service) DeleteContent(ctx context.Context, id uuid.UUID, actor Identity) error {
	content, err := s.repository.GetContent(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(content, actor); err != nil {
		return err
	}

	if err := s.repository.DeleteContent(ctx, id); err != nil {
		return &ContentError{ContentID: id, Op: "delete", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.ContentDeleted(ctx, id)
	}

	return nil
}

// Query operations

func (s *service) ListContent(ctx context.Context, req ListContentRequest) ([]*Content, error) {
	if req.Actor.ID == "" {
		return nil, ErrUnauthorized
	}

	if req.Status != nil && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *req.Status)
	}
	if req.Kind != nil && !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: invalid kind %q", ErrValidation, *req.Kind)
	}

	authorID := req.Actor.ID
	return s.repository.ListContent(ctx, ContentListFilters{
		AuthorID: &authorID,
		Status:   req.Status,
		Kind:     req.Kind,
	})
}

func (s *service) ListAllContent(ctx context.Context, actor Identity) ([]*Content, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.repository.ListContent(ctx, ContentListFilters{})
}

func (s *service) ListRecentPublished(ctx context.Context, limit int) ([]*PublicContent, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	published := ContentStatusPublished
	contents, err := s.repository.ListContent(ctx, ContentListFilters{
		Status: &published,
		Limit:  &limit,
	})
	if err != nil {
		return nil, err
	}

	result := make([]*PublicContent, 0, len(contents))
	for _, c := range contents {
		result = append(result, c.PublicProjection())
	}
	return result, nil
}

func (s *service) ContentStats(ctx context.Context, actor Identity) (*ContentStats, error) {
	if actor.ID == "" {
		return nil, ErrUnauthorized
	}

	authorID := actor.ID
	contents, err := s.repository.ListContent(ctx, ContentListFilters{AuthorID: &authorID})
	if err != nil {
		return nil, err
	}

	stats := &ContentStats{Total: len(contents)}
	for _, c := range contents {
		switch c.Status {
		case ContentStatusPublished:
			stats.Published++
		case ContentStatusDraft:
			stats.Draft++
		case ContentStatusArchived:
			stats.Archived++
		}
		stats.TotalViews += c.Views
	}
	return stats, nil
}

// Public resolution

func (s *service) ResolvePublished(ctx context.Context, slug string) (*Content, error) {
	content, err := s.repository.GetContentBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	// Unpublished slugs are indistinguishable from absent ones.
	if content.Status != ContentStatusPublished {
		return nil, ErrContentNotFound
	}

	views, err := s.repository.IncrementViews(ctx, content.ID)
	if err != nil {
		return nil, &ContentError{ContentID: content.ID, Op: "resolve", Err: err}
	}
	content.Views = views

	if s.eventSink != nil {
		_ = s.eventSink.ContentResolved(ctx, content)
	}

	return content, nil
}

// Helpers

func validateContentFields(title, body string, kind ContentKind, status ContentStatus) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: body is required", ErrValidation)
	}
	if !kind.IsValid() {
		return fmt.Errorf("%w: invalid kind %q", ErrValidation, kind)
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}
	return nil
}

func authorizeOwner(content *Content, actor Identity) error {
	if actor.ID == "" {
		return ErrUnauthorized
	}
	if content.Author.ID != actor.ID && !actor.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

// normalizeTags trims whitespace, drops empties and removes duplicates while
// keeping first-seen order.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
