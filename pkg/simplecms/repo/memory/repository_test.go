package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
)

func newContent(title, slug, authorID string, status simplecms.ContentStatus) *simplecms.Content {
	now := time.Now().UTC()
	return &simplecms.Content{
		ID:        uuid.New(),
		Title:     title,
		Slug:      slug,
		Body:      "body",
		Kind:      simplecms.ContentKindPost,
		Status:    status,
		Author:    simplecms.Author{ID: authorID, Name: "Author"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetContent(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	content := newContent("First", "first", "u1", simplecms.ContentStatusDraft)
	require.NoError(t, repo.CreateContent(ctx, content))

	got, err := repo.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, content.Title, got.Title)

	bySlug, err := repo.GetContentBySlug(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, content.ID, bySlug.ID)

	_, err = repo.GetContent(ctx, uuid.New())
	assert.ErrorIs(t, err, simplecms.ErrContentNotFound)

	_, err = repo.GetContentBySlug(ctx, "missing")
	assert.ErrorIs(t, err, simplecms.ErrContentNotFound)
}

func TestSlugUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	require.NoError(t, repo.CreateContent(ctx, newContent("A", "shared", "u1", simplecms.ContentStatusDraft)))

	err := repo.CreateContent(ctx, newContent("B", "shared", "u2", simplecms.ContentStatusDraft))
	assert.ErrorIs(t, err, simplecms.ErrSlugConflict)
}

func TestUpdateContent(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	content := newContent("Original", "original", "u1", simplecms.ContentStatusDraft)
	require.NoError(t, repo.CreateContent(ctx, content))

	t.Run("slug index follows a slug change", func(t *testing.T) {
		content.Slug = "renamed"
		require.NoError(t, repo.UpdateContent(ctx, content))

		_, err := repo.GetContentBySlug(ctx, "original")
		assert.ErrorIs(t, err, simplecms.ErrContentNotFound)

		got, err := repo.GetContentBySlug(ctx, "renamed")
		require.NoError(t, err)
		assert.Equal(t, content.ID, got.ID)
	})

	t.Run("slug taken by another record conflicts", func(t *testing.T) {
		other := newContent("Other", "other", "u1", simplecms.ContentStatusDraft)
		require.NoError(t, repo.CreateContent(ctx, other))

		other.Slug = "renamed"
		assert.ErrorIs(t, repo.UpdateContent(ctx, other), simplecms.ErrSlugConflict)
	})

	t.Run("update never moves the view counter", func(t *testing.T) {
		_, err := repo.IncrementViews(ctx, content.ID)
		require.NoError(t, err)

		content.Views = 99
		require.NoError(t, repo.UpdateContent(ctx, content))

		got, err := repo.GetContent(ctx, content.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Views)
	})

	t.Run("unknown id", func(t *testing.T) {
		missing := newContent("Missing", "missing", "u1", simplecms.ContentStatusDraft)
		assert.ErrorIs(t, repo.UpdateContent(ctx, missing), simplecms.ErrContentNotFound)
	})
}

func TestDeleteContent(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	content := newContent("Doomed", "doomed", "u1", simplecms.ContentStatusPublished)
	require.NoError(t, repo.CreateContent(ctx, content))
	require.NoError(t, repo.DeleteContent(ctx, content.ID))

	_, err := repo.GetContent(ctx, content.ID)
	assert.ErrorIs(t, err, simplecms.ErrContentNotFound)

	// Deleting frees the slug for reuse.
	require.NoError(t, repo.CreateContent(ctx, newContent("Reborn", "doomed", "u2", simplecms.ContentStatusDraft)))

	assert.ErrorIs(t, repo.DeleteContent(ctx, content.ID), simplecms.ErrContentNotFound)
}

func TestListContent(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	base := time.Now().UTC()
	records := []*simplecms.Content{
		newContent("Oldest", "oldest", "u1", simplecms.ContentStatusPublished),
		newContent("Middle", "middle", "u1", simplecms.ContentStatusDraft),
		newContent("Newest", "newest", "u2", simplecms.ContentStatusPublished),
	}
	for i, c := range records {
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.CreateContent(ctx, c))
	}

	t.Run("sorted newest first", func(t *testing.T) {
		got, err := repo.ListContent(ctx, simplecms.ContentListFilters{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Newest", got[0].Title)
		assert.Equal(t, "Oldest", got[2].Title)
	})

	t.Run("author filter", func(t *testing.T) {
		author := "u1"
		got, err := repo.ListContent(ctx, simplecms.ContentListFilters{AuthorID: &author})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("status filter with limit", func(t *testing.T) {
		published := simplecms.ContentStatusPublished
		limit := 1
		got, err := repo.ListContent(ctx, simplecms.ContentListFilters{Status: &published, Limit: &limit})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Newest", got[0].Title)
	})
}

func TestIncrementViews(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	content := newContent("Counted", "counted", "u1", simplecms.ContentStatusPublished)
	require.NoError(t, repo.CreateContent(ctx, content))

	for i := int64(1); i <= 3; i++ {
		views, err := repo.IncrementViews(ctx, content.ID)
		require.NoError(t, err)
		assert.Equal(t, i, views)
	}

	_, err := repo.IncrementViews(ctx, uuid.New())
	assert.ErrorIs(t, err, simplecms.ErrContentNotFound)
}

func TestStoredRecordsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	content := newContent("Isolated", "isolated", "u1", simplecms.ContentStatusDraft)
	content.Tags = []string{"a", "b"}
	require.NoError(t, repo.CreateContent(ctx, content))

	got, err := repo.GetContent(ctx, content.ID)
	require.NoError(t, err)
	got.Tags[0] = "mutated"
	got.Title = "mutated"

	again, err := repo.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Tags[0])
	assert.Equal(t, "Isolated", again.Title)
}
