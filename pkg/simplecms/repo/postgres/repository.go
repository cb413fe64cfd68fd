package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simplecms.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) simplecms.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simplecms.Repository {
	return &Repository{db: pool}
}

// mapError translates postgres errors into the domain taxonomy. The slug
// uniqueness constraint surfaces as ErrSlugConflict; anything infrastructural
// becomes ErrStoreUnavailable.
func mapError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return simplecms.ErrSlugConflict
			}
			return fmt.Errorf("duplicate entry in %s: %s", operation, pgErr.ConstraintName)
		case "23502": // not_null_violation
			return fmt.Errorf("%w: required field %s is missing", simplecms.ErrValidation, pgErr.ColumnName)
		default:
			return fmt.Errorf("%w: %s failed: %s (code: %s)", simplecms.ErrStoreUnavailable, operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return simplecms.ErrContentNotFound
	}

	return fmt.Errorf("%w: %s failed: %v", simplecms.ErrStoreUnavailable, operation, err)
}

const contentColumns = `id, title, slug, body, excerpt, kind, status,
	       author_id, author_name, author_email, featured_image, tags, seo,
	       views, published_at, created_at, updated_at`

func scanContent(row pgx.Row) (*simplecms.Content, error) {
	var content simplecms.Content
	err := row.Scan(
		&content.ID, &content.Title, &content.Slug, &content.Body, &content.Excerpt,
		&content.Kind, &content.Status,
		&content.Author.ID, &content.Author.Name, &content.Author.Email,
		&content.FeaturedImage, &content.Tags, &content.SEO,
		&content.Views, &content.PublishedAt, &content.CreatedAt, &content.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *Repository) CreateContent(ctx context.Context, content *simplecms.Content) error {
	query := `
		INSERT INTO content (
			id, title, slug, body, excerpt, kind, status,
			author_id, author_name, author_email, featured_image, tags, seo,
			views, published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.Exec(ctx, query,
		content.ID, content.Title, content.Slug, content.Body, content.Excerpt,
		content.Kind, content.Status,
		content.Author.ID, content.Author.Name, content.Author.Email,
		content.FeaturedImage, content.Tags, content.SEO,
		content.Views, content.PublishedAt, content.CreatedAt, content.UpdatedAt)

	if err != nil {
		return mapError("create content", err)
	}

	return nil
}

func (r *Repository) GetContent(ctx context.Context, id uuid.UUID) (*simplecms.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE id = $1`

	content, err := scanContent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplecms.ErrContentNotFound
		}
		return nil, mapError("get content", err)
	}

	return content, nil
}

func (r *Repository) GetContentBySlug(ctx context.Context, slug string) (*simplecms.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE slug = $1`

	content, err := scanContent(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplecms.ErrContentNotFound
		}
		return nil, mapError("get content by slug", err)
	}

	return content, nil
}

func (r *Repository) UpdateContent(ctx context.Context, content *simplecms.Content) error {
	// Views are deliberately absent: the counter only moves through
	// IncrementViews.
	query := `
		UPDATE content SET
			title = $2, slug = $3, body = $4, excerpt = $5, kind = $6,
			status = $7, featured_image = $8, tags = $9, seo = $10,
			published_at = $11, updated_at = $12
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		content.ID, content.Title, content.Slug, content.Body, content.Excerpt,
		content.Kind, content.Status, content.FeaturedImage, content.Tags,
		content.SEO, content.PublishedAt, content.UpdatedAt)

	if err != nil {
		return mapError("update content", err)
	}
	if tag.RowsAffected() == 0 {
		return simplecms.ErrContentNotFound
	}

	return nil
}

func (r *Repository) DeleteContent(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return mapError("delete content", err)
	}
	if tag.RowsAffected() == 0 {
		return simplecms.ErrContentNotFound
	}

	return nil
}

func (r *Repository) ListContent(ctx context.Context, filters simplecms.ContentListFilters) ([]*simplecms.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content`

	var conditions []string
	var args []interface{}

	if filters.AuthorID != nil {
		args = append(args, *filters.AuthorID)
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Kind != nil {
		args = append(args, *filters.Kind)
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filters.Limit != nil && *filters.Limit > 0 {
		args = append(args, *filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list content", err)
	}
	defer rows.Close()

	var contents []*simplecms.Content
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, mapError("list content", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list content", err)
	}

	return contents, nil
}

func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	// Store-level atomic increment; concurrent resolutions of the same slug
	// never lose an update.
	query := `UPDATE content SET views = views + 1 WHERE id = $1 RETURNING views`

	var views int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, simplecms.ErrContentNotFound
		}
		return 0, mapError("increment views", err)
	}

	return views, nil
}
