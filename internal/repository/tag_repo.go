package repository

import (
	"context"
	"database/sql"

	"github.com/media-site/internal/database"
	"github.com/media-site/internal/models"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

// GetBySlug retrieves a tag by slug
func (r *tagRepo) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	query := `
		SELECT id, slug, title, COALESCE(seo_title, ''), COALESCE(tag_name, ''), COALESCE(description, '')
		FROM news_tag WHERE slug = $1 LIMIT 1
	`

	var tag models.Tag
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&tag.ID, &tag.Slug, &tag.Title, &tag.SeoTitle, &tag.TagName, &tag.Description,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
