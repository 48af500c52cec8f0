package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/media-site/internal/database"
	"github.com/media-site/internal/models"
)

const categoryColumns = `SELECT c.id, c.slug, c.title, COALESCE(c.seo_title, ''), COALESCE(c.description, ''),
	COALESCE(c.level, 1), COALESCE(c.is_active, TRUE), c.parent_category_id
	FROM news_category c`

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// GetBySlug retrieves a category and its direct children
func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, categoryColumns+" WHERE c.slug = $1 LIMIT 1", slug)
	category, err := scanCategory(row, nil)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, categoryColumns+" WHERE c.parent_category_id = $1::uuid ORDER BY c.title", category.ID)
	if err != nil {
		return nil, fmt.Errorf("query subcategories: %w", err)
	}
	defer rows.Close()

	category.Children = []*models.Category{}
	for rows.Next() {
		child, err := scanCategory(rows, nil)
		if err != nil {
			return nil, err
		}
		category.Children = append(category.Children, child)
	}
	return category, rows.Err()
}

// scanCategory scans the category columns, optionally preceded by an article id
func scanCategory(row rowScanner, articleID *string) (*models.Category, error) {
	var category models.Category
	var parentID sql.NullString

	dest := []interface{}{
		&category.ID, &category.Slug, &category.Title, &category.SeoTitle, &category.Description,
		&category.Level, &category.IsActive, &parentID,
	}
	if articleID != nil {
		dest = append([]interface{}{articleID}, dest...)
	}
	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	if parentID.Valid {
		category.ParentCategoryID = &parentID.String
	}
	return &category, nil
}
