package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/media-site/internal/database"
	"github.com/media-site/internal/models"
)

const articleFrom = `
	FROM news_article a
	LEFT JOIN news_fixedarticle f ON f.article_id = a.id`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// buildArticleWhere translates a filter into SQL conditions
func buildArticleWhere(f ArticleFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.ID != "" {
		w.add("a.id = ?::uuid", f.ID)
	}
	if f.Alias != "" {
		w.add("a.alias = ?", f.Alias)
	}
	if f.Status != "" {
		w.add("a.article_status = ?", string(f.Status))
	}
	if f.ExcludeStatus != "" {
		w.add("a.article_status <> ?", string(f.ExcludeStatus))
	}
	if !f.PublishedBefore.IsZero() {
		w.add("a.published_date <= ?", f.PublishedBefore)
	}
	if f.PublicParams != nil {
		w.add("a.public_params = ANY(?)", int64Array(f.PublicParams))
	}
	if f.CategoryIDs != nil {
		w.add(`EXISTS (SELECT 1 FROM news_article_categories ac
			WHERE ac.article_id = a.id AND ac.category_id = ANY(?::uuid[]))`, pq.Array(f.CategoryIDs))
	}
	if f.CategorySlug != "" {
		w.add(`EXISTS (SELECT 1 FROM news_article_categories ac
			JOIN news_category c ON c.id = ac.category_id
			WHERE ac.article_id = a.id AND c.slug = ?)`, f.CategorySlug)
	}
	if f.TagSlug != "" {
		w.add(`EXISTS (SELECT 1 FROM news_article_tags at
			JOIN news_tag t ON t.id = at.tag_id
			WHERE at.article_id = a.id AND t.slug = ?)`, f.TagSlug)
	}
	if f.AuthorID != "" {
		w.add("? = ANY(a.author_ids)", f.AuthorID)
	}
	if f.TitleContains != "" {
		w.add("a.title ILIKE ?", likePattern(f.TitleContains))
	}
	if len(f.ExcludeIDs) > 0 {
		w.add("a.id <> ALL(?::uuid[])", pq.Array(f.ExcludeIDs))
	}
	if f.ExcludeAlias != "" {
		w.add("a.alias <> ?", f.ExcludeAlias)
	}
	if f.FixedOnly || f.FixedOrderMin > 0 || f.FixedOrderMax > 0 {
		w.add("f.\"order\" IS NOT NULL")
	}
	if f.FixedOrderMin > 0 {
		w.add("f.\"order\" >= ?", f.FixedOrderMin)
	}
	if f.FixedOrderMax > 0 {
		w.add("f.\"order\" <= ?", f.FixedOrderMax)
	}
	return w
}

func articleOrderBy(o Order) string {
	switch o {
	case OrderPublishedDesc:
		return " ORDER BY a.published_date DESC NULLS LAST, a.id"
	case OrderPublishedAsc:
		return " ORDER BY a.published_date ASC, a.id"
	case OrderFixedAsc:
		return " ORDER BY f.\"order\" ASC, a.id"
	default:
		return " ORDER BY a.id"
	}
}

func articleColumns(withContent bool) string {
	content := "''"
	if withContent {
		content = "COALESCE(a.content, '')"
	}
	return `SELECT a.id, a.title, a.alias, COALESCE(a.description, ''), ` + content + `,
		a.image, a.published_date, a.datetime_updated, COALESCE(a.article_status, 'D'),
		a.author_ids, COALESCE(a.public_params, 0), a.public_types, f."order"`
}

// Find returns the articles matching f in filter order. A limit of 0 means no limit.
func (r *articleRepo) Find(ctx context.Context, f ArticleFilter, offset, limit int) ([]*models.Article, error) {
	w := buildArticleWhere(f)
	query := articleColumns(f.WithContent) + articleFrom + w.sql() + articleOrderBy(f.Order)
	if limit > 0 {
		query += " LIMIT " + w.next(limit)
	}
	if offset > 0 {
		query += " OFFSET " + w.next(offset)
	}

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Count returns the number of articles matching f, independent of paging
func (r *articleRepo) Count(ctx context.Context, f ArticleFilter) (int, error) {
	w := buildArticleWhere(f)
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+articleFrom+w.sql(), w.args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// Get returns the first article matching f, or nil
func (r *articleRepo) Get(ctx context.Context, f ArticleFilter) (*models.Article, error) {
	articles, err := r.Find(ctx, f, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}
	return articles[0], nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var publishedDate, updatedAt sql.NullTime
	var fixedOrder sql.NullInt64
	var status string

	err := row.Scan(
		&article.ID, &article.Title, &article.Alias, &article.Description, &article.Content,
		&article.Image, &publishedDate, &updatedAt, &status,
		pq.Array(&article.AuthorIDs), &article.PublicParams, pq.Array(&article.PublicTypes), &fixedOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}

	article.Status = models.ArticleStatus(status)
	if publishedDate.Valid {
		article.PublishedDate = &publishedDate.Time
	}
	if updatedAt.Valid {
		article.UpdatedAt = &updatedAt.Time
	}
	if fixedOrder.Valid {
		order := int(fixedOrder.Int64)
		article.FixedOrder = &order
	}
	return &article, nil
}

// hydrate loads categories and tags for a batch of articles with one query each
func (r *articleRepo) hydrate(ctx context.Context, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	byID := make(map[string]*models.Article, len(articles))
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		a.Categories = []*models.Category{}
		a.Tags = []*models.Tag{}
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}

	catRows, err := r.db.QueryContext(ctx, `
		SELECT ac.article_id, c.id, c.slug, c.title, COALESCE(c.seo_title, ''), COALESCE(c.description, ''),
			COALESCE(c.level, 1), COALESCE(c.is_active, TRUE), c.parent_category_id
		FROM news_article_categories ac
		JOIN news_category c ON c.id = ac.category_id
		WHERE ac.article_id = ANY($1::uuid[])
		ORDER BY c.level, c.title`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query article categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var articleID string
		category, err := scanCategory(catRows, &articleID)
		if err != nil {
			return err
		}
		if a, ok := byID[articleID]; ok {
			a.Categories = append(a.Categories, category)
		}
	}
	if err := catRows.Err(); err != nil {
		return err
	}

	tagRows, err := r.db.QueryContext(ctx, `
		SELECT at.article_id, t.id, t.slug, t.title, COALESCE(t.seo_title, ''), COALESCE(t.tag_name, ''),
			COALESCE(t.description, '')
		FROM news_article_tags at
		JOIN news_tag t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1::uuid[])
		ORDER BY at.position NULLS LAST, t.title`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query article tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var articleID string
		var tag models.Tag
		if err := tagRows.Scan(&articleID, &tag.ID, &tag.Slug, &tag.Title, &tag.SeoTitle, &tag.TagName, &tag.Description); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if a, ok := byID[articleID]; ok {
			a.Tags = append(a.Tags, &tag)
		}
	}
	return tagRows.Err()
}
