package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/media-site/internal/database"
	"github.com/media-site/internal/models"
)

// podcastRepo is the concrete implementation of PodcastRepository
type podcastRepo struct {
	db *database.DB
}

// NewPodcastRepo creates a new podcast repository
func NewPodcastRepo(db *database.DB) PodcastRepository {
	return &podcastRepo{db: db}
}

func buildPodcastWhere(f PodcastFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.Alias != "" {
		w.add("p.alias = ?", f.Alias)
	}
	if f.ExcludeAlias != "" {
		w.add("p.alias <> ?", f.ExcludeAlias)
	}
	if f.CategoryTitle != "" {
		w.add("p.category_title = ?", f.CategoryTitle)
	}
	if !f.PublishedBefore.IsZero() {
		w.add("p.published_date <= ?", f.PublishedBefore)
	}
	if !f.PublishedAfter.IsZero() {
		w.add("p.published_date > ?", f.PublishedAfter)
	}
	if !f.PublishedUntil.IsZero() {
		w.add("p.published_date < ?", f.PublishedUntil)
	}
	return w
}

func podcastOrderBy(o Order) string {
	switch o {
	case OrderPublishedDesc:
		return " ORDER BY p.published_date DESC NULLS LAST, p.id"
	case OrderPublishedAsc:
		return " ORDER BY p.published_date ASC, p.id"
	default:
		return " ORDER BY p.id"
	}
}

// Find returns up to limit podcasts matching f. A limit of 0 means no limit.
func (r *podcastRepo) Find(ctx context.Context, f PodcastFilter, limit int) ([]*models.Podcast, error) {
	w := buildPodcastWhere(f)
	query := `
		SELECT p.id, p.title, p.category_title, p.alias, COALESCE(p.description, ''), COALESCE(p.content, ''),
			p.published_date, p.image, p.podcast, p.author_ids
		FROM news_podcast p` + w.sql() + podcastOrderBy(f.Order)
	if limit > 0 {
		query += " LIMIT " + w.next(limit)
	}

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query podcasts: %w", err)
	}
	defer rows.Close()

	podcasts := make([]*models.Podcast, 0)
	for rows.Next() {
		var p models.Podcast
		var publishedDate sql.NullTime
		err := rows.Scan(
			&p.ID, &p.Title, &p.CategoryTitle, &p.Alias, &p.Description, &p.Content,
			&publishedDate, &p.Image, &p.Podcast, pq.Array(&p.AuthorIDs),
		)
		if err != nil {
			return nil, fmt.Errorf("scan podcast: %w", err)
		}
		if publishedDate.Valid {
			p.PublishedDate = &publishedDate.Time
		}
		podcasts = append(podcasts, &p)
	}
	return podcasts, rows.Err()
}

// Get returns the first podcast matching f, or nil
func (r *podcastRepo) Get(ctx context.Context, f PodcastFilter) (*models.Podcast, error) {
	podcasts, err := r.Find(ctx, f, 1)
	if err != nil {
		return nil, err
	}
	if len(podcasts) == 0 {
		return nil, nil
	}
	return podcasts[0], nil
}
