package repository

import (
	"context"

	"github.com/media-site/internal/database"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/pagination"
)

// ArticleRepository defines the read operations over news articles.
// A nil article with a nil error means no row matched.
type ArticleRepository interface {
	Find(ctx context.Context, f ArticleFilter, offset, limit int) ([]*models.Article, error)
	Count(ctx context.Context, f ArticleFilter) (int, error)
	Get(ctx context.Context, f ArticleFilter) (*models.Article, error)
}

// CategoryRepository defines the read operations over categories
type CategoryRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// TagRepository defines the read operations over tags
type TagRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
}

// PodcastRepository defines the read operations over podcasts
type PodcastRepository interface {
	Find(ctx context.Context, f PodcastFilter, limit int) ([]*models.Podcast, error)
	Get(ctx context.Context, f PodcastFilter) (*models.Podcast, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article  ArticleRepository
	Category CategoryRepository
	Tag      TagRepository
	Podcast  PodcastRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepo(db),
		Category: NewCategoryRepo(db),
		Tag:      NewTagRepo(db),
		Podcast:  NewPodcastRepo(db),
	}
}

// articleQuery adapts an ArticleRepository and a fixed filter to pagination.Query
type articleQuery struct {
	repo   ArticleRepository
	filter ArticleFilter
}

// ArticleQuery returns a pageable view of the articles matching f
func ArticleQuery(repo ArticleRepository, f ArticleFilter) pagination.Query[*models.Article] {
	return &articleQuery{repo: repo, filter: f}
}

func (q *articleQuery) Count(ctx context.Context) (int, error) {
	return q.repo.Count(ctx, q.filter)
}

func (q *articleQuery) Fetch(ctx context.Context, offset, limit int) ([]*models.Article, error) {
	return q.repo.Find(ctx, q.filter, offset, limit)
}
