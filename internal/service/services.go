package service

import (
	"context"
	"errors"
	"time"

	"github.com/media-site/internal/authors"
	"github.com/media-site/internal/cache"
	"github.com/media-site/internal/config"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/repository"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a slug or id has no visible match
var ErrNotFound = errors.New("not found")

// ListingService builds the contexts of the listing pages
type ListingService interface {
	Home(ctx context.Context) (*HomeContext, error)
	LoadMore(ctx context.Context, page int) (*LoadMoreContext, error)
	Base(ctx context.Context, title string, year int) (*BaseContext, error)
	Category(ctx context.Context, slug string, page int) (*CategoryContext, error)
	Tag(ctx context.Context, slug string, page int) (*TagContext, error)
	Author(ctx context.Context, id string, page int) (*AuthorContext, error)
	Authors(ctx context.Context, page int, q string) (*AuthorsContext, error)
	Search(ctx context.Context, q string, page int, sort string) (*SearchContext, error)
	AllNews(ctx context.Context, page int) (*AllNewsContext, error)
	Fallback(ctx context.Context) (*FallbackContext, error)
}

// ArticleService builds the contexts of the article detail pages
type ArticleService interface {
	Article(ctx context.Context, slug string) (*ArticleContext, error)
	Preview(ctx context.Context, uid string) (*PreviewContext, error)
	AMP(ctx context.Context, slug string) (*AMPContext, error)
}

// PodcastService builds the contexts of the podcast pages
type PodcastService interface {
	Podcasts(ctx context.Context) (*PodcastsContext, error)
	Podcast(ctx context.Context, slug string) (*PodcastContext, error)
}

// AuthorResolver looks authors up in the external user service
type AuthorResolver interface {
	Resolve(ctx context.Context, id string) *models.Author
	Authors(ctx context.Context, ids []string) []*models.Author
	List(ctx context.Context, page int, q string) *authors.DirectoryPage
}

// Services holds all service interfaces
type Services struct {
	Listing ListingService
	Article ArticleService
	Podcast PodcastService
}

// Options carries the optional collaborators of the services
type Options struct {
	// HomeSections defaults to config.DefaultHomeSections
	HomeSections []config.HomeSection
	// EntityCache stores article and podcast detail records; nil disables it
	EntityCache cache.Store
	// Now defaults to time.Now
	Now func() time.Time
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, resolver AuthorResolver, opts Options, log zerolog.Logger) *Services {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HomeSections == nil {
		opts.HomeSections = config.DefaultHomeSections
	}

	return &Services{
		Listing: newListingService(repos, resolver, opts, log),
		Article: newArticleService(repos, resolver, opts, log),
		Podcast: newPodcastService(repos, resolver, opts, log),
	}
}
