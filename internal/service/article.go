package service

import (
	"context"
	"fmt"
	"time"

	"github.com/media-site/internal/amp"
	"github.com/media-site/internal/cache"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	resolver AuthorResolver
	cache    cache.Store
	now      func() time.Time
	log      zerolog.Logger
}

func newArticleService(repos *repository.Repositories, resolver AuthorResolver, opts Options, log zerolog.Logger) *articleService {
	return &articleService{
		articles: repos.Article,
		resolver: resolver,
		cache:    opts.EntityCache,
		now:      opts.Now,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// Article returns a published article with its authors and related articles
func (s *articleService) Article(ctx context.Context, slug string) (*ArticleContext, error) {
	article, err := s.loadPublished(ctx, "article_"+slug, slug)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, article)
}

// Preview returns an article of any status except removed, looked up by id
func (s *articleService) Preview(ctx context.Context, uid string) (*PreviewContext, error) {
	article, err := s.articles.Get(ctx, repository.ArticleFilter{
		ID:            uid,
		ExcludeStatus: models.ArticleStatusRemoved,
		WithContent:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("load article %s: %w", uid, err)
	}
	if article == nil {
		return nil, ErrNotFound
	}

	detail, err := s.detail(ctx, article)
	if err != nil {
		return nil, err
	}

	latest, err := s.articles.Find(ctx, repository.Visible(s.now()), 0, PreviewLatestLimit)
	if err != nil {
		return nil, fmt.Errorf("load latest articles: %w", err)
	}
	return &PreviewContext{ArticleContext: *detail, LatestArticles: models.NewArticleCards(latest)}, nil
}

// AMP returns an article with its content rewritten for AMP
func (s *articleService) AMP(ctx context.Context, slug string) (*AMPContext, error) {
	article, err := s.loadPublished(ctx, "article_amp_"+slug, slug)
	if err != nil {
		return nil, err
	}
	detail, err := s.detail(ctx, article)
	if err != nil {
		return nil, err
	}

	content, scripts := amp.Convert(article.Content)
	return &AMPContext{ArticleContext: *detail, Content: content, AMPScripts: scripts}, nil
}

// loadPublished reads an article through the entity cache. A cache entry
// that cannot be read or decoded counts as a miss.
func (s *articleService) loadPublished(ctx context.Context, key, slug string) (*models.Article, error) {
	if s.cache != nil {
		var cached models.Article
		ok, err := cache.GetJSON(ctx, s.cache, key, &cached)
		if err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("Entity cache miss")
		}
		if ok {
			return &cached, nil
		}
	}

	f := repository.Published(s.now())
	f.Alias = slug
	f.WithContent = true
	article, err := s.articles.Get(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load article %s: %w", slug, err)
	}
	if article == nil {
		return nil, ErrNotFound
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, article, 0); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Entity cache write failed")
		}
	}
	return article, nil
}

func (s *articleService) detail(ctx context.Context, article *models.Article) (*ArticleContext, error) {
	related, err := s.related(ctx, article)
	if err != nil {
		return nil, err
	}
	return &ArticleContext{
		Article:         article,
		BadgeCategory:   article.BadgeCategory(),
		Authors:         s.resolver.Authors(ctx, article.AuthorIDs),
		RelatedArticles: related,
		ContentType:     contentTypeArticles,
	}, nil
}

// related returns visible articles sharing a category, newest first
func (s *articleService) related(ctx context.Context, article *models.Article) ([]models.ArticleCard, error) {
	ids := article.CategoryIDs()
	if len(ids) == 0 {
		return []models.ArticleCard{}, nil
	}

	f := repository.Visible(s.now())
	f.CategoryIDs = ids
	f.ExcludeIDs = []string{article.ID}
	related, err := s.articles.Find(ctx, f, 0, RelatedLimit)
	if err != nil {
		return nil, fmt.Errorf("load related articles: %w", err)
	}
	return models.NewArticleCards(related), nil
}
