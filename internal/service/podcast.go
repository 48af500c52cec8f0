package service

import (
	"context"
	"fmt"
	"time"

	"github.com/media-site/internal/cache"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/repository"
	"github.com/rs/zerolog"
)

// podcastService is the concrete implementation of PodcastService
type podcastService struct {
	podcasts repository.PodcastRepository
	resolver AuthorResolver
	cache    cache.Store
	now      func() time.Time
	log      zerolog.Logger
}

func newPodcastService(repos *repository.Repositories, resolver AuthorResolver, opts Options, log zerolog.Logger) *podcastService {
	return &podcastService{
		podcasts: repos.Podcast,
		resolver: resolver,
		cache:    opts.EntityCache,
		now:      opts.Now,
		log:      log.With().Str("service", "podcast").Logger(),
	}
}

// Podcasts returns the latest published podcasts
func (s *podcastService) Podcasts(ctx context.Context) (*PodcastsContext, error) {
	podcasts, err := s.podcasts.Find(ctx, repository.VisiblePodcasts(s.now()), PodcastsLimit)
	if err != nil {
		return nil, fmt.Errorf("load podcasts: %w", err)
	}
	if podcasts == nil {
		podcasts = []*models.Podcast{}
	}
	return &PodcastsContext{Podcasts: podcasts}, nil
}

// Podcast returns a podcast with its authors, related episodes and neighbours
func (s *podcastService) Podcast(ctx context.Context, slug string) (*PodcastContext, error) {
	now := s.now()
	podcast, err := s.load(ctx, now, slug)
	if err != nil {
		return nil, err
	}

	out := &PodcastContext{
		Podcast:         podcast,
		Authors:         s.resolver.Authors(ctx, podcast.AuthorIDs),
		RelatedPodcasts: []*models.Podcast{},
		ContentType:     contentTypePodcasts,
	}

	if podcast.CategoryTitle != "" {
		f := repository.VisiblePodcasts(now)
		f.CategoryTitle = podcast.CategoryTitle
		f.ExcludeAlias = slug
		related, err := s.podcasts.Find(ctx, f, RelatedLimit)
		if err != nil {
			return nil, fmt.Errorf("load related podcasts: %w", err)
		}
		if related != nil {
			out.RelatedPodcasts = related
		}
	}

	if podcast.PublishedDate != nil {
		next := repository.VisiblePodcasts(now)
		next.PublishedAfter = *podcast.PublishedDate
		next.Order = repository.OrderPublishedAsc
		if out.NextPodcast, err = s.podcasts.Get(ctx, next); err != nil {
			return nil, fmt.Errorf("load next podcast: %w", err)
		}

		prev := repository.VisiblePodcasts(now)
		prev.PublishedUntil = *podcast.PublishedDate
		if out.PrevPodcast, err = s.podcasts.Get(ctx, prev); err != nil {
			return nil, fmt.Errorf("load previous podcast: %w", err)
		}
	}

	return out, nil
}

func (s *podcastService) load(ctx context.Context, now time.Time, slug string) (*models.Podcast, error) {
	key := "podcast_" + slug
	if s.cache != nil {
		var cached models.Podcast
		ok, err := cache.GetJSON(ctx, s.cache, key, &cached)
		if err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("Entity cache miss")
		}
		if ok {
			return &cached, nil
		}
	}

	f := repository.VisiblePodcasts(now)
	f.Alias = slug
	podcast, err := s.podcasts.Get(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load podcast %s: %w", slug, err)
	}
	if podcast == nil {
		return nil, ErrNotFound
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, podcast, 0); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Entity cache write failed")
		}
	}
	return podcast, nil
}
