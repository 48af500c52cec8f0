package authors

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/media-site/internal/cache"
	"github.com/media-site/internal/metrics"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/pagination"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCacheTTL is how long a resolved author is kept in the cache.
	DefaultCacheTTL = 15 * time.Minute
	// DefaultFanoutLimit caps concurrent lookups for one listing.
	DefaultFanoutLimit = 8
	// PerPage is the user service's page size for the author directory.
	PerPage = 20
)

// Resolver turns author ids into author records. It never fails: lookups
// that error out resolve to absent and are logged.
type Resolver struct {
	users UserService
	store cache.Store
	ttl   time.Duration
	limit int
	log   zerolog.Logger
}

// NewResolver creates a resolver. store may be nil to disable caching.
func NewResolver(users UserService, store cache.Store, ttl time.Duration, limit int, log zerolog.Logger) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if limit <= 0 {
		limit = DefaultFanoutLimit
	}
	return &Resolver{
		users: users,
		store: store,
		ttl:   ttl,
		limit: limit,
		log:   log.With().Str("component", "authors").Logger(),
	}
}

func cacheKey(id string) string {
	return "user_" + id
}

// Resolve returns the author with the given id, or nil when the id is
// empty, unknown, or the lookup failed.
func (r *Resolver) Resolve(ctx context.Context, id string) *models.Author {
	if id == "" {
		return nil
	}

	if r.store != nil {
		var cached models.Author
		ok, err := cache.GetJSON(ctx, r.store, cacheKey(id), &cached)
		if err != nil {
			r.log.Warn().Err(err).Str("author_id", id).Msg("Author cache read failed")
		}
		if ok {
			return &cached
		}
	}

	author, err := r.users.UserByID(ctx, id)
	if err != nil {
		metrics.RecordAuthorLookup("error")
		r.log.Warn().Err(err).Str("author_id", id).Msg("Author lookup failed")
		return nil
	}
	if author == nil {
		metrics.RecordAuthorLookup("missing")
		return nil
	}
	metrics.RecordAuthorLookup("found")

	if r.store != nil {
		if err := cache.SetJSON(ctx, r.store, cacheKey(id), author, r.ttl); err != nil {
			r.log.Warn().Err(err).Str("author_id", id).Msg("Author cache write failed")
		}
	}
	return author
}

// ResolveMany resolves distinct ids concurrently, at most limit at a time.
// The result holds only the ids that resolved.
func (r *Resolver) ResolveMany(ctx context.Context, ids []string) map[string]*models.Author {
	found := make(map[string]*models.Author, len(ids))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(r.limit)

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		id := id
		g.Go(func() error {
			if a := r.Resolve(ctx, id); a != nil {
				mu.Lock()
				found[id] = a
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return found
}

// Authors resolves ids and returns them in the given order, skipping the
// ones that did not resolve.
func (r *Resolver) Authors(ctx context.Context, ids []string) []*models.Author {
	return Ordered(ids, r.ResolveMany(ctx, ids))
}

// Ordered picks the resolved authors in ids order, without duplicates.
func Ordered(ids []string, found map[string]*models.Author) []*models.Author {
	out := make([]*models.Author, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		a, ok := found[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, a)
	}
	return out
}

// DirectoryPage is one page of the author directory.
type DirectoryPage struct {
	Authors []*models.Author `json:"authors"`
	Page    int              `json:"page"`
	Pages   int              `json:"pages"`
}

// List returns a page of the author directory, keeping only the authors
// whose name contains q in either "first last" or "last first" order.
// A failed lookup yields an empty page.
func (r *Resolver) List(ctx context.Context, page int, q string) *DirectoryPage {
	out := &DirectoryPage{Authors: []*models.Author{}, Page: page}

	q = strings.ToLower(strings.TrimSpace(q))
	list, err := r.users.Users(ctx, page, q)
	if err != nil {
		r.log.Warn().Err(err).Int("page", page).Msg("Author directory lookup failed")
		return out
	}
	if list == nil {
		return out
	}

	for _, a := range list.Users {
		if a != nil && MatchesName(a, q) {
			out.Authors = append(out.Authors, a)
		}
	}
	out.Pages = pagination.TotalPages(list.TotalUsers, PerPage)
	return out
}

// MatchesName reports whether q (already lower-cased) occurs in the author's
// name in either order. An empty q matches everyone.
func MatchesName(a *models.Author, q string) bool {
	if q == "" {
		return true
	}
	first := strings.ToLower(strings.TrimSpace(a.FirstName))
	last := strings.ToLower(strings.TrimSpace(a.LastName))
	return strings.Contains(first+" "+last, q) || strings.Contains(last+" "+first, q)
}
