package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/media-site/internal/authors"
	"github.com/media-site/internal/cache"
	"github.com/media-site/internal/config"
	"github.com/media-site/internal/mocks"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/service"
	"github.com/rs/zerolog"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *mocks.Store
	users *mocks.MockUserService
	cache *cache.MemoryStore
	svc   *service.Services
}

func newFixture(t *testing.T, sections ...config.HomeSection) *fixture {
	t.Helper()

	repos, store := mocks.NewRepositories()
	users := mocks.NewMockUserService()
	entityCache, err := cache.NewMemoryStore(64)
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}

	resolver := authors.NewResolver(users, nil, 0, 0, zerolog.Nop())
	opts := service.Options{
		EntityCache: entityCache,
		Now:         func() time.Time { return testNow },
	}
	if len(sections) > 0 {
		opts.HomeSections = sections
	}

	return &fixture{
		store: store,
		users: users,
		cache: entityCache,
		svc:   service.NewServices(repos, resolver, opts, zerolog.Nop()),
	}
}

// published returns a visible article dated hoursAgo before testNow
func published(id string, hoursAgo int, opts ...func(*models.Article)) *models.Article {
	date := testNow.Add(-time.Duration(hoursAgo) * time.Hour)
	a := &models.Article{
		ID:            id,
		Title:         "Article " + id,
		Alias:         "article-" + id,
		Content:       "<p>Body of " + id + "</p>",
		PublishedDate: &date,
		Status:        models.ArticleStatusPublished,
		AuthorIDs:     []string{},
		Categories:    []*models.Category{},
		Tags:          []*models.Tag{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func inCategories(cats ...*models.Category) func(*models.Article) {
	return func(a *models.Article) { a.Categories = append(a.Categories, cats...) }
}

func withTag(tag *models.Tag) func(*models.Article) {
	return func(a *models.Article) { a.Tags = append(a.Tags, tag) }
}

func byAuthors(ids ...string) func(*models.Article) {
	return func(a *models.Article) { a.AuthorIDs = ids }
}

func fixedAt(slot int) func(*models.Article) {
	return func(a *models.Article) { a.FixedOrder = &slot }
}

func withPublicParams(p int) func(*models.Article) {
	return func(a *models.Article) { a.PublicParams = p }
}

func withStatus(s models.ArticleStatus) func(*models.Article) {
	return func(a *models.Article) { a.Status = s }
}

func titled(title string) func(*models.Article) {
	return func(a *models.Article) { a.Title = title }
}

// addSeries stores n visible articles, newest first, ids prefix-00..
func addSeries(f *fixture, prefix string, n int, opts ...func(*models.Article)) []*models.Article {
	out := make([]*models.Article, 0, n)
	for i := 0; i < n; i++ {
		a := published(fmt.Sprintf("%s-%02d", prefix, i), i+1, opts...)
		out = append(out, a)
		f.store.Articles.Add(a)
	}
	return out
}

func ids(cards []models.ArticleCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func strPtr(s string) *string { return &s }
