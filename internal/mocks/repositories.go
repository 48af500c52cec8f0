package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/media-site/internal/models"
	"github.com/media-site/internal/repository"
)

// MockArticleRepository is an in-memory ArticleRepository evaluating
// filters with ArticleFilter.Match
type MockArticleRepository struct {
	mu         sync.RWMutex
	Articles   []*models.Article
	FindError  error
	CountError error
	FindCalls  int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make([]*models.Article, 0)}
}

// Add stores articles
func (m *MockArticleRepository) Add(articles ...*models.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Articles = append(m.Articles, articles...)
}

func (m *MockArticleRepository) match(f repository.ArticleFilter) []*models.Article {
	matched := make([]*models.Article, 0)
	for _, a := range m.Articles {
		if f.Match(a) {
			matched = append(matched, a)
		}
	}
	sortArticles(matched, f.Order)
	return matched
}

func (m *MockArticleRepository) Find(ctx context.Context, f repository.ArticleFilter, offset, limit int) ([]*models.Article, error) {
	m.mu.Lock()
	m.FindCalls++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindError != nil {
		return nil, m.FindError
	}
	return window(m.match(f), offset, limit), nil
}

func (m *MockArticleRepository) Count(ctx context.Context, f repository.ArticleFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.match(f)), nil
}

func (m *MockArticleRepository) Get(ctx context.Context, f repository.ArticleFilter) (*models.Article, error) {
	found, err := m.Find(ctx, f, 0, 1)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

func sortArticles(articles []*models.Article, order repository.Order) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		switch order {
		case repository.OrderPublishedDesc:
			if less, decided := compareDates(a.PublishedDate, b.PublishedDate, true); decided {
				return less
			}
		case repository.OrderPublishedAsc:
			if less, decided := compareDates(a.PublishedDate, b.PublishedDate, false); decided {
				return less
			}
		case repository.OrderFixedAsc:
			if a.FixedOrder != nil && b.FixedOrder != nil && *a.FixedOrder != *b.FixedOrder {
				return *a.FixedOrder < *b.FixedOrder
			}
		}
		return a.ID < b.ID
	})
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// MockCategoryRepository is an in-memory CategoryRepository. Children are
// recomputed from ParentCategoryID on every lookup.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	Categories map[string]*models.Category
	GetError   error
}

// Verify interface compliance
var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*models.Category)}
}

// Add stores categories by slug
func (m *MockCategoryRepository) Add(categories ...*models.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range categories {
		m.Categories[c.Slug] = c
	}
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, ok := m.Categories[slug]
	if !ok {
		return nil, nil
	}

	out := *c
	out.Children = make([]*models.Category, 0)
	for _, child := range m.Categories {
		if child.ParentCategoryID != nil && *child.ParentCategoryID == c.ID {
			out.Children = append(out.Children, child)
		}
	}
	sort.Slice(out.Children, func(i, j int) bool { return out.Children[i].Title < out.Children[j].Title })
	return &out, nil
}

// MockTagRepository is an in-memory TagRepository
type MockTagRepository struct {
	mu   sync.RWMutex
	Tags map[string]*models.Tag
}

// Verify interface compliance
var _ repository.TagRepository = (*MockTagRepository)(nil)

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{Tags: make(map[string]*models.Tag)}
}

// Add stores tags by slug
func (m *MockTagRepository) Add(tags ...*models.Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tags {
		m.Tags[t.Slug] = t
	}
}

func (m *MockTagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Tags[slug], nil
}

// MockPodcastRepository is an in-memory PodcastRepository
type MockPodcastRepository struct {
	mu       sync.RWMutex
	Podcasts []*models.Podcast
	GetCalls int
}

// Verify interface compliance
var _ repository.PodcastRepository = (*MockPodcastRepository)(nil)

func NewMockPodcastRepository() *MockPodcastRepository {
	return &MockPodcastRepository{Podcasts: make([]*models.Podcast, 0)}
}

// Add stores podcasts
func (m *MockPodcastRepository) Add(podcasts ...*models.Podcast) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Podcasts = append(m.Podcasts, podcasts...)
}

func (m *MockPodcastRepository) Find(ctx context.Context, f repository.PodcastFilter, limit int) ([]*models.Podcast, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*models.Podcast, 0)
	for _, p := range m.Podcasts {
		if f.Match(p) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch f.Order {
		case repository.OrderPublishedDesc:
			if less, decided := compareDates(a.PublishedDate, b.PublishedDate, true); decided {
				return less
			}
		case repository.OrderPublishedAsc:
			if less, decided := compareDates(a.PublishedDate, b.PublishedDate, false); decided {
				return less
			}
		}
		return a.ID < b.ID
	})
	return window(matched, 0, limit), nil
}

func (m *MockPodcastRepository) Get(ctx context.Context, f repository.PodcastFilter) (*models.Podcast, error) {
	m.mu.Lock()
	m.GetCalls++
	m.mu.Unlock()

	found, err := m.Find(ctx, f, 1)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// NewRepositories bundles in-memory repositories
func NewRepositories() (*repository.Repositories, *Store) {
	s := &Store{
		Articles:   NewMockArticleRepository(),
		Categories: NewMockCategoryRepository(),
		Tags:       NewMockTagRepository(),
		Podcasts:   NewMockPodcastRepository(),
	}
	return &repository.Repositories{
		Article:  s.Articles,
		Category: s.Categories,
		Tag:      s.Tags,
		Podcast:  s.Podcasts,
	}, s
}

// Store gives tests typed access to the in-memory repositories
type Store struct {
	Articles   *MockArticleRepository
	Categories *MockCategoryRepository
	Tags       *MockTagRepository
	Podcasts   *MockPodcastRepository
}
