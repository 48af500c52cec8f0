package mocks

import (
	"context"

	"github.com/media-site/internal/models"
	"github.com/media-site/internal/pagination"
	"github.com/media-site/internal/service"
)

// MockListingService is a mock implementation of ListingService. Unset
// funcs return empty contexts.
type MockListingService struct {
	HomeFunc     func(ctx context.Context) (*service.HomeContext, error)
	CategoryFunc func(ctx context.Context, slug string, page int) (*service.CategoryContext, error)
	TagFunc      func(ctx context.Context, slug string, page int) (*service.TagContext, error)
	AuthorFunc   func(ctx context.Context, id string, page int) (*service.AuthorContext, error)
	SearchFunc   func(ctx context.Context, q string, page int, sort string) (*service.SearchContext, error)
	FallbackFunc func(ctx context.Context) (*service.FallbackContext, error)
	Calls        map[string]int
}

// Verify interface compliance
var _ service.ListingService = (*MockListingService)(nil)

func NewMockListingService() *MockListingService {
	return &MockListingService{Calls: make(map[string]int)}
}

func emptyPage(page, perPage int) *pagination.Page[models.ArticleCard] {
	return &pagination.Page[models.ArticleCard]{Page: page, PerPage: perPage, Items: []models.ArticleCard{}}
}

func (m *MockListingService) Home(ctx context.Context) (*service.HomeContext, error) {
	m.Calls["home"]++
	if m.HomeFunc != nil {
		return m.HomeFunc(ctx)
	}
	return &service.HomeContext{}, nil
}

func (m *MockListingService) LoadMore(ctx context.Context, page int) (*service.LoadMoreContext, error) {
	m.Calls["load_more"]++
	return &service.LoadMoreContext{Page: page, Articles: []models.ArticleCard{}}, nil
}

func (m *MockListingService) Base(ctx context.Context, title string, year int) (*service.BaseContext, error) {
	m.Calls["base"]++
	return &service.BaseContext{Title: title, Year: year, PrevYear: year - 1, PrevPrevYear: year - 2}, nil
}

func (m *MockListingService) Category(ctx context.Context, slug string, page int) (*service.CategoryContext, error) {
	m.Calls["category"]++
	if m.CategoryFunc != nil {
		return m.CategoryFunc(ctx, slug, page)
	}
	return &service.CategoryContext{Category: &models.Category{Slug: slug}, Page: emptyPage(page, service.ChildCategoryPerPage)}, nil
}

func (m *MockListingService) Tag(ctx context.Context, slug string, page int) (*service.TagContext, error) {
	m.Calls["tag"]++
	if m.TagFunc != nil {
		return m.TagFunc(ctx, slug, page)
	}
	return &service.TagContext{Tag: &models.Tag{Slug: slug}, Page: emptyPage(page, service.TagPerPage)}, nil
}

func (m *MockListingService) Author(ctx context.Context, id string, page int) (*service.AuthorContext, error) {
	m.Calls["author"]++
	if m.AuthorFunc != nil {
		return m.AuthorFunc(ctx, id, page)
	}
	return &service.AuthorContext{Author: &models.Author{ID: id}, Page: emptyPage(page, service.AuthorPerPage)}, nil
}

func (m *MockListingService) Authors(ctx context.Context, page int, q string) (*service.AuthorsContext, error) {
	m.Calls["authors"]++
	return &service.AuthorsContext{Authors: []*models.Author{}, Page: page, Query: q}, nil
}

func (m *MockListingService) Search(ctx context.Context, q string, page int, sort string) (*service.SearchContext, error) {
	m.Calls["search"]++
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q, page, sort)
	}
	return &service.SearchContext{Query: q, Sort: sort, PageNumber: page, Page: emptyPage(page, service.SearchPerPage)}, nil
}

func (m *MockListingService) AllNews(ctx context.Context, page int) (*service.AllNewsContext, error) {
	m.Calls["all_news"]++
	return &service.AllNewsContext{Page: emptyPage(page, service.AllNewsPerPage)}, nil
}

func (m *MockListingService) Fallback(ctx context.Context) (*service.FallbackContext, error) {
	m.Calls["fallback"]++
	if m.FallbackFunc != nil {
		return m.FallbackFunc(ctx)
	}
	return &service.FallbackContext{Articles: []models.ArticleCard{}}, nil
}

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	ArticleFunc func(ctx context.Context, slug string) (*service.ArticleContext, error)
	PreviewFunc func(ctx context.Context, uid string) (*service.PreviewContext, error)
	AMPFunc     func(ctx context.Context, slug string) (*service.AMPContext, error)
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func (m *MockArticleService) Article(ctx context.Context, slug string) (*service.ArticleContext, error) {
	if m.ArticleFunc != nil {
		return m.ArticleFunc(ctx, slug)
	}
	return nil, service.ErrNotFound
}

func (m *MockArticleService) Preview(ctx context.Context, uid string) (*service.PreviewContext, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, uid)
	}
	return nil, service.ErrNotFound
}

func (m *MockArticleService) AMP(ctx context.Context, slug string) (*service.AMPContext, error) {
	if m.AMPFunc != nil {
		return m.AMPFunc(ctx, slug)
	}
	return nil, service.ErrNotFound
}

// MockPodcastService is a mock implementation of PodcastService
type MockPodcastService struct {
	PodcastFunc func(ctx context.Context, slug string) (*service.PodcastContext, error)
}

// Verify interface compliance
var _ service.PodcastService = (*MockPodcastService)(nil)

func (m *MockPodcastService) Podcasts(ctx context.Context) (*service.PodcastsContext, error) {
	return &service.PodcastsContext{Podcasts: []*models.Podcast{}}, nil
}

func (m *MockPodcastService) Podcast(ctx context.Context, slug string) (*service.PodcastContext, error) {
	if m.PodcastFunc != nil {
		return m.PodcastFunc(ctx, slug)
	}
	return nil, service.ErrNotFound
}
