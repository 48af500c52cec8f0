package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/media-site/internal/config"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/pagination"
	"github.com/media-site/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// homeQueryLimit caps concurrent store queries while composing the home page
const homeQueryLimit = 4

// listingService is the concrete implementation of ListingService
type listingService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	resolver   AuthorResolver
	sections   []config.HomeSection
	now        func() time.Time
	log        zerolog.Logger
}

func newListingService(repos *repository.Repositories, resolver AuthorResolver, opts Options, log zerolog.Logger) *listingService {
	return &listingService{
		articles:   repos.Article,
		categories: repos.Category,
		tags:       repos.Tag,
		resolver:   resolver,
		sections:   opts.HomeSections,
		now:        opts.Now,
		log:        log.With().Str("service", "listing").Logger(),
	}
}

// Home composes the pinned slots, the latest feed and the category sections
func (s *listingService) Home(ctx context.Context) (*HomeContext, error) {
	now := s.now()
	out := &HomeContext{
		SecondaryArticles: []models.ArticleCard{},
		ThirdArticles:     []models.ArticleCard{},
		Sections:          make([]HomeSection, len(s.sections)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(homeQueryLimit)

	g.Go(func() error {
		f := repository.VisibleHome(now)
		f.FixedOrderMin = mainSlot
		f.FixedOrderMax = lastThirdSlot
		f.Order = repository.OrderFixedAsc
		fixed, err := s.articles.Find(gctx, f, 0, lastThirdSlot)
		if err != nil {
			return fmt.Errorf("load fixed articles: %w", err)
		}
		for _, a := range fixed {
			if a.FixedOrder == nil {
				continue
			}
			card := models.NewArticleCard(a)
			switch slot := *a.FixedOrder; {
			case slot == mainSlot:
				out.MainArticle = &card
			case slot <= lastSecondarySlot:
				out.SecondaryArticles = append(out.SecondaryArticles, card)
			default:
				out.ThirdArticles = append(out.ThirdArticles, card)
			}
		}
		return nil
	})

	g.Go(func() error {
		latest, err := s.articles.Find(gctx, repository.VisibleHome(now), 0, HomeLatestLimit)
		if err != nil {
			return fmt.Errorf("load latest articles: %w", err)
		}
		out.LatestArticles = models.NewArticleCards(latest)
		return nil
	})

	for i, sec := range s.sections {
		i, sec := i, sec
		g.Go(func() error {
			block, err := s.homeSection(gctx, now, sec)
			if err != nil {
				return fmt.Errorf("load home section %s: %w", sec.Key, err)
			}
			out.Sections[i] = *block
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// homeSection loads one category block over the category and its active children
func (s *listingService) homeSection(ctx context.Context, now time.Time, sec config.HomeSection) (*HomeSection, error) {
	block := &HomeSection{Key: sec.Key, Articles: []models.ArticleCard{}}

	cat, err := s.categories.GetBySlug(ctx, sec.Slug)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		s.log.Debug().Str("slug", sec.Slug).Msg("Home section category not found")
		return block, nil
	}
	block.Category = cat

	f := repository.VisibleHome(now)
	f.CategoryIDs = cat.ScopeIDs()
	articles, err := s.articles.Find(ctx, f, 0, sec.Limit)
	if err != nil {
		return nil, err
	}

	cards := models.NewArticleCards(articles)
	if sec.Featured && len(cards) > 0 {
		block.Featured = &cards[0]
		cards = cards[1:]
	}
	block.Articles = cards
	return block, nil
}

// LoadMore returns the pinned articles after the home page slots, in slot order
func (s *listingService) LoadMore(ctx context.Context, page int) (*LoadMoreContext, error) {
	f := repository.VisibleHome(s.now())
	f.FixedOrderMin = LoadMoreFirstSlot
	f.Order = repository.OrderFixedAsc

	params := pagination.Params{Page: page, PerPage: LoadMorePerPage}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	articles, err := s.articles.Find(ctx, f, params.Offset(), params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("load more articles: %w", err)
	}
	return &LoadMoreContext{Page: page, Articles: models.NewArticleCards(articles)}, nil
}

// Base returns the data shared by every page layout. year 0 means the current year.
func (s *listingService) Base(ctx context.Context, title string, year int) (*BaseContext, error) {
	now := s.now()
	if year == 0 {
		year = now.Add(repository.TZShift).Year()
	}

	fixedFilter := repository.Visible(now)
	fixedFilter.FixedOnly = true
	fixedFilter.Order = repository.OrderFixedAsc
	fixed, err := s.articles.Find(ctx, fixedFilter, 0, BaseFixedLimit)
	if err != nil {
		return nil, fmt.Errorf("load fixed articles: %w", err)
	}

	latest, err := s.articles.Find(ctx, repository.Visible(now), 0, BaseLatestLimit)
	if err != nil {
		return nil, fmt.Errorf("load latest articles: %w", err)
	}

	return &BaseContext{
		Title:          title,
		FixedArticles:  models.NewArticleCards(fixed),
		LatestArticles: models.NewArticleCards(latest),
		Year:           year,
		PrevYear:       year - 1,
		PrevPrevYear:   year - 2,
	}, nil
}

// Category returns a category page. Parent categories list their own and
// their active children's articles 24 to a page, split into bands; child
// categories use a plain feed.
func (s *listingService) Category(ctx context.Context, slug string, page int) (*CategoryContext, error) {
	cat, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load category %s: %w", slug, err)
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	f := repository.Visible(s.now())
	f.CategoryIDs = cat.ScopeIDs()

	out := &CategoryContext{
		Category:         cat,
		IsParentCategory: cat.IsParent(),
		Subcategories:    []*models.Category{},
	}

	perPage := ChildCategoryPerPage
	if cat.IsParent() {
		perPage = ParentCategorySize
		out.Subcategories = cat.ActiveChildren()
	}

	p, err := s.paginateCards(ctx, f, page, perPage)
	if err != nil {
		return nil, err
	}
	out.Page = p
	if cat.IsParent() {
		bands := SliceBands(p.Items)
		out.Bands = &bands
	}
	return out, nil
}

// SliceBands splits a parent-category page by position: item 0 is the top
// feature, 1-9 the first list, 10-13 the cards, 14 the bottom feature and
// 15-23 the last list. Short pages leave the later bands empty.
func SliceBands(items []models.ArticleCard) CategoryBands {
	band := func(from, to int) []models.ArticleCard {
		if from >= len(items) {
			return []models.ArticleCard{}
		}
		if to > len(items) {
			to = len(items)
		}
		return items[from:to]
	}
	at := func(i int) *models.ArticleCard {
		if i >= len(items) {
			return nil
		}
		card := items[i]
		return &card
	}

	return CategoryBands{
		FeaturedTop:    at(0),
		FirstList:      band(1, 10),
		CardsList:      band(10, 14),
		FeaturedBottom: at(14),
		LastList:       band(15, ParentCategorySize),
	}
}

// Tag returns the articles carrying a tag
func (s *listingService) Tag(ctx context.Context, slug string, page int) (*TagContext, error) {
	tag, err := s.tags.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load tag %s: %w", slug, err)
	}
	if tag == nil {
		return nil, ErrNotFound
	}

	f := repository.Visible(s.now())
	f.TagSlug = tag.Slug

	p, err := s.paginateCards(ctx, f, page, TagPerPage)
	if err != nil {
		return nil, err
	}
	return &TagContext{Tag: tag, Page: p}, nil
}

// Author returns the articles written by an author of the user service
func (s *listingService) Author(ctx context.Context, id string, page int) (*AuthorContext, error) {
	author := s.resolver.Resolve(ctx, id)
	if author == nil {
		return nil, ErrNotFound
	}

	f := repository.Visible(s.now())
	f.AuthorID = author.ID

	p, err := s.paginateCards(ctx, f, page, AuthorPerPage)
	if err != nil {
		return nil, err
	}
	return &AuthorContext{Author: author, Page: p, ContentType: contentTypeArticles}, nil
}

// Authors returns a page of the author directory
func (s *listingService) Authors(ctx context.Context, page int, q string) (*AuthorsContext, error) {
	dir := s.resolver.List(ctx, page, q)
	return &AuthorsContext{
		Authors: dir.Authors,
		Page:    dir.Page,
		Pages:   dir.Pages,
		Query:   q,
	}, nil
}

// Search matches article titles case-insensitively, newest first. sort is
// echoed back to the page; SortByDate is the only ordering there is.
func (s *listingService) Search(ctx context.Context, q string, page int, sort string) (*SearchContext, error) {
	q = strings.TrimSpace(q)

	f := repository.Visible(s.now())
	f.TitleContains = q
	f.Order = repository.OrderPublishedDesc

	p, err := s.paginateCards(ctx, f, page, SearchPerPage)
	if err != nil {
		return nil, err
	}
	return &SearchContext{
		Query:      q,
		Sort:       sort,
		Total:      p.Total,
		PageNumber: page,
		Page:       p,
	}, nil
}

// AllNews is the chronological feed of every visible article
func (s *listingService) AllNews(ctx context.Context, page int) (*AllNewsContext, error) {
	p, err := s.paginateCards(ctx, repository.Visible(s.now()), page, AllNewsPerPage)
	if err != nil {
		return nil, err
	}
	return &AllNewsContext{Page: p}, nil
}

// Fallback returns the most recent articles for error pages
func (s *listingService) Fallback(ctx context.Context) (*FallbackContext, error) {
	articles, err := s.articles.Find(ctx, repository.Visible(s.now()), 0, FallbackLimit)
	if err != nil {
		return nil, fmt.Errorf("load fallback articles: %w", err)
	}
	return &FallbackContext{Articles: models.NewArticleCards(articles)}, nil
}

func (s *listingService) paginateCards(ctx context.Context, f repository.ArticleFilter, page, perPage int) (*pagination.Page[models.ArticleCard], error) {
	p, err := pagination.Paginate(ctx, pagination.Params{Page: page, PerPage: perPage}, repository.ArticleQuery(s.articles, f))
	if err != nil {
		return nil, err
	}
	return pagination.Map(p, models.NewArticleCard), nil
}
