package service

import (
	"github.com/media-site/internal/amp"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/pagination"
)

// Page sizes fixed per surface
const (
	HomeLatestLimit      = 20
	LoadMorePerPage      = 9
	LoadMoreFirstSlot    = 7
	BaseFixedLimit       = 5
	BaseLatestLimit      = 6
	ParentCategorySize   = 24
	ChildCategoryPerPage = 10
	TagPerPage           = 18
	AuthorPerPage        = 10
	SearchPerPage        = 6
	AllNewsPerPage       = 10
	FallbackLimit        = 6
	RelatedLimit         = 5
	PreviewLatestLimit   = 5
	PodcastsLimit        = 5

	// SortByDate is the search sort value for publication date order, also the default
	SortByDate = "data"

	contentTypeArticles = "articles"
	contentTypePodcasts = "podcasts"
)

// Home page fixed slots
const (
	mainSlot          = 1
	lastSecondarySlot = 3
	lastThirdSlot     = 6
)

// HomeContext is the home page
type HomeContext struct {
	MainArticle       *models.ArticleCard  `json:"main_article"`
	SecondaryArticles []models.ArticleCard `json:"secondary_articles"`
	ThirdArticles     []models.ArticleCard `json:"third_articles"`
	LatestArticles    []models.ArticleCard `json:"latest_articles"`
	Sections          []HomeSection        `json:"sections"`
}

// HomeSection is one category block of the home page
type HomeSection struct {
	Key      string               `json:"key"`
	Category *models.Category     `json:"category"`
	Featured *models.ArticleCard  `json:"featured,omitempty"`
	Articles []models.ArticleCard `json:"articles"`
}

// LoadMoreContext is one batch of the home page's pinned feed
type LoadMoreContext struct {
	Page     int                  `json:"page"`
	Articles []models.ArticleCard `json:"articles"`
}

// BaseContext feeds the shared layout
type BaseContext struct {
	Title          string               `json:"title"`
	FixedArticles  []models.ArticleCard `json:"fixed_articles"`
	LatestArticles []models.ArticleCard `json:"latest_articles"`
	Year           int                  `json:"year"`
	PrevYear       int                  `json:"prev_year"`
	PrevPrevYear   int                  `json:"prev_prev_year"`
}

// CategoryBands splits one parent-category page into its display blocks
type CategoryBands struct {
	FeaturedTop    *models.ArticleCard  `json:"featured_top"`
	FirstList      []models.ArticleCard `json:"first_list"`
	CardsList      []models.ArticleCard `json:"cards_list"`
	FeaturedBottom *models.ArticleCard  `json:"featured_bottom"`
	LastList       []models.ArticleCard `json:"last_list"`
}

// CategoryContext is a category page
type CategoryContext struct {
	Category         *models.Category                     `json:"category"`
	IsParentCategory bool                                 `json:"is_parent_category"`
	Subcategories    []*models.Category                   `json:"subcategories"`
	Bands            *CategoryBands                       `json:"bands,omitempty"`
	Page             *pagination.Page[models.ArticleCard] `json:"page"`
}

// TagContext is a tag page
type TagContext struct {
	Tag  *models.Tag                          `json:"tag"`
	Page *pagination.Page[models.ArticleCard] `json:"page"`
}

// AuthorContext is an author's article feed
type AuthorContext struct {
	Author      *models.Author                       `json:"author"`
	Page        *pagination.Page[models.ArticleCard] `json:"page"`
	ContentType string                               `json:"content_type"`
}

// AuthorsContext is the author directory
type AuthorsContext struct {
	Authors []*models.Author `json:"authors"`
	Page    int              `json:"page"`
	Pages   int              `json:"pages"`
	Query   string           `json:"q"`
}

// SearchContext is a search results page
type SearchContext struct {
	Query      string                               `json:"q"`
	Sort       string                               `json:"sort"`
	Total      int                                  `json:"total"`
	PageNumber int                                  `json:"page_number"`
	Page       *pagination.Page[models.ArticleCard] `json:"page"`
}

// AllNewsContext is the chronological feed of all articles
type AllNewsContext struct {
	Page *pagination.Page[models.ArticleCard] `json:"page"`
}

// FallbackContext populates error pages
type FallbackContext struct {
	Articles []models.ArticleCard `json:"articles"`
}

// ArticleContext is an article detail page
type ArticleContext struct {
	Article         *models.Article      `json:"article"`
	BadgeCategory   string               `json:"badge_category"`
	Authors         []*models.Author     `json:"authors"`
	RelatedArticles []models.ArticleCard `json:"related_articles"`
	ContentType     string               `json:"content_type"`
}

// PreviewContext is an editorial preview of an unpublished article
type PreviewContext struct {
	ArticleContext
	LatestArticles []models.ArticleCard `json:"latest_articles"`
}

// AMPContext is the AMP rendition of an article
type AMPContext struct {
	ArticleContext
	Content    string       `json:"content"`
	AMPScripts []amp.Script `json:"amp_scripts"`
}

// PodcastsContext lists the latest podcasts
type PodcastsContext struct {
	Podcasts []*models.Podcast `json:"podcasts"`
}

// PodcastContext is a podcast detail page
type PodcastContext struct {
	Podcast         *models.Podcast   `json:"podcast"`
	Authors         []*models.Author  `json:"authors"`
	RelatedPodcasts []*models.Podcast `json:"related_podcasts"`
	NextPodcast     *models.Podcast   `json:"next_podcast"`
	PrevPodcast     *models.Podcast   `json:"prev_podcast"`
	ContentType     string            `json:"content_type"`
}
