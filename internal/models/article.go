package models

import (
	"time"
)

// ArticleStatus is the editorial status stored in news_article.article_status
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "D"
	ArticleStatusPublished ArticleStatus = "P"
	ArticleStatusRemoved   ArticleStatus = "R"
)

// DefaultBadgeTitle is shown when an article has no categories
const DefaultBadgeTitle = "Новости"

// Article represents a news article
type Article struct {
	ID            string        `json:"id" db:"id"`
	Title         string        `json:"title" db:"title"`
	Alias         string        `json:"alias" db:"alias"`
	Description   string        `json:"description" db:"description"`
	Content       string        `json:"content,omitempty" db:"content"`
	Image         JSONMap       `json:"image,omitempty" db:"image"`
	PublishedDate *time.Time    `json:"published_date,omitempty" db:"published_date"`
	UpdatedAt     *time.Time    `json:"datetime_updated,omitempty" db:"datetime_updated"`
	Status        ArticleStatus `json:"article_status" db:"article_status"`
	AuthorIDs     []string      `json:"author_ids" db:"author_ids"`
	PublicParams  int           `json:"public_params" db:"public_params"`
	PublicTypes   []string      `json:"public_types" db:"public_types"`
	Categories    []*Category   `json:"categories"`
	Tags          []*Tag        `json:"tags"`
	FixedOrder    *int          `json:"fixed_order,omitempty" db:"order"`
}

// BadgeCategory returns the title of the article's last category
func (a *Article) BadgeCategory() string {
	if len(a.Categories) == 0 || a.Categories[len(a.Categories)-1] == nil {
		return DefaultBadgeTitle
	}
	return a.Categories[len(a.Categories)-1].Title
}

// PublicTypeClass returns the first public type, used as a CSS badge class
func (a *Article) PublicTypeClass() string {
	if len(a.PublicTypes) == 0 {
		return ""
	}
	return a.PublicTypes[0]
}

// CategoryIDs returns the ids of the article's categories in order
func (a *Article) CategoryIDs() []string {
	ids := make([]string, 0, len(a.Categories))
	for _, c := range a.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// HasAuthor reports whether id is one of the article's authors
func (a *Article) HasAuthor(id string) bool {
	for _, authorID := range a.AuthorIDs {
		if authorID == id {
			return true
		}
	}
	return false
}

// ArticleCard is an article together with the values templates derive from it
type ArticleCard struct {
	*Article
	Badge           string `json:"badge_category"`
	PublicTypeClass string `json:"public_type_class"`
}

// NewArticleCards wraps articles with their precomputed badges
func NewArticleCards(articles []*Article) []ArticleCard {
	cards := make([]ArticleCard, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, NewArticleCard(a))
	}
	return cards
}

// NewArticleCard wraps a single article
func NewArticleCard(a *Article) ArticleCard {
	return ArticleCard{
		Article:         a,
		Badge:           a.BadgeCategory(),
		PublicTypeClass: a.PublicTypeClass(),
	}
}
