package repository

import (
	"strings"
	"time"

	"github.com/media-site/internal/models"
)

// TZShift is the fixed offset between the site's local time and the
// stored timestamps. Articles dated up to now+TZShift are visible.
const TZShift = 5 * time.Hour

// VisiblePublicParams is the default set of public_params values shown in listings
var VisiblePublicParams = []int{0, 1}

// Order selects the ordering of a listing
type Order int

const (
	// OrderNone keeps store order, tie-broken by id so pages are stable
	OrderNone Order = iota
	OrderPublishedDesc
	OrderPublishedAsc
	OrderFixedAsc
)

// ArticleFilter describes a filtered article set. Zero values disable a condition.
type ArticleFilter struct {
	ID              string
	Alias           string
	Status          models.ArticleStatus
	ExcludeStatus   models.ArticleStatus
	PublishedBefore time.Time
	PublicParams    []int
	CategoryIDs     []string
	CategorySlug    string
	TagSlug         string
	AuthorID        string
	TitleContains   string
	ExcludeIDs      []string
	ExcludeAlias    string
	FixedOnly       bool
	FixedOrderMin   int
	FixedOrderMax   int
	WithContent     bool
	Order           Order
}

// Visible is the common visibility predicate: published, dated no later
// than now plus the site offset, and public_params in {0, 1}.
func Visible(now time.Time) ArticleFilter {
	return ArticleFilter{
		Status:          models.ArticleStatusPublished,
		PublishedBefore: now.Add(TZShift),
		PublicParams:    VisiblePublicParams,
		Order:           OrderPublishedDesc,
	}
}

// VisibleHome narrows Visible to public_params == 0, used by home page blocks
func VisibleHome(now time.Time) ArticleFilter {
	f := Visible(now)
	f.PublicParams = []int{0}
	return f
}

// Published is the status and date predicate without the public_params restriction
func Published(now time.Time) ArticleFilter {
	f := Visible(now)
	f.PublicParams = nil
	return f
}

// Match evaluates the filter against a fully hydrated article in memory
func (f ArticleFilter) Match(a *models.Article) bool {
	if f.ID != "" && a.ID != f.ID {
		return false
	}
	if f.Alias != "" && a.Alias != f.Alias {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.ExcludeStatus != "" && a.Status == f.ExcludeStatus {
		return false
	}
	if !f.PublishedBefore.IsZero() {
		if a.PublishedDate == nil || a.PublishedDate.After(f.PublishedBefore) {
			return false
		}
	}
	if f.PublicParams != nil && !containsInt(f.PublicParams, a.PublicParams) {
		return false
	}
	if f.CategoryIDs != nil && !hasCategory(a, func(c *models.Category) bool { return containsString(f.CategoryIDs, c.ID) }) {
		return false
	}
	if f.CategorySlug != "" && !hasCategory(a, func(c *models.Category) bool { return c.Slug == f.CategorySlug }) {
		return false
	}
	if f.TagSlug != "" && !hasTag(a, f.TagSlug) {
		return false
	}
	if f.AuthorID != "" && !a.HasAuthor(f.AuthorID) {
		return false
	}
	if f.TitleContains != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.TitleContains)) {
		return false
	}
	if containsString(f.ExcludeIDs, a.ID) {
		return false
	}
	if f.ExcludeAlias != "" && a.Alias == f.ExcludeAlias {
		return false
	}
	if f.FixedOnly || f.FixedOrderMin > 0 || f.FixedOrderMax > 0 {
		if a.FixedOrder == nil {
			return false
		}
		if f.FixedOrderMin > 0 && *a.FixedOrder < f.FixedOrderMin {
			return false
		}
		if f.FixedOrderMax > 0 && *a.FixedOrder > f.FixedOrderMax {
			return false
		}
	}
	return true
}

// PodcastFilter describes a filtered podcast set
type PodcastFilter struct {
	Alias           string
	ExcludeAlias    string
	CategoryTitle   string
	PublishedBefore time.Time // inclusive
	PublishedAfter  time.Time // exclusive
	PublishedUntil  time.Time // exclusive
	Order           Order
}

// VisiblePodcasts returns podcasts dated no later than now plus the site offset
func VisiblePodcasts(now time.Time) PodcastFilter {
	return PodcastFilter{
		PublishedBefore: now.Add(TZShift),
		Order:           OrderPublishedDesc,
	}
}

// Match evaluates the filter against a podcast in memory
func (f PodcastFilter) Match(p *models.Podcast) bool {
	if f.Alias != "" && p.Alias != f.Alias {
		return false
	}
	if f.ExcludeAlias != "" && p.Alias == f.ExcludeAlias {
		return false
	}
	if f.CategoryTitle != "" && p.CategoryTitle != f.CategoryTitle {
		return false
	}
	dated := !f.PublishedBefore.IsZero() || !f.PublishedAfter.IsZero() || !f.PublishedUntil.IsZero()
	if dated && p.PublishedDate == nil {
		return false
	}
	if !f.PublishedBefore.IsZero() && p.PublishedDate.After(f.PublishedBefore) {
		return false
	}
	if !f.PublishedAfter.IsZero() && !p.PublishedDate.After(f.PublishedAfter) {
		return false
	}
	if !f.PublishedUntil.IsZero() && !p.PublishedDate.Before(f.PublishedUntil) {
		return false
	}
	return true
}

func hasCategory(a *models.Article, pred func(*models.Category) bool) bool {
	for _, c := range a.Categories {
		if pred(c) {
			return true
		}
	}
	return false
}

func hasTag(a *models.Article, slug string) bool {
	for _, t := range a.Tags {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, i := range values {
		if i == v {
			return true
		}
	}
	return false
}
