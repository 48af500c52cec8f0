package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/media-site/internal/models"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestWhereBuilder_Placeholders(t *testing.T) {
	w := &whereBuilder{}
	w.add("a.alias = ?", "x")
	w.add("a.published_date > ? AND a.published_date < ?", testNow, testNow.Add(time.Hour))
	w.add("f.\"order\" IS NOT NULL")
	limit := w.next(10)

	want := " WHERE a.alias = $1 AND a.published_date > $2 AND a.published_date < $3 AND f.\"order\" IS NOT NULL"
	if got := w.sql(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if limit != "$4" {
		t.Errorf("Expected $4 for the trailing parameter, got %s", limit)
	}
	if len(w.args) != 4 {
		t.Errorf("Expected 4 args, got %d", len(w.args))
	}
}

func TestWhereBuilder_Empty(t *testing.T) {
	w := &whereBuilder{}
	if w.sql() != "" {
		t.Errorf("Expected no WHERE clause, got %q", w.sql())
	}
}

func TestBuildArticleWhere_Visible(t *testing.T) {
	f := Visible(testNow)
	f.TagSlug = "economy"
	w := buildArticleWhere(f)
	sql := w.sql()

	for _, frag := range []string{
		"a.article_status = $1",
		"a.published_date <= $2",
		"a.public_params = ANY($3)",
		"t.slug = $4",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("Expected %q in %s", frag, sql)
		}
	}
	if w.args[0] != "P" {
		t.Errorf("Expected published status arg, got %v", w.args[0])
	}
	if got := w.args[1].(time.Time); !got.Equal(testNow.Add(5 * time.Hour)) {
		t.Errorf("Expected cutoff now+5h, got %v", got)
	}
}

func TestBuildArticleWhere_Search(t *testing.T) {
	f := ArticleFilter{TitleContains: "100%_growth", ExcludeIDs: []string{"a"}}
	w := buildArticleWhere(f)

	if !strings.Contains(w.sql(), "a.title ILIKE $1") {
		t.Errorf("Unexpected SQL %s", w.sql())
	}
	if w.args[0] != `%100\%\_growth%` {
		t.Errorf("Expected escaped pattern, got %v", w.args[0])
	}
	if !strings.Contains(w.sql(), "a.id <> ALL($2::uuid[])") {
		t.Errorf("Expected exclusion clause in %s", w.sql())
	}
}

func TestArticleOrderBy(t *testing.T) {
	tests := []struct {
		order Order
		want  string
	}{
		{OrderPublishedDesc, "a.published_date DESC"},
		{OrderPublishedAsc, "a.published_date ASC"},
		{OrderFixedAsc, "f.\"order\" ASC"},
		{OrderNone, " ORDER BY a.id"},
	}
	for _, tt := range tests {
		if got := articleOrderBy(tt.order); !strings.Contains(got, tt.want) {
			t.Errorf("Order %d: expected %q in %q", tt.order, tt.want, got)
		}
	}
}

func TestBuildPodcastWhere(t *testing.T) {
	f := VisiblePodcasts(testNow)
	f.PublishedAfter = testNow.Add(-time.Hour)
	f.CategoryTitle = "Talks"
	sql := buildPodcastWhere(f).sql()

	want := " WHERE p.category_title = $1 AND p.published_date <= $2 AND p.published_date > $3"
	if sql != want {
		t.Errorf("Expected %q, got %q", want, sql)
	}
}

func article(opts func(*models.Article)) *models.Article {
	date := testNow.Add(-time.Hour)
	a := &models.Article{
		ID:            "a1",
		Alias:         "a-one",
		Title:         "Курс тенге",
		Status:        models.ArticleStatusPublished,
		PublishedDate: &date,
		Categories:    []*models.Category{{ID: "c1", Slug: "economy"}},
		Tags:          []*models.Tag{{ID: "t1", Slug: "tenge"}},
		AuthorIDs:     []string{"u1"},
	}
	if opts != nil {
		opts(a)
	}
	return a
}

func TestArticleFilter_Match(t *testing.T) {
	later := testNow.Add(6 * time.Hour)
	soon := testNow.Add(4 * time.Hour)
	slot := 3

	tests := []struct {
		name   string
		filter ArticleFilter
		mutate func(*models.Article)
		want   bool
	}{
		{"visible", Visible(testNow), nil, true},
		{"draft", Visible(testNow), func(a *models.Article) { a.Status = models.ArticleStatusDraft }, false},
		{"within offset", Visible(testNow), func(a *models.Article) { a.PublishedDate = &soon }, true},
		{"beyond offset", Visible(testNow), func(a *models.Article) { a.PublishedDate = &later }, false},
		{"undated", Visible(testNow), func(a *models.Article) { a.PublishedDate = nil }, false},
		{"public params 1", Visible(testNow), func(a *models.Article) { a.PublicParams = 1 }, true},
		{"public params 2", Visible(testNow), func(a *models.Article) { a.PublicParams = 2 }, false},
		{"home excludes 1", VisibleHome(testNow), func(a *models.Article) { a.PublicParams = 1 }, false},
		{"published ignores params", Published(testNow), func(a *models.Article) { a.PublicParams = 2 }, true},
		{"category id", ArticleFilter{CategoryIDs: []string{"c9", "c1"}}, nil, true},
		{"other category", ArticleFilter{CategoryIDs: []string{"c9"}}, nil, false},
		{"category slug", ArticleFilter{CategorySlug: "economy"}, nil, true},
		{"tag", ArticleFilter{TagSlug: "tenge"}, nil, true},
		{"other tag", ArticleFilter{TagSlug: "oil"}, nil, false},
		{"author", ArticleFilter{AuthorID: "u1"}, nil, true},
		{"title case-insensitive", ArticleFilter{TitleContains: "ТЕНГЕ"}, nil, true},
		{"excluded id", ArticleFilter{ExcludeIDs: []string{"a1"}}, nil, false},
		{"excluded removed", ArticleFilter{ExcludeStatus: models.ArticleStatusRemoved}, func(a *models.Article) { a.Status = models.ArticleStatusRemoved }, false},
		{"fixed only without slot", ArticleFilter{FixedOnly: true}, nil, false},
		{"fixed in range", ArticleFilter{FixedOrderMin: 1, FixedOrderMax: 6}, func(a *models.Article) { a.FixedOrder = &slot }, true},
		{"fixed below min", ArticleFilter{FixedOrderMin: 7}, func(a *models.Article) { a.FixedOrder = &slot }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(article(tt.mutate)); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPodcastFilter_Match(t *testing.T) {
	date := testNow.Add(-time.Hour)
	p := &models.Podcast{ID: "p1", Alias: "ep-1", CategoryTitle: "Talks", PublishedDate: &date}

	tests := []struct {
		name   string
		filter PodcastFilter
		want   bool
	}{
		{"visible", VisiblePodcasts(testNow), true},
		{"alias", PodcastFilter{Alias: "ep-1"}, true},
		{"excluded alias", PodcastFilter{ExcludeAlias: "ep-1"}, false},
		{"category", PodcastFilter{CategoryTitle: "Business"}, false},
		{"after is exclusive", PodcastFilter{PublishedAfter: date}, false},
		{"until is exclusive", PodcastFilter{PublishedUntil: date}, false},
		{"until later", PodcastFilter{PublishedUntil: testNow}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(p); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
