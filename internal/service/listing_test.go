package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/media-site/internal/config"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/service"
)

func TestAllNews_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	soon := published("soon", 0)
	inWindow := testNow.Add(4 * time.Hour)
	soon.PublishedDate = &inWindow

	future := published("future", 0)
	tooLate := testNow.Add(6 * time.Hour)
	future.PublishedDate = &tooLate

	f.store.Articles.Add(
		published("visible", 1),
		soon,
		future,
		published("draft", 1, withStatus(models.ArticleStatusDraft)),
		published("removed", 1, withStatus(models.ArticleStatusRemoved)),
		published("hidden", 1, withPublicParams(2)),
		published("secondary", 2, withPublicParams(1)),
	)

	ctxAll, err := f.svc.Listing.AllNews(ctx, 1)
	if err != nil {
		t.Fatalf("AllNews failed: %v", err)
	}

	got := ids(ctxAll.Page.Items)
	want := []string{"soon", "visible", "secondary"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestTag_PagesOf18(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	economy := &models.Tag{ID: "t1", Slug: "economy", Title: "Economy"}
	f.store.Tags.Add(economy)
	addSeries(f, "econ", 20, withTag(economy))
	addSeries(f, "other", 5)

	first, err := f.svc.Listing.Tag(ctx, "economy", 1)
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}
	if len(first.Page.Items) != 18 || !first.Page.HasNext || first.Page.Pages != 2 {
		t.Errorf("Page 1: expected 18 items, has_next, 2 pages; got %d, %v, %d",
			len(first.Page.Items), first.Page.HasNext, first.Page.Pages)
	}

	second, err := f.svc.Listing.Tag(ctx, "economy", 2)
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}
	if len(second.Page.Items) != 2 || second.Page.HasNext || !second.Page.HasPrevious {
		t.Errorf("Page 2: expected 2 items, no next, has previous; got %d, %v, %v",
			len(second.Page.Items), second.Page.HasNext, second.Page.HasPrevious)
	}

	beyond, err := f.svc.Listing.Tag(ctx, "economy", 5)
	if err != nil {
		t.Fatalf("Tag beyond last page failed: %v", err)
	}
	if len(beyond.Page.Items) != 0 || beyond.Page.Total != 20 || beyond.Page.Pages != 2 {
		t.Errorf("Beyond last page: expected 0 items, total 20, 2 pages; got %d, %d, %d",
			len(beyond.Page.Items), beyond.Page.Total, beyond.Page.Pages)
	}
}

func TestTag_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Listing.Tag(context.Background(), "missing", 1)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func parentWithChildren(f *fixture) (parent, active, inactive *models.Category) {
	parent = &models.Category{ID: "c-parent", Slug: "finance", Title: "Finance", IsActive: true}
	active = &models.Category{ID: "c-banks", Slug: "banks", Title: "Banks", IsActive: true, Level: 1, ParentCategoryID: strPtr(parent.ID)}
	inactive = &models.Category{ID: "c-old", Slug: "old", Title: "Old", IsActive: false, Level: 1, ParentCategoryID: strPtr(parent.ID)}
	f.store.Categories.Add(parent, active, inactive)
	return parent, active, inactive
}

func TestCategory_ParentBands(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, active, inactive := parentWithChildren(f)

	addSeries(f, "own", 16, inCategories(parent))
	addSeries(f, "child", 14, inCategories(parent, active))
	addSeries(f, "stale", 3, inCategories(inactive))

	got, err := f.svc.Listing.Category(ctx, "finance", 1)
	if err != nil {
		t.Fatalf("Category failed: %v", err)
	}
	if !got.IsParentCategory {
		t.Fatal("Expected parent category")
	}
	if len(got.Subcategories) != 1 || got.Subcategories[0].Slug != "banks" {
		t.Errorf("Expected only the active subcategory, got %d", len(got.Subcategories))
	}
	if got.Page.PerPage != 24 || got.Page.Total != 30 || len(got.Page.Items) != 24 {
		t.Fatalf("Expected 24 of 30 items, got per_page=%d total=%d items=%d",
			got.Page.PerPage, got.Page.Total, len(got.Page.Items))
	}

	b := got.Bands
	if b == nil || b.FeaturedTop == nil || b.FeaturedBottom == nil {
		t.Fatal("Expected both featured slots")
	}
	if len(b.FirstList) != 9 || len(b.CardsList) != 4 || len(b.LastList) != 9 {
		t.Errorf("Expected bands 9/4/9, got %d/%d/%d", len(b.FirstList), len(b.CardsList), len(b.LastList))
	}

	seen := map[string]bool{b.FeaturedTop.ID: true}
	if seen[b.FeaturedBottom.ID] {
		t.Error("Featured slots must differ")
	}
	seen[b.FeaturedBottom.ID] = true
	for _, list := range [][]models.ArticleCard{b.FirstList, b.CardsList, b.LastList} {
		for _, c := range list {
			if seen[c.ID] {
				t.Errorf("Article %s appears in more than one band", c.ID)
			}
			seen[c.ID] = true
		}
	}
	if len(seen) != 24 {
		t.Errorf("Expected 24 distinct articles across bands, got %d", len(seen))
	}

	for _, item := range got.Page.Items {
		if item.Badge == "" {
			t.Errorf("Article %s has no badge", item.ID)
		}
	}
}

func TestCategory_ParentShortPage(t *testing.T) {
	f := newFixture(t)
	parent, _, _ := parentWithChildren(f)
	addSeries(f, "own", 30, inCategories(parent))

	got, err := f.svc.Listing.Category(context.Background(), "finance", 2)
	if err != nil {
		t.Fatalf("Category failed: %v", err)
	}
	b := got.Bands
	if len(got.Page.Items) != 6 {
		t.Fatalf("Expected 6 items on page 2, got %d", len(got.Page.Items))
	}
	if b.FeaturedTop == nil || b.FeaturedTop.ID != "own-24" {
		t.Errorf("Expected own-24 on top, got %+v", b.FeaturedTop)
	}
	if len(b.FirstList) != 5 || len(b.CardsList) != 0 || b.FeaturedBottom != nil || len(b.LastList) != 0 {
		t.Errorf("Unexpected short bands: %d/%d/%v/%d", len(b.FirstList), len(b.CardsList), b.FeaturedBottom, len(b.LastList))
	}
}

func TestSliceBands_FirstListNeedsTenItems(t *testing.T) {
	for n := 0; n <= 24; n++ {
		items := make([]models.ArticleCard, n)
		for i := range items {
			items[i] = models.NewArticleCard(&models.Article{ID: string(rune('a' + i))})
		}
		b := service.SliceBands(items)
		if (len(b.FirstList) == 9) != (n >= 10) {
			t.Errorf("n=%d: first list has %d items", n, len(b.FirstList))
		}
		if (b.FeaturedTop != nil) != (n >= 1) {
			t.Errorf("n=%d: unexpected top feature", n)
		}
		if (b.FeaturedBottom != nil) != (n >= 15) {
			t.Errorf("n=%d: unexpected bottom feature", n)
		}
	}
}

func TestCategory_Child(t *testing.T) {
	f := newFixture(t)
	parent, active, _ := parentWithChildren(f)
	addSeries(f, "child", 12, inCategories(parent, active))
	addSeries(f, "own", 3, inCategories(parent))

	got, err := f.svc.Listing.Category(context.Background(), "banks", 1)
	if err != nil {
		t.Fatalf("Category failed: %v", err)
	}
	if got.IsParentCategory || got.Bands != nil {
		t.Error("Child category should have no bands")
	}
	if got.Page.PerPage != 10 || got.Page.Total != 12 || len(got.Page.Items) != 10 {
		t.Errorf("Expected 10 of 12, got per_page=%d total=%d items=%d", got.Page.PerPage, got.Page.Total, len(got.Page.Items))
	}
	if got.Page.Items[0].Badge != "Banks" {
		t.Errorf("Expected badge of last category, got %q", got.Page.Items[0].Badge)
	}
}

func TestCategory_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Listing.Category(context.Background(), "nope", 1)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCategory_StoreErrorPropagates(t *testing.T) {
	f := newFixture(t)
	parentWithChildren(f)
	f.store.Articles.CountError = errors.New("connection refused")

	_, err := f.svc.Listing.Category(context.Background(), "finance", 1)
	if err == nil || errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected store error, got %v", err)
	}
}

func TestHome(t *testing.T) {
	economy := &models.Category{ID: "c-econ", Slug: "economy", Title: "Economy", IsActive: true}
	markets := &models.Category{ID: "c-markets", Slug: "markets", Title: "Markets", IsActive: true, ParentCategoryID: strPtr("c-econ")}
	opinion := &models.Category{ID: "c-op", Slug: "opinion", Title: "Opinion", IsActive: true}

	f := newFixture(t,
		config.HomeSection{Key: "economy", Slug: "economy", Limit: 4, Featured: true},
		config.HomeSection{Key: "opinion", Slug: "opinion", Limit: 3},
		config.HomeSection{Key: "missing", Slug: "missing", Limit: 3},
	)
	f.store.Categories.Add(economy, markets, opinion)

	for slot := 1; slot <= 8; slot++ {
		f.store.Articles.Add(published("fixed-"+string(rune('0'+slot)), 50+slot, fixedAt(slot)))
	}
	f.store.Articles.Add(published("fixed-hidden", 40, fixedAt(9), withPublicParams(1)))
	addSeries(f, "news", 25)
	addSeries(f, "market", 3, inCategories(economy, markets))
	addSeries(f, "op", 5, inCategories(opinion))

	home, err := f.svc.Listing.Home(context.Background())
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}

	if home.MainArticle == nil || home.MainArticle.ID != "fixed-1" {
		t.Errorf("Expected fixed-1 as main, got %+v", home.MainArticle)
	}
	if got := ids(home.SecondaryArticles); len(got) != 2 || got[0] != "fixed-2" || got[1] != "fixed-3" {
		t.Errorf("Expected slots 2-3 as secondary, got %v", got)
	}
	if got := ids(home.ThirdArticles); len(got) != 3 || got[0] != "fixed-4" || got[2] != "fixed-6" {
		t.Errorf("Expected slots 4-6 as third, got %v", got)
	}
	if len(home.LatestArticles) != 20 {
		t.Errorf("Expected 20 latest, got %d", len(home.LatestArticles))
	}

	if len(home.Sections) != 3 {
		t.Fatalf("Expected 3 sections, got %d", len(home.Sections))
	}
	econ := home.Sections[0]
	if econ.Featured == nil || econ.Featured.ID != "market-00" {
		t.Errorf("Expected newest market article featured, got %+v", econ.Featured)
	}
	if len(econ.Articles) != 2 {
		t.Errorf("Expected the rest of the 3 scoped articles, got %d", len(econ.Articles))
	}
	if op := home.Sections[1]; op.Featured != nil || len(op.Articles) != 3 {
		t.Errorf("Expected 3 unfeatured opinion articles, got featured=%v n=%d", op.Featured, len(op.Articles))
	}
	if missing := home.Sections[2]; missing.Category != nil || len(missing.Articles) != 0 {
		t.Error("Unknown section category should yield an empty block")
	}
}

func TestLoadMore(t *testing.T) {
	f := newFixture(t)
	for slot := 1; slot <= 20; slot++ {
		f.store.Articles.Add(published("slot-"+string(rune('a'+slot)), slot, fixedAt(slot)))
	}

	first, err := f.svc.Listing.LoadMore(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if len(first.Articles) != 9 {
		t.Fatalf("Expected 9 articles, got %d", len(first.Articles))
	}
	if *first.Articles[0].FixedOrder != service.LoadMoreFirstSlot {
		t.Errorf("Expected to start at slot %d, got %d", service.LoadMoreFirstSlot, *first.Articles[0].FixedOrder)
	}

	second, err := f.svc.Listing.LoadMore(context.Background(), 2)
	if err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if len(second.Articles) != 5 || *second.Articles[0].FixedOrder != 16 {
		t.Errorf("Expected slots 16-20 on page 2, got %d items", len(second.Articles))
	}
}

func TestBase(t *testing.T) {
	f := newFixture(t)
	for slot := 1; slot <= 7; slot++ {
		f.store.Articles.Add(published("pin-"+string(rune('0'+slot)), slot, fixedAt(slot)))
	}
	addSeries(f, "news", 8)

	base, err := f.svc.Listing.Base(context.Background(), "Home", 0)
	if err != nil {
		t.Fatalf("Base failed: %v", err)
	}
	if len(base.FixedArticles) != 5 || base.FixedArticles[0].ID != "pin-1" {
		t.Errorf("Expected 5 pinned starting at pin-1, got %v", ids(base.FixedArticles))
	}
	if len(base.LatestArticles) != 6 {
		t.Errorf("Expected 6 latest, got %d", len(base.LatestArticles))
	}
	if base.Year != 2024 || base.PrevYear != 2023 || base.PrevPrevYear != 2022 {
		t.Errorf("Unexpected years %d/%d/%d", base.Year, base.PrevYear, base.PrevPrevYear)
	}
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Articles.Add(
		published("b", 3, titled("Инфляция замедлилась")),
		published("a", 1, titled("Рост ИНФЛЯЦИИ в регионах")),
		published("c", 2, titled("Курс тенге")),
		published("d", 4, titled("инфляция и ставки"), withStatus(models.ArticleStatusDraft)),
	)
	addSeries(f, "bulk", 8, titled("Инфляционные ожидания"))

	res, err := f.svc.Listing.Search(ctx, "  инфляц ", 1, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Total != 10 || len(res.Page.Items) != 6 || res.Page.Pages != 2 {
		t.Errorf("Expected 6 of 10 in 2 pages, got %d of %d in %d", len(res.Page.Items), res.Total, res.Page.Pages)
	}
	if res.Query != "инфляц" {
		t.Errorf("Expected trimmed query, got %q", res.Query)
	}
	if got := res.Page.Items[0].ID; got != "a" {
		t.Errorf("Expected newest match first without a sort, got %s", got)
	}

	sorted, err := f.svc.Listing.Search(ctx, "инфляц", 1, service.SortByDate)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if got := sorted.Page.Items[0].ID; got != "a" {
		t.Errorf("Expected newest match first with date sort, got %s", got)
	}
	for i := 1; i < len(sorted.Page.Items); i++ {
		if sorted.Page.Items[i].PublishedDate.After(*sorted.Page.Items[i-1].PublishedDate) {
			t.Errorf("Results not in date order at %d", i)
		}
	}
}

func TestSearch_DefaultsToNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.store.Articles.Add(
		published("a-oldest", 50, titled("Inflation slows")),
		published("z-newest", 1, titled("Inflation rises")),
		published("m-middle", 10, titled("Inflation report")),
	)

	res, err := f.svc.Listing.Search(context.Background(), "inflation", 1, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	want := []string{"z-newest", "m-middle", "a-oldest"}
	got := ids(res.Page.Items)
	if len(got) != len(want) {
		t.Fatalf("Expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.users.Directory["u1"] = &models.Author{ID: "u1", FirstName: "Aida", LastName: "Nurlanova"}
	addSeries(f, "mine", 12, byAuthors("u2", "u1"))
	addSeries(f, "theirs", 4, byAuthors("u2"))

	got, err := f.svc.Listing.Author(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("Author failed: %v", err)
	}
	if got.Author.FullName() != "Aida Nurlanova" {
		t.Errorf("Unexpected author %q", got.Author.FullName())
	}
	if got.Page.Total != 12 || len(got.Page.Items) != 2 {
		t.Errorf("Expected 2 of 12 on page 2, got %d of %d", len(got.Page.Items), got.Page.Total)
	}

	_, err = f.svc.Listing.Author(ctx, "ghost", 1)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown author, got %v", err)
	}

	f.users.Fail["u1"] = true
	_, err = f.svc.Listing.Author(ctx, "u1", 1)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound when the user service fails, got %v", err)
	}
}

func TestAuthors(t *testing.T) {
	f := newFixture(t)
	f.users.Directory["u1"] = &models.Author{ID: "u1", FirstName: "Aida", LastName: "Nurlanova"}
	f.users.Directory["u2"] = &models.Author{ID: "u2", FirstName: "Timur", LastName: "Ospanov"}

	got, err := f.svc.Listing.Authors(context.Background(), 1, "ospanov")
	if err != nil {
		t.Fatalf("Authors failed: %v", err)
	}
	if len(got.Authors) != 1 || got.Authors[0].ID != "u2" {
		t.Errorf("Expected only u2, got %d authors", len(got.Authors))
	}
	if got.Pages != 1 {
		t.Errorf("Expected 1 page, got %d", got.Pages)
	}
}

func TestFallback(t *testing.T) {
	f := newFixture(t)
	addSeries(f, "news", 9)
	f.store.Articles.Add(published("draft", 0, withStatus(models.ArticleStatusDraft)))

	got, err := f.svc.Listing.Fallback(context.Background())
	if err != nil {
		t.Fatalf("Fallback failed: %v", err)
	}
	if len(got.Articles) != 6 || got.Articles[0].ID != "news-00" {
		t.Errorf("Expected the 6 newest visible, got %v", ids(got.Articles))
	}
}
