package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/media-site/internal/service"
	"github.com/media-site/internal/validation"
	"github.com/rs/zerolog"
)

// PageHandler serves the site's pages as their JSON contexts
type PageHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(services *service.Services, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		services: services,
		log:      log.With().Str("handler", "pages").Logger(),
	}
}

func (h *PageHandler) render(c *gin.Context, page interface{}, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	page, err := h.services.Listing.Home(c.Request.Context())
	h.render(c, page, err)
}

// LoadMore handles GET /api/load-more
func (h *PageHandler) LoadMore(c *gin.Context) {
	v := validation.NewValidator()
	n := v.Page("page", c.Query("page"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.services.Listing.LoadMore(c.Request.Context(), n)
	h.render(c, page, err)
}

// Layout handles GET /layout/
func (h *PageHandler) Layout(c *gin.Context) {
	v := validation.NewValidator()
	year := v.Year("year", c.Query("year"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.services.Listing.Base(c.Request.Context(), c.Query("title"), year)
	h.render(c, page, err)
}

// AllNews handles GET /allnews/
func (h *PageHandler) AllNews(c *gin.Context) {
	v := validation.NewValidator()
	n := v.Page("page", c.Query("page"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.services.Listing.AllNews(c.Request.Context(), n)
	h.render(c, page, err)
}

// Search handles GET /search?q=&page=&s=. sort is accepted as an alias of s.
func (h *PageHandler) Search(c *gin.Context) {
	v := validation.NewValidator()
	q := v.Query("q", c.Query("q"))
	n := v.Page("page", c.Query("page"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	sort := c.Query("s")
	if sort == "" {
		sort = c.Query("sort")
	}

	page, err := h.services.Listing.Search(c.Request.Context(), q, n, sort)
	h.render(c, page, err)
}

// Category handles GET /category/:slug/
func (h *PageHandler) Category(c *gin.Context) {
	v := validation.NewValidator()
	n := v.Page("page", c.Query("page"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.services.Listing.Category(c.Request.Context(), c.Param("slug"), n)
	h.render(c, page, err)
}

// Tag handles GET /tag/:slug/
func (h *PageHandler) Tag(c *gin.Context) {
	v := validation.NewValidator()
	n := v.Page("page", c.Query("page"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.services.Listing.Tag(c.Request.Context(), c.Param("slug"), n)
	h.render(c, page, err)
}

// Authors handles GET /authors/?page=&q=
func (h *PageHandler) Authors(c *gin.Context) {
	v := validation.NewValidator()
	n := v.Page("page", c.Query("page"))
	q := v.Query("q", c.Query("q"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.services.Listing.Authors(c.Request.Context(), n, q)
	h.render(c, page, err)
}

// Author handles GET /authors/:slug/, where slug is the user id
func (h *PageHandler) Author(c *gin.Context) {
	v := validation.NewValidator()
	n := v.Page("page", c.Query("page"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.services.Listing.Author(c.Request.Context(), c.Param("slug"), n)
	h.render(c, page, err)
}

// Article handles GET /news/:slug/
func (h *PageHandler) Article(c *gin.Context) {
	page, err := h.services.Article.Article(c.Request.Context(), c.Param("slug"))
	h.render(c, page, err)
}

// Preview handles GET /preview/:uid/
func (h *PageHandler) Preview(c *gin.Context) {
	v := validation.NewValidator()
	uid := v.UUID("uid", c.Param("uid"))
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.services.Article.Preview(c.Request.Context(), uid)
	h.render(c, page, err)
}

// AMP handles GET /amp/:slug/
func (h *PageHandler) AMP(c *gin.Context) {
	page, err := h.services.Article.AMP(c.Request.Context(), c.Param("slug"))
	h.render(c, page, err)
}

// Podcasts handles GET /podcasts/
func (h *PageHandler) Podcasts(c *gin.Context) {
	page, err := h.services.Podcast.Podcasts(c.Request.Context())
	h.render(c, page, err)
}

// Podcast handles GET /podcasts/:slug/
func (h *PageHandler) Podcast(c *gin.Context) {
	page, err := h.services.Podcast.Podcast(c.Request.Context(), c.Param("slug"))
	h.render(c, page, err)
}

// NotFound renders the 404 page for unknown routes
func (h *PageHandler) NotFound(c *gin.Context) {
	h.fail(c, service.ErrNotFound)
}
