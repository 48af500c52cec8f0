package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/media-site/internal/cache"
	"github.com/media-site/internal/config"
	"github.com/media-site/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Response cache key prefixes
const (
	prefixIndex    = "index_page"
	prefixCategory = "category_page"
	prefixTag      = "tag_page"
	prefixAuthors  = "authors_page"
	prefixAuthor   = "author_page"
)

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. store backs the
// response cache; a nil store disables response caching. db may be nil.
func NewRouter(services *service.Services, cfg *config.Config, store cache.Store, db HealthChecker, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("Invalid trusted proxies, forwarding headers ignored")
		_ = router.SetTrustedProxies(nil)
	}

	pages := NewPageHandler(services, log)

	// Middleware
	router.Use(recoveryMiddleware(pages, log))
	router.Use(requestIDMiddleware())
	router.Use(processTimeMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware())
	if cfg.RateLimit.RPS > 0 {
		router.Use(rateLimitMiddleware(newIPLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.MaxClients)))
	}

	cached := func(prefix string) gin.HandlerFunc {
		return responseCacheMiddleware(store, prefix, cfg.Cache.ResponseTTL, log)
	}

	// Health check
	router.GET("/health", healthCheck(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", cached(prefixIndex), pages.Index)
	router.GET("/api/load-more", pages.LoadMore)
	router.GET("/layout/", pages.Layout)
	router.GET("/allnews/", pages.AllNews)
	router.GET("/search", pages.Search)

	router.GET("/news/:slug/", pages.Article)
	router.GET("/preview/:uid/", pages.Preview)
	router.GET("/amp/:slug/", pages.AMP)

	router.GET("/category/:slug/", cached(prefixCategory), pages.Category)
	router.GET("/tag/:slug/", cached(prefixTag), pages.Tag)

	router.GET("/authors/", cached(prefixAuthors), pages.Authors)
	router.GET("/authors/:slug/", cached(prefixAuthor), pages.Author)
	router.GET("/author/:slug/", redirectAuthor)

	router.GET("/podcasts/", pages.Podcasts)
	router.GET("/podcasts/:slug/", pages.Podcast)

	router.NoRoute(pages.NotFound)

	return router
}

// healthCheck returns the health status
func healthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "media-site",
		})
	}
}

// redirectAuthor sends the legacy author URL to the author page, keeping the page number
func redirectAuthor(c *gin.Context) {
	target := "/authors/" + c.Param("slug") + "/?page=" + c.DefaultQuery("page", "1")
	c.Redirect(http.StatusTemporaryRedirect, target)
}
