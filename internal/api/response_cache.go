package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/media-site/internal/cache"
	"github.com/rs/zerolog"
)

const jsonContentType = "application/json; charset=utf-8"

// capturingWriter copies the response body while it is written
type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// cacheKeyParts collects the request values that distinguish cached pages
func cacheKeyParts(c *gin.Context) cache.KeyParts {
	return cache.KeyParts{
		Slug:  c.Param("slug"),
		Page:  c.Query("page"),
		Type:  c.Query("type"),
		Query: c.Query("q"),
		Year:  c.Query("year"),
	}
}

// responseCacheMiddleware serves a stored body for the key's TTL and stores
// fresh 200 responses. Store failures are logged and never reach the client.
// Concurrent misses on one key each run the handler.
func responseCacheMiddleware(store cache.Store, prefix string, ttl time.Duration, log zerolog.Logger) gin.HandlerFunc {
	if store == nil || ttl <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With().Str("component", "response_cache").Str("prefix", prefix).Logger()

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := cache.Key(prefix, cacheKeyParts(c))

		body, ok, err := store.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Response cache read failed")
		}
		if ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, jsonContentType, body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		w := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK || w.body.Len() == 0 {
			return
		}
		if err := store.Set(ctx, key, w.body.Bytes(), ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Response cache write failed")
		}
	}
}
