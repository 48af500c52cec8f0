package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/media-site/internal/models"
	"github.com/media-site/internal/service"
	"github.com/media-site/internal/validation"
)

// statusFor maps a page error onto its response status
func statusFor(err error) int {
	var verrs validation.Errors
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail renders the error page: the status, validation details when present,
// and the fallback listing. A failing fallback leaves the list empty.
func (h *PageHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)

	event := h.log.Debug()
	if status == http.StatusInternalServerError {
		event = h.log.Error()
	}
	event.Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("Rendering error page")

	body := gin.H{
		"status": status,
		"error":  http.StatusText(status),
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		body["errors"] = verrs
	}

	articles := []models.ArticleCard{}
	fallback, ferr := h.services.Listing.Fallback(c.Request.Context())
	switch {
	case ferr != nil:
		h.log.Warn().Err(ferr).Msg("Fallback listing failed")
	case fallback != nil:
		articles = fallback.Articles
	}
	body["articles"] = articles

	c.JSON(status, body)
}
