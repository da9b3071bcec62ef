package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Adda-Baaj/khobor/internal/domain"
	"github.com/Adda-Baaj/khobor/internal/journal"
	"github.com/Adda-Baaj/khobor/internal/logger"
	"github.com/Adda-Baaj/khobor/internal/metrics"
	"github.com/Adda-Baaj/khobor/internal/middleware"
	"github.com/Adda-Baaj/khobor/pkg/mediastack"
	"github.com/gin-gonic/gin"
)

const (
	defaultRecentQueries = 50
	maxRecentQueries     = 500
)

// Upstream fetches the raw upstream payload for a query.
type Upstream interface {
	Fetch(ctx context.Context, q domain.Query) (json.RawMessage, error)
}

// Handler serves the proxied news routes. It holds no per-request state.
type Handler struct {
	upstream Upstream
	journal  journal.Journal
	log      logger.Logger
}

// NewHandler wires a handler. A nil journal disables query journaling.
func NewHandler(upstream Upstream, j journal.Journal, log logger.Logger) *Handler {
	if j == nil {
		j, _ = journal.New("none", "", journal.Options{})
	}
	return &Handler{
		upstream: upstream,
		journal:  j,
		log:      logger.Ensure(log),
	}
}

// AllNews handles GET /all-news?q&page&pageSize.
func (h *Handler) AllNews(c *gin.Context) {
	q := buildQuery(allNewsDefaults, c.Query("q"), c.Query("page"), c.Query("pageSize"))
	env := h.forward(c, q)
	c.JSON(env.Status, env)
}

// TopHeadlines handles GET /top-headlines?category&page&pageSize.
func (h *Handler) TopHeadlines(c *gin.Context) {
	q := buildQuery(headlineDefaults, c.Query("category"), c.Query("page"), c.Query("pageSize"))
	env := h.forward(c, q)
	c.JSON(env.Status, env)
}

// Country handles GET /country/:iso?page&pageSize. The iso segment is not validated.
func (h *Handler) Country(c *gin.Context) {
	iso := c.Param("iso")
	q := buildQuery(countryDefaults, iso, c.Query("page"), c.Query("pageSize"))

	h.log.DebugObj("fetching country news", "country_query", map[string]any{
		"request_id": middleware.GetRequestID(c),
		"country":    iso,
		"page":       q.Page,
		"page_size":  q.PageSize,
	})

	env := h.forward(c, q)
	if !env.Success {
		env = countryFailure(iso, env)
	}
	c.JSON(env.Status, env)
}

// RecentQueries handles GET /debug/queries?limit.
func (h *Handler) RecentQueries(c *gin.Context) {
	limit := min(parsePositive(c.Query("limit"), defaultRecentQueries), maxRecentQueries)
	entries, err := h.journal.Recent(limit)
	if err != nil {
		h.log.ErrorObj("journal read failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "journal unavailable"})
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"queries": entries})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// forward performs the single upstream call for q and shapes the envelope.
func (h *Handler) forward(c *gin.Context, q domain.Query) Envelope {
	start := time.Now()
	data, err := h.upstream.Fetch(c.Request.Context(), q)
	elapsed := time.Since(start)
	metrics.UpstreamRequestDuration.WithLabelValues(string(q.Feed)).Observe(elapsed.Seconds())

	var env Envelope
	if err != nil {
		env = failureEnvelope(err)
		metrics.UpstreamRequestsTotal.WithLabelValues(string(q.Feed), outcome(err)).Inc()
		h.log.ErrorObj("api request error", "upstream_error", map[string]any{
			"request_id": middleware.GetRequestID(c),
			"feed":       q.Feed,
			"filter":     q.Filter,
			"page":       q.Page,
			"page_size":  q.PageSize,
			"error":      err.Error(),
		})
	} else {
		env = successEnvelope(data)
		metrics.UpstreamRequestsTotal.WithLabelValues(string(q.Feed), metrics.OutcomeSuccess).Inc()
	}

	if jerr := h.journal.Record(journal.NewEntry(q, env.Status, env.Success, elapsed)); jerr != nil {
		h.log.WarnObj("journal write failed", "error", jerr.Error())
	}
	return env
}

func outcome(err error) string {
	var upErr *mediastack.UpstreamError
	switch {
	case errors.As(err, &upErr):
		return metrics.OutcomeStatus
	case errors.Is(err, mediastack.ErrMalformedBody):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeTransport
	}
}
