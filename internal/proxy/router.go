package proxy

import (
	"net/http"

	"github.com/Adda-Baaj/khobor/internal/logger"
	"github.com/Adda-Baaj/khobor/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CORSConfig allows any origin to call the proxy.
func CORSConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	config.AllowHeaders = []string{"Content-Type", "Authorization"}
	return config
}

// NewRouter registers the proxy routes on a fresh gin engine.
func NewRouter(h *Handler, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		cors.New(CORSConfig()),
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Prometheus("proxy"),
	)

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/all-news", h.AllNews)
	r.GET("/top-headlines", h.TopHeadlines)
	r.GET("/country/:iso", h.Country)

	if h.journal.Enabled() {
		r.GET("/debug/queries", h.RecentQueries)
	}

	return r
}
