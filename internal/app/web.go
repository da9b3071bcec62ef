package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Adda-Baaj/khobor/internal/catalog"
	"github.com/Adda-Baaj/khobor/internal/config"
	"github.com/Adda-Baaj/khobor/internal/domain"
	"github.com/Adda-Baaj/khobor/internal/logger"
	"github.com/Adda-Baaj/khobor/internal/metrics"
	"github.com/Adda-Baaj/khobor/internal/ui"
	"github.com/Adda-Baaj/khobor/internal/web"
	"github.com/Adda-Baaj/khobor/pkg/httpclient"
	"github.com/Adda-Baaj/khobor/pkg/newsclient"
)

// WebServer is the browsing UI runtime.
type WebServer struct {
	cfg      *config.Config
	sessions *web.Sessions
	server   *http.Server
	log      logger.Logger
}

// NewWebServer builds the UI runtime. Every session gets its own ui.App backed by the proxy client.
func NewWebServer(cfg *config.Config, log logger.Logger) (*WebServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	setGinMode(cfg.GinMode)

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.InfoObj("catalog loaded", "catalog_meta", map[string]any{
		"file":       cfg.CatalogFile,
		"categories": len(cat.Categories()),
		"countries":  len(cat.Countries()),
	})

	proxyClient := newsclient.New(cfg.ProxyURL, httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.UpstreamTimeout,
		UserAgent: cfg.AppName,
	}))
	newApp := func() *ui.App {
		return ui.NewApp(proxyClient, ui.Options{
			OnStale: func(feed domain.Feed) {
				metrics.UIStaleResponsesTotal.WithLabelValues(string(feed)).Inc()
			},
		})
	}
	sessions := web.NewSessions(cfg.SessionIdle, newApp)

	router, err := web.NewServer(sessions, cat, log).Router()
	if err != nil {
		return nil, fmt.Errorf("build web router: %w", err)
	}

	return &WebServer{
		cfg:      cfg,
		sessions: sessions,
		server: &http.Server{
			Addr:    ":" + strconv.Itoa(cfg.WebPort),
			Handler: router,
		},
		log: log,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (w *WebServer) Handler() http.Handler { return w.server.Handler }

// Run serves until ctx is cancelled, then drops every session.
func (w *WebServer) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return fmt.Errorf("web server is not initialized")
	}
	defer w.sessions.Close()
	w.log.InfoObj("web proxy target", "proxy_url", w.cfg.ProxyURL)
	return serve(ctx, w.server, "web", w.log)
}
