package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Adda-Baaj/khobor/internal/config"
	"github.com/Adda-Baaj/khobor/internal/journal"
	"github.com/Adda-Baaj/khobor/internal/logger"
	"github.com/Adda-Baaj/khobor/internal/proxy"
	"github.com/Adda-Baaj/khobor/pkg/httpclient"
	"github.com/Adda-Baaj/khobor/pkg/mediastack"
)

// ProxyServer is the proxy runtime: the HTTP server, its upstream client and the query journal.
type ProxyServer struct {
	cfg     *config.Config
	journal journal.Journal
	server  *http.Server
	log     logger.Logger
}

// NewProxyServer builds the proxy runtime from config.
func NewProxyServer(cfg *config.Config, log logger.Logger) (*ProxyServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	setGinMode(cfg.GinMode)

	if cfg.MediastackAPIKey == "" {
		log.WarnObj("upstream api key is not set; upstream calls will be rejected", "env", "MEDIASTACK_API_KEY")
	}

	j, err := journal.New(cfg.JournalType, cfg.JournalPath, journal.Options{
		EntryTTL:        cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}
	log.InfoObj("query journal initialized", "journal_config", map[string]any{
		"type":                     cfg.JournalType,
		"path":                     cfg.JournalPath,
		"enabled":                  j.Enabled(),
		"entry_ttl_seconds":        int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	upstream := mediastack.NewClient(cfg.UpstreamBaseURL, cfg.MediastackAPIKey, httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.UpstreamTimeout,
		UserAgent: cfg.AppName,
	}))

	handler := proxy.NewHandler(upstream, j, log)
	return &ProxyServer{
		cfg:     cfg,
		journal: j,
		server: &http.Server{
			Addr:    ":" + strconv.Itoa(cfg.Port),
			Handler: proxy.NewRouter(handler, log),
		},
		log: log,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (p *ProxyServer) Handler() http.Handler { return p.server.Handler }

// Run serves until ctx is cancelled.
func (p *ProxyServer) Run(ctx context.Context) error {
	if p == nil || p.server == nil {
		return fmt.Errorf("proxy server is not initialized")
	}
	defer p.closeJournal()
	return serve(ctx, p.server, "proxy", p.log)
}

func (p *ProxyServer) closeJournal() {
	if err := p.journal.Close(); err != nil {
		p.log.ErrorObj("journal close failed", "error", err)
	}
}
