package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Adda-Baaj/khobor/internal/config"
	"github.com/Adda-Baaj/khobor/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, upstreamURL string) *config.Config {
	t.Helper()
	return &config.Config{
		AppName:                "khobor-test",
		GinMode:                "test",
		Port:                   3000,
		MediastackAPIKey:       "key",
		UpstreamBaseURL:        upstreamURL,
		JournalType:            "bbolt",
		JournalPath:            filepath.Join(t.TempDir(), "journal.db"),
		JournalTTL:             time.Hour,
		JournalCleanupInterval: time.Minute,
		WebPort:                8080,
		SessionIdle:            time.Minute,
	}
}

func TestProxyAndWebEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "us", r.URL.Query().Get("countries"))
		assert.Equal(t, "80", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pagination":{"limit":80,"offset":0,"count":1,"total":1},
			"data":[{"title":"Senate passes bill","description":"<p>Late vote</p>","source":"AP","url":"https://example.com/a"}]}`))
	}))
	defer upstream.Close()

	cfg := testConfig(t, upstream.URL)
	proxySrv, err := NewProxyServer(cfg, logger.NopLogger{})
	require.NoError(t, err)
	defer proxySrv.closeJournal()

	proxyHTTP := httptest.NewServer(proxySrv.Handler())
	defer proxyHTTP.Close()
	cfg.ProxyURL = proxyHTTP.URL

	webSrv, err := NewWebServer(cfg, logger.NopLogger{})
	require.NoError(t, err)
	defer webSrv.sessions.Close()

	w := httptest.NewRecorder()
	webSrv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/country/us", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Senate passes bill")
	assert.Contains(t, body, "Late vote...")
	assert.Contains(t, body, "Top Headlines: United States")

	w = httptest.NewRecorder()
	proxySrv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/queries", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"feed":"country"`)
}

func TestProxyServerRejectsBadJournal(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.JournalType = "redis"
	_, err := NewProxyServer(cfg, nil)
	assert.Error(t, err)
}

func TestWebServerRejectsMissingCatalog(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewWebServer(cfg, nil)
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Port = 0
	srv, err := NewProxyServer(cfg, nil)
	require.NoError(t, err)
	srv.server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNilConfig(t *testing.T) {
	_, err := NewProxyServer(nil, nil)
	assert.Error(t, err)
	_, err = NewWebServer(nil, nil)
	assert.Error(t, err)
}
