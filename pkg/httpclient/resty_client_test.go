package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGetPassesHeadersAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("missing header, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "khobor-test" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	client := NewRestyClient(Options{Timeout: 2 * time.Second, UserAgent: "khobor-test"})
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":false}` {
		t.Fatalf("unexpected body %q", resp.Body())
	}
	if resp.Header("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type %q", resp.Header("Content-Type"))
	}
}

func TestRestyClientGetTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewRestyClient(Options{})
	if _, err := client.Get(context.Background(), url, nil); err == nil {
		t.Fatalf("expected error against closed server")
	}
}
