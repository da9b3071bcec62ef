// Package mediastack talks to the upstream news API.
package mediastack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Adda-Baaj/khobor/internal/domain"
	"github.com/Adda-Baaj/khobor/pkg/httpclient"
)

// filterParams maps each feed to the upstream query parameter that carries its filter.
var filterParams = map[domain.Feed]string{
	domain.FeedAll:      "keywords",
	domain.FeedCategory: "categories",
	domain.FeedCountry:  "countries",
}

// ErrMalformedBody is returned when a 2xx response does not carry JSON.
var ErrMalformedBody = errors.New("upstream returned a malformed body")

// UpstreamError reports a non-2xx upstream response. Body is relayed to callers as-is.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d body: %s", e.StatusCode, responseSnippet(e.Body))
}

// Client issues one GET per query against the upstream news endpoint.
type Client struct {
	baseURL   string
	accessKey string
	http      httpclient.Client
}

// NewClient builds an upstream client. accessKey may be empty; upstream then rejects calls.
func NewClient(baseURL, accessKey string, client httpclient.Client) *Client {
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.Options{})
	}
	return &Client{
		baseURL:   strings.TrimSpace(baseURL),
		accessKey: accessKey,
		http:      client,
	}
}

// URL builds the upstream request URL for q.
func (c *Client) URL(q domain.Query) (string, error) {
	param, ok := filterParams[q.Feed]
	if !ok {
		return "", fmt.Errorf("unknown feed %q", q.Feed)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse upstream base url: %w", err)
	}

	values := u.Query()
	values.Set("access_key", c.accessKey)
	values.Set(param, q.Filter)
	values.Set("limit", strconv.Itoa(q.PageSize))
	values.Set("offset", strconv.Itoa(q.Offset()))
	u.RawQuery = values.Encode()

	return u.String(), nil
}

// Fetch performs the upstream call and returns the JSON body verbatim.
// Failures are a transport error, *UpstreamError, or ErrMalformedBody.
func (c *Client) Fetch(ctx context.Context, q domain.Query) (json.RawMessage, error) {
	target, err := c.URL(q)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Get(ctx, target, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", q.Feed, err)
	}

	body := resp.Body()
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Body: body}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBody, responseSnippet(body))
	}

	return json.RawMessage(body), nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
