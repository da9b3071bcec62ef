// Package newsclient reads the proxy's three routes on behalf of the browsing UI.
package newsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Adda-Baaj/khobor/internal/domain"
	"github.com/Adda-Baaj/khobor/pkg/httpclient"
	"github.com/Adda-Baaj/khobor/pkg/mediastack"
)

// envelope is the proxy response shape.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// Error is a failure reported by the proxy. Message is what the UI shows.
type Error struct {
	Status  int
	Message string
	// Detail is the upstream error message when one could be extracted.
	Detail string
}

func (e *Error) Error() string { return e.Message }

// Client fetches pages from the proxy.
type Client struct {
	baseURL string
	http    httpclient.Client
}

func New(baseURL string, client httpclient.Client) *Client {
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.Options{})
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    client,
	}
}

// URL builds the proxy URL for q. Zero page sizes are left to the proxy defaults.
func (c *Client) URL(q domain.Query) (string, error) {
	values := url.Values{}
	var path string
	switch q.Feed {
	case domain.FeedAll:
		path = "/all-news"
		values.Set("q", q.Filter)
	case domain.FeedCategory:
		path = "/top-headlines"
		values.Set("category", q.Filter)
	case domain.FeedCountry:
		path = "/country/" + url.PathEscape(q.Filter)
	default:
		return "", fmt.Errorf("unknown feed %q", q.Feed)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	u := c.baseURL + path
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u, nil
}

// Fetch calls the proxy and decodes the article page. Failed envelopes come back as *Error.
func (c *Client) Fetch(ctx context.Context, q domain.Query) (domain.ArticlePage, error) {
	target, err := c.URL(q)
	if err != nil {
		return domain.ArticlePage{}, err
	}

	resp, err := c.http.Get(ctx, target, map[string]string{"Accept": "application/json"})
	if err != nil {
		return domain.ArticlePage{}, fmt.Errorf("fetch %s: %w", q.Feed, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return domain.ArticlePage{}, &Error{
			Status:  resp.StatusCode(),
			Message: fmt.Sprintf("unexpected proxy response (status %d, content type %q)",
				resp.StatusCode(), resp.Header("Content-Type")),
		}
	}
	if !env.Success {
		return domain.ArticlePage{}, &Error{
			Status:  env.Status,
			Message: env.Message,
			Detail:  upstreamMessage(env.Error),
		}
	}

	var data mediastack.Response
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return domain.ArticlePage{}, fmt.Errorf("decode %s articles: %w", q.Feed, err)
	}
	return domain.ArticlePage{
		Articles: data.Data,
		Offset:   data.Pagination.Offset,
		Count:    data.Pagination.Count,
		Total:    data.Pagination.Total,
	}, nil
}

// upstreamMessage extracts a readable message from the relayed error field.
func upstreamMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var body mediastack.ErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
