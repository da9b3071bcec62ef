package httpclient

import "context"

// Response is the part of an HTTP response the proxy and the UI client read.
type Response interface {
	Body() []byte
	StatusCode() int
	Header(key string) string
}

// Client abstracts outbound GETs so callers can inject stubs or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
