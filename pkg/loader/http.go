package loader

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTP fetches targets relative to a base URL.
type HTTP struct {
	baseURL string
	client  *fasthttp.Client
	timeout time.Duration
	maxSize int
	header  map[string]string
}

// HTTPOption configures an HTTP loader.
type HTTPOption func(*HTTP)

// WithClient sets the fasthttp client.
func WithClient(c *fasthttp.Client) HTTPOption {
	return func(l *HTTP) {
		l.client = c
	}
}

// WithTimeout sets the per-request timeout used when the context has no
// deadline. Default: 10s.
func WithTimeout(d time.Duration) HTTPOption {
	return func(l *HTTP) {
		l.timeout = d
	}
}

// WithBodyLimit limits the response body size. Zero means no limit.
func WithBodyLimit(n int) HTTPOption {
	return func(l *HTTP) {
		l.maxSize = n
	}
}

// WithHeader adds a request header to every fetch.
func WithHeader(key, value string) HTTPOption {
	return func(l *HTTP) {
		l.header[key] = value
	}
}

// NewHTTP creates a loader fetching from baseURL, for example
// "https://cdn.example.com/fragments/".
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTP {
	l := &HTTP{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: defaultHTTPTimeout,
		header:  map[string]string{},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = &fasthttp.Client{
			Name:                "jrouter",
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: l.maxSize,
		}
	}
	return l
}

// URL returns the URL a resource is fetched from.
func (l *HTTP) URL(resource string) string {
	return l.baseURL + "/" + strings.TrimPrefix(resource, "/")
}

// Fetch implements Loader. Responses outside 2xx report a StatusError.
// Resources escaping the base URL report status 400 without a request.
func (l *HTTP) Fetch(ctx context.Context, resource string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, ok := cleanResource(resource)
	if !ok {
		return nil, &StatusError{Resource: resource, Status: http.StatusBadRequest}
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(l.timeout)
	}

	// fasthttp has no context support. The request runs in its own
	// goroutine so a canceled fetch returns at once.
	type result struct {
		body []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		body, err := l.do(resource, name, deadline)
		done <- result{body, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.body, res.err
	}
}

func (l *HTTP) do(resource, name string, deadline time.Time) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(l.URL(name))
	req.Header.SetMethod(fasthttp.MethodGet)
	for k, v := range l.header {
		req.Header.Set(k, v)
	}

	if err := l.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &StatusError{Resource: resource, Status: status}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := resp.BodyWriteTo(buf); err != nil {
		return nil, err
	}
	if l.maxSize > 0 && buf.Len() > l.maxSize {
		return nil, fmt.Errorf("content exceeds %d bytes", l.maxSize)
	}
	return append([]byte(nil), buf.B...), nil
}
