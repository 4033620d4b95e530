package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	maxBodySize    = 10 * 1024 * 1024
	defaultTimeout = 30 * time.Second
)

// HTTPFetcher is the lightweight fetch path: a single GET with browser-like
// headers.
type HTTPFetcher struct {
	userAgent      string
	acceptLanguage string
	timeout        time.Duration
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(userAgent, acceptLanguage string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPFetcher{userAgent: userAgent, acceptLanguage: acceptLanguage, timeout: timeout}
}

// Get fetches pageURL. A 403 response yields ErrAccessDenied; any other
// failure is a *StatusError.
func (h *HTTPFetcher) Get(ctx context.Context, pageURL string) ([]byte, error) {
	c := colly.NewCollector(
		colly.UserAgent(h.userAgent),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(maxBodySize),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(h.timeout)

	var (
		body   []byte
		status int
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", acceptHeader)
		r.Headers.Set("Accept-Language", h.acceptLanguage)
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := c.Visit(pageURL); err != nil {
		if status == http.StatusForbidden {
			return nil, fmt.Errorf("%w: GET %s returned %d", ErrAccessDenied, pageURL, status)
		}
		return nil, &StatusError{URL: pageURL, StatusCode: status, Err: err}
	}

	return body, nil
}
