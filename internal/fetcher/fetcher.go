// Package fetcher retrieves OLX result pages. A plain HTTP GET is tried first;
// when the site answers 403 the page is rendered in a headless browser.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/metrics"
)

// Fetch paths, used as metric labels.
const (
	pathHTTP    = "http"
	pathBrowser = "browser"
)

// PageGetter is the fast fetch path.
type PageGetter interface {
	Get(ctx context.Context, pageURL string) ([]byte, error)
}

// Renderer is the browser fallback.
type Renderer interface {
	Render(ctx context.Context, pageURL, waitSelector string) ([]byte, error)
}

// Config configures a Fetcher.
type Config struct {
	// RateLimit is the minimum delay between requests. Zero disables limiting.
	RateLimit time.Duration
	Retry     RetryPolicy
	// WaitSelectors maps a category to the listing-card selector the browser
	// waits for.
	WaitSelectors map[domain.Category]string
	// BreakerThreshold and BreakerCooldown guard the browser fallback. Only
	// ErrBrowserStart failures count; a page that fails to render does not.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// Fetcher combines the HTTP path and the browser fallback.
type Fetcher struct {
	http          PageGetter
	browser       Renderer
	limiter       *rate.Limiter
	retry         RetryPolicy
	waitSelectors map[domain.Category]string
	breaker       *breaker
	log           logger.Logger
	metrics       *metrics.Metrics
}

// New creates a Fetcher. browser may be nil to disable the fallback.
func New(cfg Config, httpPath PageGetter, browser Renderer, log logger.Logger, m *metrics.Metrics) *Fetcher {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Every(cfg.RateLimit)
	}

	f := &Fetcher{
		http:          httpPath,
		browser:       browser,
		limiter:       rate.NewLimiter(limit, 1),
		retry:         cfg.Retry,
		waitSelectors: cfg.WaitSelectors,
		breaker:       newBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		log:           log,
		metrics:       m,
	}
	f.breaker.trips = func(err error) bool { return errors.Is(err, ErrBrowserStart) }
	f.breaker.onStateChange = func(from, to breakerState) {
		log.Warn("Browser fallback circuit changed state",
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	}
	return f
}

// Fetch returns the HTML of pageURL. Every failure wraps ErrFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string, category domain.Category) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	var body []byte
	err := retry(ctx, f.retry, isRetryable, func() error {
		var getErr error
		body, getErr = f.http.Get(ctx, pageURL)
		return getErr
	})
	if err == nil {
		f.metrics.PageFetched(pathHTTP, "ok")
		f.log.Debug("Fetched page", logger.String("url", pageURL), logger.Int("bytes", len(body)))
		return body, nil
	}

	if !errors.Is(err, ErrAccessDenied) {
		f.metrics.PageFetched(pathHTTP, "error")
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	f.metrics.PageFetched(pathHTTP, "denied")

	if f.browser == nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	f.log.Warn("Access denied, rendering page in browser", logger.String("url", pageURL))
	return f.render(ctx, pageURL, category)
}

func (f *Fetcher) render(ctx context.Context, pageURL string, category domain.Category) ([]byte, error) {
	var html []byte
	err := f.breaker.execute(func() error {
		var renderErr error
		html, renderErr = f.browser.Render(ctx, pageURL, f.waitSelector(category))
		return renderErr
	})
	if err != nil {
		f.metrics.PageFetched(pathBrowser, "error")
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	f.metrics.PageFetched(pathBrowser, "ok")
	f.log.Debug("Rendered page", logger.String("url", pageURL), logger.Int("bytes", len(html)))
	return html, nil
}

func (f *Fetcher) waitSelector(category domain.Category) string {
	if sel, ok := f.waitSelectors[category]; ok {
		return sel
	}
	return f.waitSelectors[domain.CategoryStandard]
}
