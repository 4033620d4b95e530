package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultScrollInterval = 500 * time.Millisecond
	defaultMaxScrolls     = 30
	defaultRenderTimeout  = 60 * time.Second

	scrollScript = `window.scrollTo(0, document.body.scrollHeight); document.body.scrollHeight`
)

// ErrBrowserStart marks a failure to launch Chrome, as opposed to a failure
// of the page it was asked to render.
var ErrBrowserStart = errors.New("failed to start browser")

// BrowserConfig configures BrowserRenderer.
type BrowserConfig struct {
	Headless       bool
	ExecPath       string
	UserAgent      string
	Timeout        time.Duration
	ScrollInterval time.Duration
	MaxScrolls     int
}

// BrowserRenderer loads pages in a headless Chrome. Every Render call
// launches its own browser and tears it down before returning.
type BrowserRenderer struct {
	cfg BrowserConfig
}

// NewBrowserRenderer creates a BrowserRenderer.
func NewBrowserRenderer(cfg BrowserConfig) *BrowserRenderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRenderTimeout
	}
	if cfg.ScrollInterval <= 0 {
		cfg.ScrollInterval = defaultScrollInterval
	}
	if cfg.MaxScrolls <= 0 {
		cfg.MaxScrolls = defaultMaxScrolls
	}
	return &BrowserRenderer{cfg: cfg}
}

// Render navigates to pageURL, waits for waitSelector, scrolls until the page
// stops growing and returns the rendered document. Launch failures wrap
// ErrBrowserStart.
func (b *BrowserRenderer) Render(ctx context.Context, pageURL, waitSelector string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.cfg.UserAgent))
	}
	if b.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.cfg.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// An empty Run only allocates the browser and its first tab.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBrowserStart, err)
	}

	runCtx, cancel := context.WithTimeout(browserCtx, b.cfg.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := scrollUntilStable(ctx, measureAfterScroll, b.cfg.ScrollInterval, b.cfg.MaxScrolls)
			return err
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", pageURL, err)
	}

	return []byte(html), nil
}

func measureAfterScroll(ctx context.Context) (float64, error) {
	var height float64
	if err := chromedp.Evaluate(scrollScript, &height).Do(ctx); err != nil {
		return 0, fmt.Errorf("failed to scroll: %w", err)
	}
	return height, nil
}

// scrollUntilStable calls scroll, which scrolls to the bottom and reports the
// document height, until two consecutive heights are equal or maxScrolls is
// reached. It returns the number of scrolls performed.
func scrollUntilStable(
	ctx context.Context,
	scroll func(context.Context) (float64, error),
	interval time.Duration,
	maxScrolls int,
) (int, error) {
	last := -1.0
	for i := range maxScrolls {
		height, err := scroll(ctx)
		if err != nil {
			return i, err
		}
		if height == last {
			return i + 1, nil
		}
		last = height

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return i + 1, ctx.Err()
		case <-timer.C:
		}
	}
	return maxScrolls, nil
}
