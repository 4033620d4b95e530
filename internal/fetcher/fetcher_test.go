package fetcher_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/fetcher"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
)

const (
	testPageURL      = "https://www.olx.com.br/informatica?q=rtx&o=1"
	standardSelector = "a.olx-ad-card__link-wrapper"
	vehicleSelector  = "a.olx-adcard__link"
)

// fakeGetter replays a scripted sequence of responses.
type fakeGetter struct {
	mu        sync.Mutex
	responses []getterResponse
	calls     int
}

type getterResponse struct {
	body []byte
	err  error
}

func (g *fakeGetter) Get(_ context.Context, _ string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := g.responses[min(g.calls, len(g.responses)-1)]
	g.calls++
	return r.body, r.err
}

type fakeRenderer struct {
	mu        sync.Mutex
	body      []byte
	err       error
	failOn    map[int]error // 1-based call number to error
	selectors []string
}

func (r *fakeRenderer) Render(_ context.Context, _, waitSelector string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectors = append(r.selectors, waitSelector)
	if err, ok := r.failOn[len(r.selectors)]; ok {
		return nil, err
	}
	return r.body, r.err
}

func (r *fakeRenderer) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.selectors)
}

func denied() error {
	return fmt.Errorf("%w: GET %s returned 403", fetcher.ErrAccessDenied, testPageURL)
}

func newTestFetcher(getter fetcher.PageGetter, renderer fetcher.Renderer, cfg fetcher.Config) *fetcher.Fetcher {
	if cfg.WaitSelectors == nil {
		cfg.WaitSelectors = map[domain.Category]string{
			domain.CategoryStandard: standardSelector,
			domain.CategoryVehicle:  vehicleSelector,
		}
	}
	return fetcher.New(cfg, getter, renderer, logger.NewNop(), nil)
}

func TestFetch_HTTPSuccess(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{responses: []getterResponse{{body: []byte("<html>fast</html>")}}}
	renderer := &fakeRenderer{}
	f := newTestFetcher(getter, renderer, fetcher.Config{})

	body, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)

	require.NoError(t, err)
	assert.Equal(t, "<html>fast</html>", string(body))
	assert.Zero(t, renderer.callCount())
}

func TestFetch_FallsBackToBrowserOnAccessDenied(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{responses: []getterResponse{{err: denied()}}}
	renderer := &fakeRenderer{body: []byte("<html>rendered</html>")}
	f := newTestFetcher(getter, renderer, fetcher.Config{Retry: fetcher.RetryPolicy{MaxAttempts: 3}})

	body, err := f.Fetch(context.Background(), testPageURL, domain.CategoryVehicle)

	require.NoError(t, err)
	assert.Equal(t, "<html>rendered</html>", string(body))
	assert.Equal(t, 1, getter.calls, "access denial is not retried")
	assert.Equal(t, []string{vehicleSelector}, renderer.selectors)
}

func TestFetch_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{responses: []getterResponse{
		{err: &fetcher.StatusError{URL: testPageURL, StatusCode: http.StatusServiceUnavailable, Err: errors.New("unavailable")}},
		{err: &fetcher.StatusError{URL: testPageURL, Err: errors.New("connection reset")}},
		{body: []byte("<html>third</html>")},
	}}
	f := newTestFetcher(getter, nil, fetcher.Config{
		Retry: fetcher.RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond},
	})

	body, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)

	require.NoError(t, err)
	assert.Equal(t, "<html>third</html>", string(body))
	assert.Equal(t, 3, getter.calls)
}

func TestFetch_NonRetryableFailure(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{responses: []getterResponse{
		{err: &fetcher.StatusError{URL: testPageURL, StatusCode: http.StatusNotFound, Err: errors.New("not found")}},
	}}
	renderer := &fakeRenderer{}
	f := newTestFetcher(getter, renderer, fetcher.Config{
		Retry: fetcher.RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond},
	})

	_, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)

	require.ErrorIs(t, err, fetcher.ErrFetchFailed)
	assert.Equal(t, 1, getter.calls)
	assert.Zero(t, renderer.callCount())
}

func TestFetch_BrowserFailure(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{responses: []getterResponse{{err: denied()}}}
	renderer := &fakeRenderer{err: context.DeadlineExceeded}
	f := newTestFetcher(getter, renderer, fetcher.Config{})

	_, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)

	require.ErrorIs(t, err, fetcher.ErrFetchFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{standardSelector}, renderer.selectors)
}

func TestFetch_NoBrowserConfigured(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{responses: []getterResponse{{err: denied()}}}
	f := newTestFetcher(getter, nil, fetcher.Config{})

	_, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)

	require.ErrorIs(t, err, fetcher.ErrFetchFailed)
	require.ErrorIs(t, err, fetcher.ErrAccessDenied)
}

func TestFetch_BrowserCircuitOpens(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{responses: []getterResponse{{err: denied()}}}
	renderer := &fakeRenderer{err: fmt.Errorf("%w: exec: chrome not found", fetcher.ErrBrowserStart)}
	f := newTestFetcher(getter, renderer, fetcher.Config{BreakerThreshold: 2, BreakerCooldown: time.Hour})

	for range 2 {
		_, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)
		require.ErrorIs(t, err, fetcher.ErrFetchFailed)
	}
	_, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)

	require.ErrorIs(t, err, fetcher.ErrCircuitOpen)
	assert.Equal(t, 2, renderer.callCount())
}

func TestFetch_PageRenderFailuresKeepCircuitClosed(t *testing.T) {
	t.Parallel()

	timeout := fmt.Errorf("failed to render %s: %w", testPageURL, context.DeadlineExceeded)
	getter := &fakeGetter{responses: []getterResponse{{err: denied()}}}
	renderer := &fakeRenderer{
		body:   []byte("<html>rendered</html>"),
		failOn: map[int]error{3: timeout, 4: timeout, 5: timeout},
	}
	f := newTestFetcher(getter, renderer, fetcher.Config{BreakerThreshold: 3, BreakerCooldown: time.Hour})

	var ok int
	for page := 1; page <= 10; page++ {
		_, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)
		if page >= 3 && page <= 5 {
			require.ErrorIs(t, err, context.DeadlineExceeded, "page %d", page)
			require.NotErrorIs(t, err, fetcher.ErrCircuitOpen, "page %d", page)
			continue
		}
		require.NoError(t, err, "page %d", page)
		ok++
	}

	assert.Equal(t, 10, renderer.callCount())
	assert.Equal(t, 7, ok)
}

func TestFetch_CancelledContext(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{responses: []getterResponse{{body: []byte("x")}}}
	f := newTestFetcher(getter, nil, fetcher.Config{RateLimit: time.Hour})

	_, err := f.Fetch(context.Background(), testPageURL, domain.CategoryStandard)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, testPageURL, domain.CategoryStandard)

	require.ErrorIs(t, err, fetcher.ErrFetchFailed)
}
