package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/metrics"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.PageFetched("http", "ok")
	m.PageFetched("http", "ok")
	m.AdReconciled("created")
	m.NotificationSent("new_deal", "published")
	m.ObservePass(3 * time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(m.PagesFetched.WithLabelValues("http", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AdsReconciled.WithLabelValues("created")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Notifications.WithLabelValues("new_deal", "published")), 0)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.PageFetched("browser", "error")
		m.AdReconciled("updated")
		m.NotificationSent("price_drop", "failed")
		m.ObservePass(time.Second)
	})
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.AdReconciled("unchanged")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `olx_scraper_ads_reconciled_total{outcome="unchanged"} 1`)
}
