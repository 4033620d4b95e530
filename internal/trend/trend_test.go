package trend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/trend"
)

var t0 = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

func history(prices ...float64) []domain.PricePoint {
	out := make([]domain.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = domain.PricePoint{Price: p, RecordedAt: t0.Add(time.Duration(i) * time.Hour)}
	}
	return out
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		history   []domain.PricePoint
		direction domain.TrendDirection
		delta     float64
	}{
		{name: "empty", history: nil, direction: domain.TrendStable, delta: 0},
		{name: "single entry", history: history(100), direction: domain.TrendStable, delta: 0},
		{name: "unchanged", history: history(100, 100), direction: domain.TrendStable, delta: 0},
		{name: "doubled", history: history(100, 200), direction: domain.TrendUpward, delta: 100},
		{name: "drop beyond threshold", history: history(100, 94), direction: domain.TrendDownward, delta: -6},
		{name: "rise within threshold", history: history(100, 103), direction: domain.TrendStable, delta: 3},
		{name: "exactly at threshold", history: history(100, 105), direction: domain.TrendStable, delta: 5},
		{name: "middle ignored", history: history(100, 500, 101), direction: domain.TrendStable, delta: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := trend.Detect(tt.history)
			assert.Equal(t, tt.direction, got.Direction)
			assert.InDelta(t, tt.delta, got.Delta, 1e-9)
		})
	}
}

func TestDetect_SortsByTime(t *testing.T) {
	t.Parallel()

	h := []domain.PricePoint{
		{Price: 200, RecordedAt: t0.Add(2 * time.Hour)},
		{Price: 100, RecordedAt: t0},
	}

	got := trend.Detect(h)

	assert.Equal(t, domain.TrendUpward, got.Direction)
	assert.InDelta(t, 100, got.Delta, 1e-9)
	assert.InDelta(t, 200, h[0].Price, 1e-9, "input must not be reordered")
}

func TestForAds(t *testing.T) {
	t.Parallel()

	ads := []domain.StoredAd{
		{ID: 1, Title: "RTX 3090", Price: 1700, PriceHistory: history(1900, 1700)},
		{ID: 2, Title: "RTX 3080", Price: 3000, PriceHistory: history(3000)},
	}

	got := trend.ForAds(ads)

	require.Len(t, got, 2)
	assert.Equal(t, domain.TrendDownward, got[0].Trend.Direction)
	assert.InDelta(t, -200, got[0].Trend.Delta, 1e-9)
	assert.Equal(t, domain.TrendStable, got[1].Trend.Direction)
}
