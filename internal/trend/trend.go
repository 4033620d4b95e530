// Package trend classifies the direction of an ad's price over its history.
package trend

import (
	"slices"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
)

// thresholdRatio is the share of the earliest price a change must exceed to
// count as a trend.
const thresholdRatio = 0.05

// Detect compares the earliest and latest recorded prices. History is sorted
// by time first since concurrent writers may append out of order; the input
// slice is left untouched.
func Detect(history []domain.PricePoint) domain.Trend {
	if len(history) < 2 {
		return domain.Trend{Direction: domain.TrendStable, Delta: 0}
	}

	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b domain.PricePoint) int {
		return a.RecordedAt.Compare(b.RecordedAt)
	})

	first := sorted[0].Price
	delta := sorted[len(sorted)-1].Price - first
	threshold := first * thresholdRatio

	switch {
	case delta > threshold:
		return domain.Trend{Direction: domain.TrendUpward, Delta: delta}
	case delta < -threshold:
		return domain.Trend{Direction: domain.TrendDownward, Delta: delta}
	default:
		return domain.Trend{Direction: domain.TrendStable, Delta: delta}
	}
}

// AdTrend is the trend of one stored ad.
type AdTrend struct {
	ID    int64        `json:"id"`
	Title string       `json:"title"`
	Price float64      `json:"price"`
	Trend domain.Trend `json:"trend"`
}

// ForAds computes the trend of every ad.
func ForAds(ads []domain.StoredAd) []AdTrend {
	out := make([]AdTrend, 0, len(ads))
	for i := range ads {
		out = append(out, AdTrend{
			ID:    ads[i].ID,
			Title: ads[i].Title,
			Price: ads[i].Price,
			Trend: Detect(ads[i].PriceHistory),
		})
	}
	return out
}
