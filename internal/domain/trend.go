package domain

// TrendDirection is the direction of an ad's price over its history.
type TrendDirection string

// Trend directions.
const (
	TrendUpward   TrendDirection = "upward"
	TrendDownward TrendDirection = "downward"
	TrendStable   TrendDirection = "stable"
)

// Trend is the result of comparing the earliest and latest recorded price.
type Trend struct {
	Direction TrendDirection `json:"trend"`
	Delta     float64        `json:"delta"`
}
