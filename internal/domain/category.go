package domain

import "fmt"

// Category groups search definitions and selects the parsing strategy and
// notification policy applied to their ads.
type Category string

// Supported categories.
const (
	CategoryStandard Category = "standard"
	CategoryVehicle  Category = "vehicle"
)

// ParseCategory validates a configured category name. An empty name is standard.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case "", CategoryStandard:
		return CategoryStandard, nil
	case CategoryVehicle:
		return CategoryVehicle, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// NotifiesDeals reports whether super-price events in this category produce notifications.
func (c Category) NotifiesDeals() bool {
	return c == CategoryStandard
}

func (c Category) String() string {
	return string(c)
}
