package domain

import "regexp"

// SearchDefinition describes one configured OLX search. Built once at
// startup and shared read-only between goroutines.
type SearchDefinition struct {
	Query               string
	MaxPrice            float64
	SuperPriceThreshold float64
	BaseURL             string
	Pattern             *regexp.Regexp
	Category            Category
	MaxPages            int
}

// IsSuperPrice reports whether price is at or below the deal threshold.
func (s SearchDefinition) IsSuperPrice(price float64) bool {
	return price <= s.SuperPriceThreshold
}

// MatchesTitle reports whether title matches the search pattern.
func (s SearchDefinition) MatchesTitle(title string) bool {
	return s.Pattern != nil && s.Pattern.MatchString(title)
}
