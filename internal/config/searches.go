package config

import (
	"fmt"
	"regexp"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
)

// SearchDefinitions compiles every configured search. Patterns match case-insensitively
// and searches without their own page limit inherit scraper.max_pages.
func (c *Config) SearchDefinitions() ([]domain.SearchDefinition, error) {
	defs := make([]domain.SearchDefinition, 0, len(c.Searches))
	for _, s := range c.Searches {
		def, err := s.compile(c.Scraper.MaxPages)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", s.Query, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (s SearchConfig) compile(defaultPages int) (domain.SearchDefinition, error) {
	category, err := domain.ParseCategory(s.Category)
	if err != nil {
		return domain.SearchDefinition{}, err
	}

	pattern, err := regexp.Compile("(?i)" + s.Pattern)
	if err != nil {
		return domain.SearchDefinition{}, fmt.Errorf("invalid pattern: %w", err)
	}

	pages := s.MaxPages
	if pages == 0 {
		pages = defaultPages
	}

	return domain.SearchDefinition{
		Query:               s.Query,
		MaxPrice:            s.MaxPrice,
		SuperPriceThreshold: s.SuperPriceThreshold,
		BaseURL:             s.BaseURL,
		Pattern:             pattern,
		Category:            category,
		MaxPages:            pages,
	}, nil
}

// FilterByCategory returns the definitions belonging to category. An empty
// category returns defs unchanged.
func FilterByCategory(defs []domain.SearchDefinition, category domain.Category) []domain.SearchDefinition {
	if category == "" {
		return defs
	}
	out := make([]domain.SearchDefinition, 0, len(defs))
	for _, d := range defs {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}
