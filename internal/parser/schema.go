package parser

import "github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"

// cardSchema is the set of selectors describing one listing-card markup.
type cardSchema struct {
	// card selects the anchor wrapping each listing.
	card string
	// price, details and image are looked up inside the card's parent.
	price   string
	details string
	image   string
	// odometer selects the element whose aria-label carries the mileage.
	// Empty for categories without one.
	odometer string
}

var schemas = map[domain.Category]cardSchema{
	domain.CategoryStandard: {
		card:    "a.olx-ad-card__link-wrapper",
		price:   ".olx-ad-card__price",
		details: ".olx-ad-card__bottom",
		image:   "img",
	},
	domain.CategoryVehicle: {
		card:     "a.olx-adcard__link",
		price:    ".olx-adcard__price",
		details:  ".olx-adcard__location-date",
		image:    ".olx-adcard__media img",
		odometer: `.olx-adcard__detail[aria-label*="quilômetro"]`,
	},
}

func schemaFor(category domain.Category) cardSchema {
	if s, ok := schemas[category]; ok {
		return s
	}
	return schemas[domain.CategoryStandard]
}

// CardSelectors returns the listing-card selector of every category. The
// browser fallback waits for these before capturing a page.
func CardSelectors() map[domain.Category]string {
	out := make(map[domain.Category]string, len(schemas))
	for category, s := range schemas {
		out[category] = s.card
	}
	return out
}
