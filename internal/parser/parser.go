// Package parser turns OLX search-result pages into candidate ads.
package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
)

const (
	bulletMarker    = "•"
	detailSeparator = "|"
)

// Parser extracts listing cards from result pages.
type Parser struct {
	log logger.Logger
}

// New creates a Parser.
func New(log logger.Logger) *Parser {
	return &Parser{log: log}
}

// Parse returns the cards of html that match search. Cards with a
// non-matching title, a missing or non-positive price, or a price above
// search.MaxPrice are dropped. Missing optional fields become empty strings.
func (p *Parser) Parse(html []byte, search domain.SearchDefinition) ([]domain.CandidateAd, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	schema := schemaFor(search.Category)
	base, _ := url.Parse(search.BaseURL)

	var (
		ads     []domain.CandidateAd
		scanned int
	)
	doc.Find(schema.card).Each(func(_ int, card *goquery.Selection) {
		scanned++
		ad, ok := extractCard(doc, card, schema, search, base)
		if !ok {
			return
		}
		ads = append(ads, ad)
	})

	p.log.Debug("Parsed listing page",
		logger.String("search", search.Query),
		logger.Int("cards", scanned),
		logger.Int("accepted", len(ads)),
	)

	if ads == nil {
		ads = []domain.CandidateAd{}
	}
	return ads, nil
}

func extractCard(
	doc *goquery.Document,
	card *goquery.Selection,
	schema cardSchema,
	search domain.SearchDefinition,
	base *url.URL,
) (domain.CandidateAd, bool) {
	title := extractTitle(doc, card)
	if !search.MatchesTitle(title) {
		return domain.CandidateAd{}, false
	}

	parent := card.Parent()
	price, ok := NormalizePrice(strings.TrimSpace(parent.Find(schema.price).First().Text()))
	if !ok || price <= 0 || price > search.MaxPrice {
		return domain.CandidateAd{}, false
	}

	location, published := extractDetails(parent, schema)

	ad := domain.CandidateAd{
		Title:       title,
		Price:       price,
		URL:         resolveURL(base, card.AttrOr("href", "")),
		ImageURL:    extractImage(parent, schema),
		Location:    location,
		PublishedAt: published,
		SearchQuery: search.Query,
		SuperPrice:  search.IsSuperPrice(price),
		Category:    search.Category,
	}

	if schema.odometer != "" {
		if label, exists := parent.Find(schema.odometer).First().Attr("aria-label"); exists {
			if km, ok := parseDigits(label); ok {
				ad.Kilometers = &km
			}
		}
	}

	return ad, true
}

// extractTitle follows the card's aria-labelledby reference to the element
// holding the title text.
func extractTitle(doc *goquery.Document, card *goquery.Selection) string {
	id, ok := card.Attr("aria-labelledby")
	if !ok || id == "" {
		return ""
	}
	return strings.TrimSpace(doc.Find(`[id="` + id + `"]`).First().Text())
}

func extractImage(parent *goquery.Selection, schema cardSchema) string {
	img := parent.Find(schema.image).First()
	if src := strings.TrimSpace(img.AttrOr("data-src", "")); src != "" {
		return src
	}
	return strings.TrimSpace(img.AttrOr("src", ""))
}

// extractDetails splits the "• location | published" blob. When the details
// block is absent the first span starting with a bullet is used instead.
func extractDetails(parent *goquery.Selection, schema cardSchema) (location, published string) {
	text := strings.TrimSpace(parent.Find(schema.details).First().Text())
	if text == "" {
		parent.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			candidate := strings.TrimSpace(s.Text())
			if strings.HasPrefix(candidate, bulletMarker) {
				text = candidate
				return false
			}
			return true
		})
	}
	if text == "" {
		return "", ""
	}

	text = strings.Replace(text, bulletMarker, "", 1)
	location, published, _ = strings.Cut(text, detailSeparator)
	return strings.TrimSpace(location), strings.TrimSpace(published)
}

// resolveURL makes href absolute against the search URL and drops fragments.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	ref.Fragment = ""
	return ref.String()
}
