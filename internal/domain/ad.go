package domain

import "time"

// Classification labels.
const (
	LabelNew        = "novo"
	LabelGood       = "bom estado"
	LabelDefect     = "defeito"
	LabelIndefinite = "indefinido"
)

// AdKey is the identity of a stored ad. URLs change when an ad is re-listed,
// so they are not part of it.
type AdKey struct {
	Category    Category
	Title       string
	SearchQuery string
}

// CandidateAd is one listing card parsed from a results page.
type CandidateAd struct {
	Title       string
	Price       float64
	URL         string
	ImageURL    string
	Location    string
	PublishedAt string
	SearchQuery string
	SuperPrice  bool
	Category    Category
	// Kilometers is only set for vehicle listings.
	Kilometers *int
}

// Key returns the identity of the candidate.
func (c CandidateAd) Key() AdKey {
	return AdKey{Category: c.Category, Title: c.Title, SearchQuery: c.SearchQuery}
}

// PricePoint is one entry of an ad's price history.
type PricePoint struct {
	Price      float64   `db:"price"       json:"price"`
	RecordedAt time.Time `db:"recorded_at" json:"date"`
}

// Classification is the condition label derived from an ad title.
type Classification struct {
	SentimentScore int      `json:"sentimentScore"`
	Label          string   `json:"label"`
	Keywords       []string `json:"keywords"`
}

// StoredAd is the persisted form of an ad.
type StoredAd struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"imageUrl"`
	Location    string   `json:"location"`
	PublishedAt string   `json:"publishedAt"`
	SearchQuery string   `json:"searchQuery"`
	SuperPrice  bool     `json:"superPrice"`
	Category    Category `json:"category"`
	Kilometers  *int     `json:"kilometers,omitempty"`

	Classification Classification `json:"classification"`
	PriceHistory   []PricePoint   `json:"priceHistory"`
	Blacklisted    bool           `json:"blacklisted"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Key returns the identity of the stored ad.
func (a *StoredAd) Key() AdKey {
	return AdKey{Category: a.Category, Title: a.Title, SearchQuery: a.SearchQuery}
}

// NewStoredAd builds the first persisted version of a candidate, seeding the
// price history with the observed price.
func NewStoredAd(c CandidateAd, cls Classification, now time.Time) *StoredAd {
	return &StoredAd{
		Title:          c.Title,
		Price:          c.Price,
		URL:            c.URL,
		ImageURL:       c.ImageURL,
		Location:       c.Location,
		PublishedAt:    c.PublishedAt,
		SearchQuery:    c.SearchQuery,
		SuperPrice:     c.SuperPrice,
		Category:       c.Category,
		Kilometers:     c.Kilometers,
		Classification: cls,
		PriceHistory:   []PricePoint{{Price: c.Price, RecordedAt: now}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
