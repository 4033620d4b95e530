package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
)

var (
	// ErrAdNotFound is returned when no ad matches the lookup.
	ErrAdNotFound = errors.New("ad not found")
	// ErrPriceConflict is returned by AppendPrice when the stored price no
	// longer equals the expected one, meaning another writer got there first.
	ErrPriceConflict = errors.New("ad price changed concurrently")
)

const adSelectColumns = `id, title, price, url, image_url, location, published_at, search_query,
	super_price, category, kilometers, sentiment_score, classification_label, keywords,
	blacklisted, created_at, updated_at`

// Listing sort options.
const (
	SortAsc      = "asc"
	SortDesc     = "desc"
	PublishedNew = "first"
	PublishedOld = "last"
)

const (
	defaultLimit = 500
	maxListLimit = 1000
	historyPerAd = 8
	// priceEpsilon absorbs float noise when comparing stored prices.
	priceEpsilon  = 0.005
	keyWhereQuery = `category = $1 AND title = $2 AND search_query = $3`
)

type adRow struct {
	ID                  int64          `db:"id"`
	Title               string         `db:"title"`
	Price               float64        `db:"price"`
	URL                 string         `db:"url"`
	ImageURL            string         `db:"image_url"`
	Location            string         `db:"location"`
	PublishedAt         string         `db:"published_at"`
	SearchQuery         string         `db:"search_query"`
	SuperPrice          bool           `db:"super_price"`
	Category            string         `db:"category"`
	Kilometers          sql.NullInt64  `db:"kilometers"`
	SentimentScore      int            `db:"sentiment_score"`
	ClassificationLabel string         `db:"classification_label"`
	Keywords            pq.StringArray `db:"keywords"`
	Blacklisted         bool           `db:"blacklisted"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func (r adRow) toDomain() domain.StoredAd {
	ad := domain.StoredAd{
		ID:          r.ID,
		Title:       r.Title,
		Price:       r.Price,
		URL:         r.URL,
		ImageURL:    r.ImageURL,
		Location:    r.Location,
		PublishedAt: r.PublishedAt,
		SearchQuery: r.SearchQuery,
		SuperPrice:  r.SuperPrice,
		Category:    domain.Category(r.Category),
		Classification: domain.Classification{
			SentimentScore: r.SentimentScore,
			Label:          r.ClassificationLabel,
			Keywords:       []string(r.Keywords),
		},
		PriceHistory: []domain.PricePoint{},
		Blacklisted:  r.Blacklisted,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if ad.Classification.Keywords == nil {
		ad.Classification.Keywords = []string{}
	}
	if r.Kilometers.Valid {
		km := int(r.Kilometers.Int64)
		ad.Kilometers = &km
	}
	return ad
}

type historyRow struct {
	AdID       int64     `db:"ad_id"`
	Price      float64   `db:"price"`
	RecordedAt time.Time `db:"recorded_at"`
}

// ListQuery selects and orders non-blacklisted ads.
type ListQuery struct {
	// SuperPriceFirst puts deals before everything else.
	SuperPriceFirst bool
	// PriceOrder is SortAsc, SortDesc or empty.
	PriceOrder string
	// Published is PublishedNew (default) or PublishedOld.
	Published string
	Category  domain.Category
	// Limit defaults to 500 and is capped at 1000. Offset skips that many
	// ads of the ordered result.
	Limit  int
	Offset int
}

// AdRepository persists ads and their price history.
type AdRepository struct {
	db *sqlx.DB
}

// NewAdRepository creates an AdRepository.
func NewAdRepository(db *sqlx.DB) *AdRepository {
	return &AdRepository{db: db}
}

// FindByKey loads the ad owning key, with its price history.
func (r *AdRepository) FindByKey(ctx context.Context, key domain.AdKey) (*domain.StoredAd, error) {
	query := `SELECT ` + adSelectColumns + ` FROM ads WHERE ` + keyWhereQuery

	var row adRow
	if err := r.db.GetContext(ctx, &row, query, string(key.Category), key.Title, key.SearchQuery); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to find ad by key: %w", err)
	}

	return r.withHistory(ctx, row)
}

// GetByID loads an ad and its price history. Blacklisted ads are returned too.
func (r *AdRepository) GetByID(ctx context.Context, id int64) (*domain.StoredAd, error) {
	query := `SELECT ` + adSelectColumns + ` FROM ads WHERE id = $1`

	var row adRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}

	return r.withHistory(ctx, row)
}

func (r *AdRepository) withHistory(ctx context.Context, row adRow) (*domain.StoredAd, error) {
	ad := row.toDomain()

	query := `SELECT price, recorded_at FROM ad_price_history WHERE ad_id = $1 ORDER BY recorded_at, id`
	if err := r.db.SelectContext(ctx, &ad.PriceHistory, query, row.ID); err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}

	return &ad, nil
}

// Create inserts ad and its initial price history in one transaction. It
// returns false without error when another writer already created the same
// identity key. On success ad.ID is set.
func (r *AdRepository) Create(ctx context.Context, ad *domain.StoredAd) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin create transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO ads (title, price, url, image_url, location, published_at, search_query,
			super_price, category, kilometers, sentiment_score, classification_label, keywords,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		ON CONFLICT (category, title, search_query) DO NOTHING
		RETURNING id`

	keywords := ad.Classification.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	var id int64
	err = tx.QueryRowxContext(ctx, query,
		ad.Title, ad.Price, ad.URL, ad.ImageURL, ad.Location, ad.PublishedAt, ad.SearchQuery,
		ad.SuperPrice, string(ad.Category), nullableInt(ad.Kilometers),
		ad.Classification.SentimentScore, ad.Classification.Label, pq.StringArray(keywords),
		ad.CreatedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert ad: %w", err)
	}

	for _, point := range ad.PriceHistory {
		if histErr := insertHistory(ctx, tx, id, point); histErr != nil {
			return false, histErr
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return false, fmt.Errorf("failed to commit create transaction: %w", commitErr)
	}

	ad.ID = id
	return true, nil
}

// AppendPrice moves ad id from expected to the candidate's price and appends
// the new price to its history. The update only applies while the stored
// price still equals expected and the ad is not blacklisted; otherwise
// ErrPriceConflict is returned and nothing is written.
func (r *AdRepository) AppendPrice(
	ctx context.Context,
	id int64,
	expected float64,
	candidate domain.CandidateAd,
	at time.Time,
) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin price transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		UPDATE ads SET
			price = $3, super_price = $4, url = $5, image_url = $6, location = $7,
			published_at = $8, kilometers = COALESCE($9, kilometers), updated_at = $10
		WHERE id = $1 AND ABS(price - $2) < $11 AND blacklisted = FALSE`

	result, err := tx.ExecContext(ctx, query,
		id, expected, candidate.Price, candidate.SuperPrice, candidate.URL, candidate.ImageURL,
		candidate.Location, candidate.PublishedAt, nullableInt(candidate.Kilometers), at, priceEpsilon,
	)
	if err = execRequireRows(result, err, ErrPriceConflict); err != nil {
		if errors.Is(err, ErrPriceConflict) {
			return err
		}
		return fmt.Errorf("failed to update ad price: %w", err)
	}

	if histErr := insertHistory(ctx, tx, id, domain.PricePoint{Price: candidate.Price, RecordedAt: at}); histErr != nil {
		return histErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("failed to commit price transaction: %w", commitErr)
	}
	return nil
}

func insertHistory(ctx context.Context, tx *sqlx.Tx, adID int64, point domain.PricePoint) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO ad_price_history (ad_id, price, recorded_at) VALUES ($1, $2, $3)`,
		adID, point.Price, point.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append price history: %w", err)
	}
	return nil
}

// List returns one page of non-blacklisted ads with their price history.
func (r *AdRepository) List(ctx context.Context, q ListQuery) ([]domain.StoredAd, error) {
	where, args := listWhere(q)

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxListLimit)
	args = append(args, limit)
	page := fmt.Sprintf("LIMIT $%d", len(args))
	if q.Offset > 0 {
		args = append(args, q.Offset)
		page += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	query := fmt.Sprintf(`SELECT %s FROM ads WHERE %s ORDER BY %s %s`,
		adSelectColumns, where, buildOrderBy(q), page)

	var rows []adRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}

	ads := make([]domain.StoredAd, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ads = append(ads, row.toDomain())
		ids = append(ids, row.ID)
	}
	if len(ads) == 0 {
		return ads, nil
	}

	if err := r.attachHistories(ctx, ads, ids); err != nil {
		return nil, err
	}
	return ads, nil
}

// ListAll pages through List until every ad matching q has been read.
// q.Limit and q.Offset are ignored.
func (r *AdRepository) ListAll(ctx context.Context, q ListQuery) ([]domain.StoredAd, error) {
	q.Limit = maxListLimit
	q.Offset = 0

	var all []domain.StoredAd
	for {
		page, err := r.List(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < maxListLimit {
			return all, nil
		}
		q.Offset += len(page)
	}
}

// Count returns how many ads match q, ignoring its ordering and paging.
func (r *AdRepository) Count(ctx context.Context, q ListQuery) (int, error) {
	where, args := listWhere(q)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ads WHERE `+where, args...); err != nil {
		return 0, fmt.Errorf("failed to count ads: %w", err)
	}
	return total, nil
}

func listWhere(q ListQuery) (string, []any) {
	var (
		where = []string{"blacklisted = FALSE"}
		args  []any
	)
	if q.Category != "" {
		args = append(args, string(q.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	return strings.Join(where, " AND "), args
}

func (r *AdRepository) attachHistories(ctx context.Context, ads []domain.StoredAd, ids []int64) error {
	query := `SELECT ad_id, price, recorded_at FROM ad_price_history
		WHERE ad_id = ANY($1) ORDER BY ad_id, recorded_at, id`

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load price histories: %w", err)
	}

	byAd := make(map[int64][]domain.PricePoint, len(ids))
	for _, h := range rows {
		if byAd[h.AdID] == nil {
			byAd[h.AdID] = make([]domain.PricePoint, 0, historyPerAd)
		}
		byAd[h.AdID] = append(byAd[h.AdID], domain.PricePoint{Price: h.Price, RecordedAt: h.RecordedAt})
	}
	for i := range ads {
		if points, ok := byAd[ads[i].ID]; ok {
			ads[i].PriceHistory = points
		}
	}
	return nil
}

// buildOrderBy translates q into a whitelisted ORDER BY clause.
func buildOrderBy(q ListQuery) string {
	var parts []string
	if q.SuperPriceFirst {
		parts = append(parts, "super_price DESC")
	}
	switch q.PriceOrder {
	case SortAsc:
		parts = append(parts, "price ASC")
	case SortDesc:
		parts = append(parts, "price DESC")
	}
	if q.Published == PublishedOld {
		parts = append(parts, "created_at ASC", "id ASC")
	} else {
		parts = append(parts, "created_at DESC", "id DESC")
	}
	return strings.Join(parts, ", ")
}

// Blacklist soft-deletes an ad. Blacklisted ads never show up in listings.
func (r *AdRepository) Blacklist(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ads SET blacklisted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err = execRequireRows(result, err, ErrAdNotFound); err != nil {
		if errors.Is(err, ErrAdNotFound) {
			return err
		}
		return fmt.Errorf("failed to blacklist ad: %w", err)
	}
	return nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
