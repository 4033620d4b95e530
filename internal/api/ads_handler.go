package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/database"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/trend"
)

// totalCountHeader carries the number of ads matching a paged listing.
const totalCountHeader = "X-Total-Count"

// AdStore reads and blacklists stored ads.
type AdStore interface {
	List(ctx context.Context, q database.ListQuery) ([]domain.StoredAd, error)
	ListAll(ctx context.Context, q database.ListQuery) ([]domain.StoredAd, error)
	Count(ctx context.Context, q database.ListQuery) (int, error)
	GetByID(ctx context.Context, id int64) (*domain.StoredAd, error)
	Blacklist(ctx context.Context, id int64) error
}

type adsHandler struct {
	store AdStore
}

func newAdsHandler(store AdStore) *adsHandler {
	return &adsHandler{store: store}
}

// List returns one page of non-blacklisted ads. The total number of matching
// ads is sent in the X-Total-Count header.
// GET /api/v1/ads?superPrice=true&price=asc|desc&published=first|last&category=standard|vehicle&limit=&offset=
func (h *adsHandler) List(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	total, err := h.store.Count(ctx, q)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to count ads", logger.Error(err))
		respondInternalError(c, "failed to list ads")
		return
	}
	ads, err := h.store.List(ctx, q)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list ads", logger.Error(err))
		respondInternalError(c, "failed to list ads")
		return
	}
	c.Header(totalCountHeader, strconv.Itoa(total))
	c.JSON(http.StatusOK, ads)
}

func parseListQuery(c *gin.Context) (database.ListQuery, bool) {
	q := database.ListQuery{
		SuperPriceFirst: c.Query("superPrice") == "true",
		Limit:           parseLimit(c, 0),
	}

	offset, ok := parseOffset(c)
	if !ok {
		respondBadRequest(c, "offset must be a non-negative integer")
		return q, false
	}
	q.Offset = offset

	switch price := c.Query("price"); price {
	case "", database.SortAsc, database.SortDesc:
		q.PriceOrder = price
	default:
		respondBadRequest(c, "price must be asc or desc")
		return q, false
	}

	switch published := c.Query("published"); published {
	case "", database.PublishedNew, database.PublishedOld:
		q.Published = published
	default:
		respondBadRequest(c, "published must be first or last")
		return q, false
	}

	if raw := c.Query("category"); raw != "" {
		category, err := domain.ParseCategory(raw)
		if err != nil {
			respondBadRequest(c, "unknown category")
			return q, false
		}
		q.Category = category
	}
	return q, true
}

// Blacklist hides an ad from listings and future passes.
// DELETE /api/v1/ads/:id
func (h *adsHandler) Blacklist(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondBadRequest(c, "invalid ad id")
		return
	}

	err := h.store.Blacklist(c.Request.Context(), id)
	if errors.Is(err, database.ErrAdNotFound) {
		respondNotFound(c, "ad")
		return
	}
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to blacklist ad", logger.Int64("ad_id", id), logger.Error(err))
		respondInternalError(c, "failed to blacklist ad")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ad blacklisted"})
}

// PriceTrend returns the trend of one ad.
// GET /api/v1/ads/:id/price-trend
func (h *adsHandler) PriceTrend(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondBadRequest(c, "invalid ad id")
		return
	}

	ad, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrAdNotFound) {
		respondNotFound(c, "ad")
		return
	}
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to load ad", logger.Int64("ad_id", id), logger.Error(err))
		respondInternalError(c, "failed to compute price trend")
		return
	}
	c.JSON(http.StatusOK, trend.Detect(ad.PriceHistory))
}

// PriceTrends returns the trend of every non-blacklisted ad.
// GET /api/v1/ads/price-trends
func (h *adsHandler) PriceTrends(c *gin.Context) {
	ads, err := h.store.ListAll(c.Request.Context(), database.ListQuery{})
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to list ads", logger.Error(err))
		respondInternalError(c, "failed to compute price trends")
		return
	}
	c.JSON(http.StatusOK, trend.ForAds(ads))
}
