package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/api"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/config"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/database"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/metrics"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/notify"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/trend"
)

var t0 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

type fakeAdStore struct {
	ads          []domain.StoredAd
	err          error
	lastQuery    database.ListQuery
	listAllCalls int
	blacklisted  []int64
}

func (s *fakeAdStore) List(_ context.Context, q database.ListQuery) ([]domain.StoredAd, error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	page := s.ads[min(q.Offset, len(s.ads)):]
	if q.Limit > 0 {
		page = page[:min(q.Limit, len(page))]
	}
	return page, nil
}

func (s *fakeAdStore) ListAll(_ context.Context, q database.ListQuery) ([]domain.StoredAd, error) {
	s.lastQuery = q
	s.listAllCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.ads, nil
}

func (s *fakeAdStore) Count(_ context.Context, _ database.ListQuery) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return len(s.ads), nil
}

func (s *fakeAdStore) GetByID(_ context.Context, id int64) (*domain.StoredAd, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.ads {
		if s.ads[i].ID == id {
			return &s.ads[i], nil
		}
	}
	return nil, database.ErrAdNotFound
}

func (s *fakeAdStore) Blacklist(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	for i := range s.ads {
		if s.ads[i].ID == id {
			s.blacklisted = append(s.blacklisted, id)
			return nil
		}
	}
	return database.ErrAdNotFound
}

type fakeNotificationStore struct {
	list      []domain.Notification
	lastLimit int
}

func (s *fakeNotificationStore) List(_ context.Context, limit int) ([]domain.Notification, error) {
	s.lastLimit = limit
	return s.list, nil
}

type fakeNotifier struct {
	err  error
	sent []notify.TestRequest
}

func (n *fakeNotifier) Test(_ context.Context, req notify.TestRequest) (domain.Notification, error) {
	n.sent = append(n.sent, req)
	return domain.Notification{ID: 1, AdID: req.AdID, Kind: domain.NotificationTest, Title: req.Title}, n.err
}

type fakeTrigger struct {
	calls atomic.Int32
}

func (f *fakeTrigger) Trigger() { f.calls.Add(1) }

type fixture struct {
	ads           *fakeAdStore
	notifications *fakeNotificationStore
	notifier      *fakeNotifier
	trigger       *fakeTrigger
	handler       http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ads: &fakeAdStore{ads: []domain.StoredAd{
			{
				ID: 1, Title: "RTX 3080", Price: 94,
				PriceHistory: []domain.PricePoint{{Price: 100, RecordedAt: t0}, {Price: 94, RecordedAt: t0.Add(time.Hour)}},
			},
			{
				ID: 2, Title: "RTX 3070", Price: 103,
				PriceHistory: []domain.PricePoint{{Price: 100, RecordedAt: t0}, {Price: 103, RecordedAt: t0.Add(time.Hour)}},
			},
		}},
		notifications: &fakeNotificationStore{list: []domain.Notification{{ID: 5, Kind: domain.NotificationNewDeal}}},
		notifier:      &fakeNotifier{},
		trigger:       &fakeTrigger{},
	}
	srv := api.NewServer(config.ServerConfig{Address: ":0"}, api.Dependencies{
		Ads:           f.ads,
		Notifications: f.notifications,
		Notifier:      f.notifier,
		Scrape:        f.trigger,
		Metrics:       metrics.New(),
	}, false, logger.NewNop())
	f.handler = srv.Handler()
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestListAds_ParsesSortOptions(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/ads?superPrice=true&price=asc&published=last&category=vehicle", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, database.ListQuery{
		SuperPriceFirst: true,
		PriceOrder:      database.SortAsc,
		Published:       database.PublishedOld,
		Category:        domain.CategoryVehicle,
	}, f.ads.lastQuery)

	var ads []domain.StoredAd
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ads))
	assert.Len(t, ads, 2)
}

func TestListAds_Pagination(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/ads?limit=1&offset=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, f.ads.lastQuery.Limit)
	assert.Equal(t, 1, f.ads.lastQuery.Offset)
	assert.Equal(t, "2", w.Header().Get("X-Total-Count"))

	var ads []domain.StoredAd
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ads))
	require.Len(t, ads, 1)
	assert.Equal(t, int64(2), ads[0].ID)
}

func TestListAds_RejectsUnknownValues(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{
		"/api/v1/ads?price=up",
		"/api/v1/ads?published=yesterday",
		"/api/v1/ads?category=boats",
		"/api/v1/ads?offset=-5",
		"/api/v1/ads?offset=ten",
	} {
		w := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestListAds_StoreErrorIsStatic500(t *testing.T) {
	f := newFixture(t)
	f.ads.err = errors.New("pq: connection refused")

	w := f.do(t, http.MethodGet, "/api/v1/ads", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to list ads"}`, w.Body.String())
}

func TestBlacklistAd(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodDelete, "/api/v1/ads/2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{2}, f.ads.blacklisted)

	w = f.do(t, http.MethodDelete, "/api/v1/ads/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/v1/ads/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPriceTrend(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/ads/1/price-trend", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Trend
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.TrendDownward, got.Direction)
	assert.InDelta(t, -6, got.Delta, 1e-9)

	w = f.do(t, http.MethodGet, "/api/v1/ads/42/price-trend", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPriceTrends(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/ads/price-trends", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, f.ads.listAllCalls, "trends cover every ad, not one page")

	var got []trend.AdTrend
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, domain.TrendDownward, got[0].Trend.Direction)
	assert.Equal(t, domain.TrendStable, got[1].Trend.Direction)
}

func TestListNotifications(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/notifications?limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, f.notifications.lastLimit)

	w = f.do(t, http.MethodGet, "/api/v1/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, f.notifications.lastLimit)
}

func TestTestNotification(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/notifications/test",
		`{"adId": 3, "title": "RTX 3080", "price": 1700, "url": "https://www.olx.com.br/item/3"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, int64(3), f.notifier.sent[0].AdID)
}

func TestTestNotification_RequiresAllFields(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/notifications/test", `{"adId": 3, "title": "RTX 3080"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.notifier.sent)
}

func TestTestNotification_DeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("redis down")

	w := f.do(t, http.MethodPost, "/api/v1/notifications/test",
		`{"adId": 3, "title": "RTX 3080", "price": 1700, "url": "https://www.olx.com.br/item/3"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTriggerScrape(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/scrape", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, int32(1), f.trigger.calls.Load())
}
